package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func Register(ctx *gin.Context) {
	handler := registerHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		var ue userError
		if errors.As(err, &ue) {
			ctx.JSON(http.StatusBadRequest, common.MakeErrorResp(string(ue)))
			return
		}
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	if err := handler.produce(); err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		var ue userError
		if errors.As(err, &ue) {
			ctx.JSON(http.StatusConflict, common.MakeErrorResp(string(ue)))
			return
		}
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(gin.H{
		"message": "Registration successful. Please log in.",
	}))
}

type registerHandler struct {
	ctx *gin.Context

	// params
	username string
	email    string
	password string
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *registerHandler) checkParam() error {
	var req registerReq
	if err := h.ctx.Bind(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	h.username = strings.TrimSpace(req.Username)
	h.email = strings.TrimSpace(req.Email)
	h.password = req.Password

	if len(h.username) < 4 || len(h.username) > 64 {
		return userError("Username must be between 4 and 64 characters")
	}

	if _, err := mail.ParseAddress(h.email); err != nil {
		return userError("Invalid email address")
	}

	if len(h.password) < 8 {
		return userError("Password must be at least 8 characters")
	}

	return nil
}

func (h *registerHandler) produce() error {
	db := reviewdata.DatabaseRaw()

	existing, err := reviewdata.ReviewerByUsername(db, h.username)
	if err != nil {
		return utils.WrapError(err, "select reviewer by username fail")
	}
	if existing != nil {
		return userError("Username already exists")
	}

	existing, err = reviewdata.ReviewerByEmail(db, h.email)
	if err != nil {
		return utils.WrapError(err, "select reviewer by email fail")
	}
	if existing != nil {
		return userError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(h.password), bcrypt.DefaultCost)
	if err != nil {
		return utils.WrapError(err, "hash password fail")
	}

	reviewer := reviewdata.Reviewer{
		Username:     h.username,
		Email:        h.email,
		PasswordHash: string(hash),
	}
	if err := reviewdata.CreateReviewer(db, &reviewer); err != nil {
		return utils.WrapError(err, "create reviewer fail")
	}

	return nil
}
