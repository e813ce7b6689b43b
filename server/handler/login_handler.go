package handler

import (
	"errors"
	"net/http"
	"strings"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func Login(ctx *gin.Context) {
	handler := loginHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	if err := handler.produce(); err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		var ue userError
		if errors.As(err, &ue) {
			ctx.JSON(http.StatusUnauthorized, common.MakeErrorResp(string(ue)))
			return
		}
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(gin.H{
		"username": handler.username,
	}))
}

type loginHandler struct {
	ctx *gin.Context

	// params
	username string
	password string
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *loginHandler) checkParam() error {
	var req loginReq
	if err := h.ctx.Bind(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	h.username = strings.TrimSpace(req.Username)
	h.password = req.Password

	if h.username == "" || h.password == "" {
		return utils.WrapError(common.ErrRequestParamEmpty, "username or password empty")
	}

	return nil
}

func (h *loginHandler) produce() error {
	db := reviewdata.DatabaseRaw()

	reviewer, err := reviewdata.ReviewerByUsername(db, h.username)
	if err != nil {
		return utils.WrapError(err, "select reviewer by username fail")
	}

	// 账户不存在与密码错误对外同一个文案
	if reviewer == nil {
		return userError("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(reviewer.PasswordHash), []byte(h.password)); err != nil {
		return userError("Invalid username or password")
	}

	if err := common.SetReviewer(h.ctx, reviewer.ID, reviewer.Username, reviewer.Email); err != nil {
		return utils.WrapError(err, "save session fail")
	}

	return nil
}
