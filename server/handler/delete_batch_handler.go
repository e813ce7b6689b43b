package handler

import (
	"errors"
	"net/http"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func DeleteBatch(ctx *gin.Context) {
	handler := deleteBatchHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	if err := handler.produce(); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, common.MakeNotFoundResp())
			return
		}
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(gin.H{
		"message": "File and all associated assessments deleted",
	}))
}

type deleteBatchHandler struct {
	ctx *gin.Context

	// params
	fileID uint
}

type deleteBatchReq struct {
	FileID uint `json:"file_id"`
}

func (h *deleteBatchHandler) checkParam() error {
	var req deleteBatchReq
	if err := h.ctx.Bind(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	if req.FileID == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "file_id empty")
	}

	h.fileID = req.FileID
	return nil
}

func (h *deleteBatchHandler) produce() error {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return utils.WrapError(err, "read user info fail")
	}

	db := reviewdata.DatabaseRaw()

	batch, err := reviewdata.BatchForReviewer(db, h.fileID, user.ReviewerID)
	if err != nil {
		return utils.WrapErrorf(err, "select batch [id=%d] fail", h.fileID)
	}

	if err := reviewdata.DeleteBatchCascade(db, batch.ID); err != nil {
		return utils.WrapErrorf(err, "delete batch [id=%d] fail", batch.ID)
	}

	return nil
}
