package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"llm-assessment-backend/domain/aggregate"
	"llm-assessment-backend/logging"
	"llm-assessment-backend/metrics"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ExportResults(ctx *gin.Context) {
	handler := exportHandler{ctx: ctx}

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
		ctx.JSON(http.StatusInternalServerError,
			common.MakeErrorResp("Error generating export file"))
		return
	}
}

type exportHandler struct {
	ctx *gin.Context

	// params
	fileID uint
}

func (h *exportHandler) checkParam() error {
	fileID, err := strconv.ParseUint(h.ctx.Query("file_id"), 10, 64)
	if err != nil {
		return utils.WrapError(common.ErrRequestParamInvalid, "file_id not a positive integer")
	}
	h.fileID = uint(fileID)

	return nil
}

func (h *exportHandler) produce() error {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return utils.WrapError(err, "read user info fail")
	}

	batch, err := reviewdata.BatchForReviewer(reviewdata.DatabaseRaw(), h.fileID, user.ReviewerID)
	if err != nil {
		return utils.WrapErrorf(err, "select batch [id=%d] fail", h.fileID)
	}

	data := aggregate.ExportResults(user.ReviewerID, batch.ID)
	if data == nil {
		return fmt.Errorf("export batch [id=%d] produced no data", batch.ID)
	}

	metrics.ExportsTotal.Inc()

	// 导出文件名带上原始文件名（去扩展名）和生成时刻
	filename := fmt.Sprintf("assessment_results_%s_%s.tsv",
		removeSuffix(batch.Filename), time.Now().Format("20060102150405"))

	h.ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.ctx.Data(http.StatusOK, "text/tab-separated-values; charset=utf-8", data)

	return nil
}
