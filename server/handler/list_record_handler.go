package handler

import (
	"errors"
	"net/http"
	"strconv"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ListRecord(ctx *gin.Context) {
	handler := listRecordHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	resp, err := handler.produce()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, common.MakeNotFoundResp())
			return
		}
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type listRecordHandler struct {
	ctx *gin.Context

	// params
	fileID uint
}

type listRecordItem struct {
	RecordDBID uint    `json:"record_id"`
	ResponseID string  `json:"response_id"`
	Author     *string `json:"author"`
	Title      *string `json:"title"`
	Assessed   bool    `json:"assessed"`
}

func (h *listRecordHandler) checkParam() error {
	fileID, err := strconv.ParseUint(h.ctx.Query("file_id"), 10, 64)
	if err != nil {
		return utils.WrapError(common.ErrRequestParamInvalid, "file_id not a positive integer")
	}
	h.fileID = uint(fileID)

	return nil
}

func (h *listRecordHandler) produce() ([]listRecordItem, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	db := reviewdata.DatabaseRaw()

	batch, err := reviewdata.BatchForReviewer(db, h.fileID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapErrorf(err, "select batch [id=%d] fail", h.fileID)
	}

	records, err := reviewdata.RecordsByBatch(db, batch.ID)
	if err != nil {
		return nil, utils.WrapError(err, "select records fail")
	}

	assessments, err := reviewdata.AssessmentsForBatch(db, batch.ID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "select assessments fail")
	}

	assessed := make(map[uint]bool, len(assessments))
	for _, assessment := range assessments {
		assessed[assessment.RecordID] = true
	}

	ret := make([]listRecordItem, 0, len(records))
	for _, record := range records {
		ret = append(ret, listRecordItem{
			RecordDBID: record.ID,
			ResponseID: record.ResponseID,
			Author:     record.Author,
			Title:      record.Title,
			Assessed:   assessed[record.ID],
		})
	}

	return ret, nil
}
