package handler

import (
	"errors"
	"net/http"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/metrics"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SubmitAssessment(ctx *gin.Context) {
	handler := submitAssessmentHandler{ctx: ctx}

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

type submitAssessmentHandler struct {
	ctx *gin.Context

	// params
	fileID   uint
	recordID uint
	scores   reviewdata.ScoreSet
}

type submitAssessmentReq struct {
	FileID   uint     `json:"file_id"`
	RecordID uint     `json:"record_id"`
	Scores   scoreReq `json:"scores"`
}

type scoreReq struct {
	PeriodString    float64 `json:"period_string_score"`
	PeriodTimeframe float64 `json:"period_timeframe_score"`
	LocationString  float64 `json:"location_string_score"`
	LocationQID     float64 `json:"location_qid_score"`
}

type submitAssessmentResp struct {
	Created   bool `json:"created"`
	Assessed  int  `json:"assessed"`
	Total     int  `json:"total"`
	Completed bool `json:"completed"`
	NextID    uint `json:"next_record_id"`
}

func (h *submitAssessmentHandler) checkParam() error {
	var req submitAssessmentReq
	if err := h.ctx.Bind(&req); err != nil {
		return utils.WrapError(err, "bind req fail")
	}

	if req.FileID == 0 || req.RecordID == 0 {
		return utils.WrapError(common.ErrRequestParamEmpty, "file_id or record_id empty")
	}

	h.fileID = req.FileID
	h.recordID = req.RecordID
	h.scores = reviewdata.ScoreSet{
		PeriodString:    req.Scores.PeriodString,
		PeriodTimeframe: req.Scores.PeriodTimeframe,
		LocationString:  req.Scores.LocationString,
		LocationQID:     req.Scores.LocationQID,
	}

	if !h.scores.Valid() {
		return userError("Scores must be 0, 0.5, or 1")
	}

	return nil
}

func (h *submitAssessmentHandler) produce() (*submitAssessmentResp, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	db := reviewdata.DatabaseRaw()

	batch, err := reviewdata.BatchForReviewer(db, h.fileID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapErrorf(err, "select batch [id=%d] fail", h.fileID)
	}

	record, err := reviewdata.RecordInBatch(db, h.recordID, h.fileID)
	if err != nil {
		return nil, utils.WrapErrorf(err, "select record [id=%d] fail", h.recordID)
	}
	if record == nil {
		return nil, gorm.ErrRecordNotFound
	}

	_, created, err := reviewdata.UpsertAssessment(db, record.ID, user.ReviewerID, batch.ID, &h.scores)
	if err != nil {
		return nil, utils.WrapError(err, "upsert assessment fail")
	}

	metrics.AssessmentsSubmittedTotal.Inc()

	assessed, err := reviewdata.AssessedCount(db, batch.ID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "count assessments fail")
	}

	resp := &submitAssessmentResp{
		Created:   created,
		Assessed:  int(assessed),
		Total:     batch.TotalResponses,
		Completed: batch.TotalResponses > 0 && int(assessed) >= batch.TotalResponses,
	}

	next, err := reviewdata.FirstUnassessedRecord(db, batch.ID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "select next unassessed fail")
	}
	if next != nil {
		resp.NextID = next.ID
	}

	return resp, nil
}
