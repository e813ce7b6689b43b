package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"llm-assessment-backend/config"
	"llm-assessment-backend/domain/aggregate"
	"llm-assessment-backend/domain/progress"
	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetAssessment(ctx *gin.Context) {
	handler := assessmentHandler{ctx: ctx}

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

type assessmentHandler struct {
	ctx *gin.Context

	// params
	fileID         uint
	recordID       uint
	nextUnassessed bool
}

type scoresView struct {
	PeriodString    *float64 `json:"period_string_score"`
	PeriodTimeframe *float64 `json:"period_timeframe_score"`
	LocationString  *float64 `json:"location_string_score"`
	LocationQID     *float64 `json:"location_qid_score"`
	AssessmentDate  string   `json:"assessment_date"`
}

type assessmentResp struct {
	FileID   uint   `json:"file_id"`
	Filename string `json:"filename"`

	Record *recordView `json:"record"`
	Scores *scoresView `json:"scores"`

	Criteria config.Criteria `json:"criteria"`

	Index     int  `json:"index"`
	Total     int  `json:"total"`
	Assessed  int  `json:"assessed"`
	PrevID    uint `json:"prev_record_id"`
	NextID    uint `json:"next_record_id"`
	Completed bool `json:"completed"`

	Averages *aggregate.Averages `json:"averages"`
}

func (h *assessmentHandler) checkParam() error {
	fileID, err := strconv.ParseUint(h.ctx.Query("file_id"), 10, 64)
	if err != nil {
		return utils.WrapError(common.ErrRequestParamInvalid, "file_id not a positive integer")
	}
	h.fileID = uint(fileID)

	if raw := h.ctx.Query("record_id"); raw != "" {
		recordID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.WrapError(common.ErrRequestParamInvalid, "record_id not a positive integer")
		}
		h.recordID = uint(recordID)
	}

	h.nextUnassessed = h.ctx.Query("next_unassessed") == "true"

	return nil
}

func (h *assessmentHandler) produce() (*assessmentResp, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	db := reviewdata.DatabaseRaw()

	batch, err := reviewdata.BatchForReviewer(db, h.fileID, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapErrorf(err, "select batch [id=%d] fail", h.fileID)
	}

	position, err := h.resolvePosition(user.ReviewerID)
	if err != nil {
		return nil, err
	}

	averages, err := aggregate.AverageScores(user.ReviewerID, h.fileID)
	if err != nil {
		return nil, utils.WrapError(err, "average scores fail")
	}

	resp := &assessmentResp{
		FileID:    batch.ID,
		Filename:  batch.Filename,
		Criteria:  globalSetting.Criteria,
		Index:     position.Index,
		Total:     position.Total,
		Assessed:  position.Assessed,
		PrevID:    position.PrevID,
		NextID:    position.NextID,
		Completed: position.Completed(),
		Averages:  averages,
	}

	if position.Record != nil {
		resp.Record = makeRecordView(position.Record)

		assessment, err := reviewdata.AssessmentFor(db, position.Record.ID, user.ReviewerID)
		if err != nil {
			return nil, utils.WrapError(err, "select assessment fail")
		}
		if assessment != nil {
			resp.Scores = &scoresView{
				PeriodString:    assessment.ScorePeriodString,
				PeriodTimeframe: assessment.ScorePeriodTimeframe,
				LocationString:  assessment.ScoreLocationString,
				LocationQID:     assessment.ScoreLocationQID,
				AssessmentDate:  assessment.UpdatedAt.Format(time.RFC3339),
			}
		}

		if err := common.SetLastRecordID(h.ctx, batch.ID, position.Record.ID); err != nil {
			logging.Default().WithError(err).Errorf("save session error: %s", err.Error())
		}
	}

	return resp, nil
}

// resolvePosition 选条目的优先级：显式record_id > next_unassessed >
// 会话里上次看的条目 > 第一条未评条目。会话里的条目已被删除时退回自动选择。
func (h *assessmentHandler) resolvePosition(reviewerID uint) (*progress.Position, error) {
	if h.recordID != 0 {
		return progress.Resolve(reviewerID, h.fileID, h.recordID)
	}

	if !h.nextUnassessed {
		if lastID, ok := common.LastRecordID(h.ctx, h.fileID); ok {
			position, err := progress.Resolve(reviewerID, h.fileID, lastID)
			if err == nil {
				return position, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}

	return progress.Resolve(reviewerID, h.fileID, 0)
}
