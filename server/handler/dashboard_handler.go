package handler

import (
	"net/http"
	"time"

	"llm-assessment-backend/domain/aggregate"
	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
)

func Dashboard(ctx *gin.Context) {
	handler := dashboardHandler{ctx: ctx}

	resp, err := handler.produce()
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type dashboardHandler struct {
	ctx *gin.Context
}

type dashboardItem struct {
	FileID            uint                `json:"file_id"`
	Filename          string              `json:"filename"`
	UploadTime        int64               `json:"upload_time"`
	UploadTimeStr     string              `json:"upload_time_str"`
	TotalResponses    int                 `json:"total_responses"`
	AssessedResponses int                 `json:"assessed_responses"`
	Averages          *aggregate.Averages `json:"averages"`
}

func (h *dashboardHandler) produce() ([]dashboardItem, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	batches, err := reviewdata.BatchesByReviewer(reviewdata.DatabaseRaw(), user.ReviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "select batches fail")
	}

	ret := make([]dashboardItem, 0, len(batches))
	for _, batch := range batches {
		averages, err := aggregate.AverageScores(user.ReviewerID, batch.ID)
		if err != nil {
			return nil, utils.WrapErrorf(err, "average scores [batchID=%d] fail", batch.ID)
		}

		ret = append(ret, dashboardItem{
			FileID:            batch.ID,
			Filename:          batch.Filename,
			UploadTime:        batch.CreatedAt.Unix(),
			UploadTimeStr:     batch.CreatedAt.Format(time.RFC3339),
			TotalResponses:    batch.TotalResponses,
			AssessedResponses: batch.AssessedResponses,
			Averages:          averages,
		})
	}

	return ret, nil
}
