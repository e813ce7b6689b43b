package handler

import (
	"net/http"
	"strings"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
)

func Search(ctx *gin.Context) {
	handler := searchHandler{ctx: ctx}

	if err := handler.checkParam(); err != nil {
		logging.Default().WithError(err).Errorf("parse req error: %s", err.Error())
		ctx.JSON(http.StatusBadRequest, common.MakeUnknownErrorResp())
		return
	}

	resp, err := handler.produce()
	if err != nil {
		logging.Default().WithError(err).Errorf("produce error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(resp))
}

type searchHandler struct {
	ctx *gin.Context

	// params
	query string
}

type searchGroup struct {
	FileID   uint          `json:"file_id"`
	Filename string        `json:"filename"`
	Records  []*recordView `json:"records"`
}

func (h *searchHandler) checkParam() error {
	h.query = strings.TrimSpace(h.ctx.Query("q"))
	if h.query == "" {
		return utils.WrapError(common.ErrRequestParamEmpty, "query empty")
	}

	return nil
}

func (h *searchHandler) produce() ([]searchGroup, error) {
	user, err := currentReviewer(h.ctx)
	if err != nil {
		return nil, utils.WrapError(err, "read user info fail")
	}

	db := reviewdata.DatabaseRaw()

	records, err := reviewdata.SearchRecords(db, user.ReviewerID, h.query)
	if err != nil {
		return nil, utils.WrapError(err, "search records fail")
	}

	batches, err := reviewdata.BatchesByReviewer(db, user.ReviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "select batches fail")
	}

	filenames := make(map[uint]string, len(batches))
	for _, batch := range batches {
		filenames[batch.ID] = batch.Filename
	}

	// 按批次分组，组内保持查询返回的顺序
	groupIndex := make(map[uint]int)
	groups := make([]searchGroup, 0)
	for i := range records {
		record := &records[i]
		idx, ok := groupIndex[record.BatchID]
		if !ok {
			idx = len(groups)
			groupIndex[record.BatchID] = idx
			groups = append(groups, searchGroup{
				FileID:   record.BatchID,
				Filename: filenames[record.BatchID],
			})
		}
		groups[idx].Records = append(groups[idx].Records, makeRecordView(record))
	}

	return groups, nil
}
