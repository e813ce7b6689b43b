package handler

import (
	"strings"

	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/server/common"
	"llm-assessment-backend/utils"

	"github.com/gin-gonic/gin"
)

// userError 的文案会原样返回给前端，其余错误一律对外显示为unknown error。
type userError string

func (e userError) Error() string {
	return string(e)
}

func currentReviewer(ctx *gin.Context) (*common.UserInfo, error) {
	user, exist := ctx.Get(common.RequestContextKeyUser)
	if !exist {
		return nil, common.ErrNotLoggedIn
	}

	info, ok := user.(*common.UserInfo)
	if !ok {
		return nil, utils.WrapErrorf(common.ErrNotLoggedIn,
			"ctx.Get(%s) get [%#v] not (*common.UserInfo)", common.RequestContextKeyUser, user)
	}

	return info, nil
}

func removeSuffix(origin string) string {
	index := strings.LastIndexByte(origin, '.')
	if index < 0 || len(origin)-index > 5 {
		return origin
	}

	return origin[:index]
}

/*
recordView 条目的对外表示，字段名与上传表格的列名一致，前端按列名取值。
RecordDBID 是数据库主键，仅用于翻页与提交评分时定位条目。
*/
type recordView struct {
	RecordDBID uint   `json:"record_id"`
	ResponseID string `json:"response_id"`

	PromptID        *string `json:"prompt_id"`
	ModelName       *string `json:"model_name"`
	ModelID         *string `json:"model_id"`
	DocumentID      *string `json:"document_id"`
	Author          *string `json:"author"`
	Title           *string `json:"title"`
	PublicationDate *string `json:"publication_date"`
	DocumentLength  *int    `json:"document_length"`
	KeepFineTuning  *bool   `json:"keep_fine_tuning"`

	GTPeriod             *string `json:"gt_period"`
	PredPeriod           *string `json:"pred_period"`
	ScorePeriodString    *string `json:"score_period_string"`
	GTTimeframe          *string `json:"gt_timeframe"`
	PredTimeframe        *string `json:"pred_timeframe"`
	ScorePeriodTimeframe *string `json:"score_period_timeframe"`
	GTPeriodReason       *string `json:"gt_period_reason"`
	GTPeriodReasoning    *string `json:"gt_period_reasoning"`
	PredPeriodReasoning  *string `json:"pred_period_reasoning"`
	ScorePeriodReasoning *string `json:"score_period_reasoning"`

	GTPreferredLocation      *string `json:"gt_preferred_location"`
	GTAcceptedLocations      *string `json:"gt_accepted_locations"`
	GTPreferredLocationQID   *string `json:"gt_preferred_location_QID"`
	GTAcceptableLocationQIDs *string `json:"gt_acceptable_location_QIDs"`
	GTLocation               *string `json:"gt_location"`
	GTLocationQID            *string `json:"gt_location_QID"`
	PredLocation             *string `json:"pred_location"`
	ScoreLocationString      *string `json:"score_location_string"`
	PredLocationQID          *string `json:"pred_location_qid"`
	ScoreLocationQID         *string `json:"score_location_qid"`
	GTLocationReason         *string `json:"gt_location_reason"`
	PredLocationReasoning    *string `json:"pred_location_reasoning"`
	ScoreLocationReasoning   *string `json:"score_location_reasoning"`
}

func makeRecordView(record *reviewdata.Record) *recordView {
	return &recordView{
		RecordDBID: record.ID,
		ResponseID: record.ResponseID,

		PromptID:        record.PromptID,
		ModelName:       record.ModelName,
		ModelID:         record.ModelID,
		DocumentID:      record.DocumentID,
		Author:          record.Author,
		Title:           record.Title,
		PublicationDate: record.PublicationDate,
		DocumentLength:  record.DocumentLength,
		KeepFineTuning:  record.KeepFineTuning,

		GTPeriod:             record.GTPeriod,
		PredPeriod:           record.PredPeriod,
		ScorePeriodString:    record.ScorePeriodString,
		GTTimeframe:          record.GTTimeframe,
		PredTimeframe:        record.PredTimeframe,
		ScorePeriodTimeframe: record.ScorePeriodTimeframe,
		GTPeriodReason:       record.GTPeriodReason,
		GTPeriodReasoning:    record.GTPeriodReasoning,
		PredPeriodReasoning:  record.PredPeriodReasoning,
		ScorePeriodReasoning: record.ScorePeriodReasoning,

		GTPreferredLocation:      record.GTPreferredLocation,
		GTAcceptedLocations:      record.GTAcceptedLocations,
		GTPreferredLocationQID:   record.GTPreferredLocationQID,
		GTAcceptableLocationQIDs: record.GTAcceptableLocationQIDs,
		GTLocation:               record.GTLocation,
		GTLocationQID:            record.GTLocationQID,
		PredLocation:             record.PredLocation,
		ScoreLocationString:      record.ScoreLocationString,
		PredLocationQID:          record.PredLocationQID,
		ScoreLocationQID:         record.ScoreLocationQID,
		GTLocationReason:         record.GTLocationReason,
		PredLocationReasoning:    record.PredLocationReasoning,
		ScoreLocationReasoning:   record.ScoreLocationReasoning,
	}
}
