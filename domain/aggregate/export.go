package aggregate

import (
	"bytes"
	"strconv"
	"strings"

	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// exportColumns 导出列顺序：先是条目的全部字段（新旧列都在），再接四个人工评分和评审时间。
var exportColumns = []string{
	"response_id",
	"prompt_id",
	"model_name",
	"model_id",
	"document_id",
	"author",
	"title",
	"publication_date",
	"document_length",
	"keep_fine_tuning",
	"gt_period",
	"pred_period",
	"score_period_string",
	"gt_timeframe",
	"pred_timeframe",
	"score_period_timeframe",
	"gt_period_reason",
	"gt_period_reasoning",
	"pred_period_reasoning",
	"score_period_reasoning",
	"gt_preferred_location",
	"gt_accepted_locations",
	"gt_preferred_location_QID",
	"gt_acceptable_location_QIDs",
	"gt_location",
	"gt_location_QID",
	"pred_location",
	"score_location_string",
	"pred_location_qid",
	"score_location_qid",
	"gt_location_reason",
	"pred_location_reasoning",
	"score_location_reasoning",
	"period_string_score",
	"period_timeframe_score",
	"location_string_score",
	"location_qid_score",
	"assessment_date",
}

const assessmentDateLayout = "2006-01-02 15:04:05"

func exportResults(setting *Setting, reviewerID, batchID uint) []byte {
	builder := &tsvBuilder{
		reviewerID: reviewerID,
		batchID:    batchID,
		db:         setting.GetDatabase(),
		logger:     setting.Logger,
	}

	if err := builder.buildTSV(); err != nil {
		setting.Logger.WithError(err).Errorf("export results [batch=%d reviewer=%d] fail: %s",
			batchID, reviewerID, err.Error())
		return nil
	}

	return builder.out.Bytes()
}

type tsvBuilder struct {
	// input
	reviewerID uint
	batchID    uint
	db         *gorm.DB
	logger     *logrus.Logger

	// output
	out bytes.Buffer
}

func (b *tsvBuilder) buildTSV() error {
	records, err := reviewdata.RecordsByBatch(b.db, b.batchID)
	if err != nil {
		return utils.WrapErrorf(err, "collect records [batchID=%d] fail", b.batchID)
	}

	assessments, err := reviewdata.AssessmentsForBatch(b.db, b.batchID, b.reviewerID)
	if err != nil {
		return utils.WrapErrorf(err, "collect assessments [batchID=%d] fail", b.batchID)
	}

	assessmentByRecord := make(map[uint]*reviewdata.Assessment, len(assessments))
	for i := range assessments {
		assessmentByRecord[assessments[i].RecordID] = &assessments[i]
	}

	// 写文件头
	b.out.WriteString(strings.Join(exportColumns, "\t"))

	// 输出固定用制表符分隔，与原始上传的分隔符无关
	for i := range records {
		b.produceRow(&records[i], assessmentByRecord[records[i].ID])
	}

	return nil
}

func (b *tsvBuilder) produceRow(record *reviewdata.Record, assessment *reviewdata.Assessment) {
	cells := []string{
		record.ResponseID,
		strCell(record.PromptID),
		strCell(record.ModelName),
		strCell(record.ModelID),
		strCell(record.DocumentID),
		strCell(record.Author),
		strCell(record.Title),
		strCell(record.PublicationDate),
		intCell(record.DocumentLength),
		boolCell(record.KeepFineTuning),
		strCell(record.GTPeriod),
		strCell(record.PredPeriod),
		strCell(record.ScorePeriodString),
		strCell(record.GTTimeframe),
		strCell(record.PredTimeframe),
		strCell(record.ScorePeriodTimeframe),
		strCell(record.GTPeriodReason),
		strCell(record.GTPeriodReasoning),
		strCell(record.PredPeriodReasoning),
		strCell(record.ScorePeriodReasoning),
		strCell(record.GTPreferredLocation),
		strCell(record.GTAcceptedLocations),
		strCell(record.GTPreferredLocationQID),
		strCell(record.GTAcceptableLocationQIDs),
		strCell(record.GTLocation),
		strCell(record.GTLocationQID),
		strCell(record.PredLocation),
		strCell(record.ScoreLocationString),
		strCell(record.PredLocationQID),
		strCell(record.ScoreLocationQID),
		strCell(record.GTLocationReason),
		strCell(record.PredLocationReasoning),
		strCell(record.ScoreLocationReasoning),
	}

	if assessment != nil {
		cells = append(cells,
			scoreCell(assessment.ScorePeriodString),
			scoreCell(assessment.ScorePeriodTimeframe),
			scoreCell(assessment.ScoreLocationString),
			scoreCell(assessment.ScoreLocationQID),
			assessment.UpdatedAt.Format(assessmentDateLayout),
		)
	} else {
		// 未评审的条目评分列留空
		cells = append(cells, "", "", "", "", "")
	}

	b.out.WriteString("\n")
	b.out.WriteString(strings.Join(cells, "\t"))
}

var cellSanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func strCell(v *string) string {
	if v == nil {
		return ""
	}
	return cellSanitizer.Replace(*v)
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func boolCell(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func scoreCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
