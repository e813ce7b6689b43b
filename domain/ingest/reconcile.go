package ingest

import (
	"fmt"

	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/utils"
)

// resolvePair 新旧两个来源列取同一个逻辑值，优先primary。
func (t *table) resolvePair(row []string, primary, fallback string) *string {
	if v := t.cell(row, primary); v != nil {
		return v
	}
	return t.cell(row, fallback)
}

func (t *table) intCell(row []string, name string) *int {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return nil
	}
	return utils.CellToInt(row[idx])
}

func (t *table) boolCell(row []string, name string) *bool {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return nil
	}
	return utils.CellToBool(row[idx])
}

/*
buildRecord 把一行数据调和成一条Record。

	外部标识优先取 response_id 单元格，空白或缺列时合成为 auto_gen_<行号>（0起），
	不检查重复；
	model_name/model_id、gt_preferred_location/gt_location 及对应QID这三对新旧列
	双向互补，最终新旧两个字段写入同一个解析值；
	空白单元格一律入库为NULL。
*/
func (t *table) buildRecord(rowIdx int, row []string, batchID uint) reviewdata.Record {
	responseID := fmt.Sprintf("auto_gen_%d", rowIdx)
	if v := t.cell(row, "response_id"); v != nil {
		responseID = *v
	}

	return reviewdata.Record{
		ResponseID: responseID,
		BatchID:    batchID,

		PromptID:        t.cell(row, "prompt_id"),
		ModelName:       t.resolvePair(row, "model_name", "model_id"),
		ModelID:         t.resolvePair(row, "model_id", "model_name"),
		DocumentID:      t.cell(row, "document_id"),
		Author:          t.cell(row, "author"),
		Title:           t.cell(row, "title"),
		PublicationDate: t.cell(row, "publication_date"),
		DocumentLength:  t.intCell(row, "document_length"),
		KeepFineTuning:  t.boolCell(row, "keep_fine_tuning"),

		GTPeriod:             t.cell(row, "gt_period"),
		PredPeriod:           t.cell(row, "pred_period"),
		ScorePeriodString:    t.cell(row, "score_period_string"),
		GTTimeframe:          t.cell(row, "gt_timeframe"),
		PredTimeframe:        t.cell(row, "pred_timeframe"),
		ScorePeriodTimeframe: t.cell(row, "score_period_timeframe"),
		GTPeriodReason:       t.cell(row, "gt_period_reason"),
		GTPeriodReasoning:    t.cell(row, "gt_period_reasoning"),
		PredPeriodReasoning:  t.cell(row, "pred_period_reasoning"),
		ScorePeriodReasoning: t.cell(row, "score_period_reasoning"),

		GTPreferredLocation:      t.resolvePair(row, "gt_preferred_location", "gt_location"),
		GTAcceptedLocations:      t.cell(row, "gt_accepted_locations"),
		GTPreferredLocationQID:   t.resolvePair(row, "gt_preferred_location_QID", "gt_location_QID"),
		GTAcceptableLocationQIDs: t.cell(row, "gt_acceptable_location_QIDs"),

		GTLocation:    t.resolvePair(row, "gt_location", "gt_preferred_location"),
		GTLocationQID: t.resolvePair(row, "gt_location_QID", "gt_preferred_location_QID"),

		PredLocation:           t.cell(row, "pred_location"),
		ScoreLocationString:    t.cell(row, "score_location_string"),
		PredLocationQID:        t.cell(row, "pred_location_qid"),
		ScoreLocationQID:       t.cell(row, "score_location_qid"),
		GTLocationReason:       t.cell(row, "gt_location_reason"),
		PredLocationReasoning:  t.cell(row, "pred_location_reasoning"),
		ScoreLocationReasoning: t.cell(row, "score_location_reasoning"),
	}
}
