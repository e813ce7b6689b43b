package ingest

// RecommendedHeaders 上传表格的全部规范列名。没有哪一列是硬性要求，
// 缺少 response_id 时按行号合成标识，其余缺列只产生提示。
var RecommendedHeaders = []string{
	"response_id",
	"prompt_id",
	"model_name", // 新列名
	"model_id",   // 旧列名，兼容保留
	"document_id",
	"author",
	"title",
	"publication_date",
	"document_length",
	"keep_fine_tuning",

	// 时间维度
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

	// 地点维度
	"gt_preferred_location", // 由 gt_location 更名而来
	"gt_accepted_locations",
	"pred_location",
	"score_location_string",
	"gt_preferred_location_QID", // 由 gt_location_QID 更名而来
	"gt_acceptable_location_QIDs",
	"pred_location_qid",
	"score_location_qid",
	"gt_location_reason",
	"pred_location_reasoning",
	"score_location_reasoning",

	// 旧列名，兼容保留
	"gt_location",
	"gt_location_QID",
}
