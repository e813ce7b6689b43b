package reviewdata

import (
	"gorm.io/gorm"
)

//////////////////////////////// 账户信息 ////////////////////////////////////

/*
Reviewer 记录了评审员账户。

	Username 登录名，唯一；
	Email 邮箱，唯一，用于发送上传回执；
	PasswordHash bcrypt摘要，明文密码不落库；

	Batches 多对一关系，该评审员上传的批次；
	Assessments 多对一关系，该评审员提交的评分；
*/
type Reviewer struct {
	gorm.Model

	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(256);not null"`

	Batches     []Batch      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Assessments []Assessment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

//////////////////////////////// 评审数据 ////////////////////////////////////

/*
Batch 记录了一次上传的表格文件及其派生的全部待评审条目。

	Filename 上传时的原始文件名，导出时用于拼接结果文件名；
	TotalResponses 数据行数，入库时写定；
	AssessedResponses 已评审条数的冗余计数，只在评分创建时刷新，与按需聚合互相独立；

	Records 多对一关系，批次独占其条目，删除批次时级联删除；
*/
type Batch struct {
	gorm.Model

	Filename          string `gorm:"type:varchar(255);not null"`
	ReviewerID        uint   `gorm:"index;not null"`
	TotalResponses    int    `gorm:"not null;default:0"`
	AssessedResponses int    `gorm:"not null;default:0"`

	Records []Record `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
Record 记录了一条待评审条目：一篇文档的时间与地点预测及其参照答案。入库后不再修改。

	ResponseID 外部标识。上传数据缺失时按行号合成为 auto_gen_<idx>，不保证唯一；

	gt_preferred_location / gt_location 以及对应的QID字段是同一逻辑值的新旧两个名字，
	入库时由列调和器保证两者一致（见 domain/ingest）。

	除外部标识与批次外的全部字段都允许为空，空单元格入库为NULL而不是空字符串。
*/
type Record struct {
	gorm.Model

	ResponseID string `gorm:"type:varchar(255);not null;index"`
	BatchID    uint   `gorm:"index;not null"`

	// 条目元信息
	PromptID        *string `gorm:"type:varchar(255)"`
	ModelName       *string `gorm:"type:varchar(255)"`
	ModelID         *string `gorm:"type:varchar(255)"` // model_name 的旧名
	DocumentID      *string `gorm:"type:varchar(255)"`
	Author          *string `gorm:"type:varchar(255)"`
	Title           *string `gorm:"type:varchar(255)"`
	PublicationDate *string `gorm:"type:varchar(255)"`
	DocumentLength  *int
	KeepFineTuning  *bool

	// 时间维度
	GTPeriod             *string `gorm:"column:gt_period;type:varchar(255)"`
	PredPeriod           *string `gorm:"column:pred_period;type:varchar(255)"`
	ScorePeriodString    *string `gorm:"type:varchar(255)"`
	GTTimeframe          *string `gorm:"column:gt_timeframe;type:varchar(255)"`
	PredTimeframe        *string `gorm:"column:pred_timeframe;type:varchar(255)"`
	ScorePeriodTimeframe *string `gorm:"type:varchar(255)"`
	GTPeriodReason       *string `gorm:"column:gt_period_reason;type:text"`
	GTPeriodReasoning    *string `gorm:"column:gt_period_reasoning;type:text"`
	PredPeriodReasoning  *string `gorm:"type:text"`
	ScorePeriodReasoning *string `gorm:"type:varchar(255)"`

	// 地点维度，新列名
	GTPreferredLocation      *string `gorm:"column:gt_preferred_location;type:varchar(255)"`
	GTAcceptedLocations      *string `gorm:"column:gt_accepted_locations;type:text"`
	GTPreferredLocationQID   *string `gorm:"column:gt_preferred_location_qid;type:varchar(255)"`
	GTAcceptableLocationQIDs *string `gorm:"column:gt_acceptable_location_qids;type:text"`

	// 地点维度，旧列名，与新列保持同值
	GTLocation    *string `gorm:"column:gt_location;type:varchar(255)"`
	GTLocationQID *string `gorm:"column:gt_location_qid;type:varchar(255)"`

	// 地点维度，未更名的列
	PredLocation           *string `gorm:"type:varchar(255)"`
	ScoreLocationString    *string `gorm:"type:varchar(255)"`
	PredLocationQID        *string `gorm:"column:pred_location_qid;type:varchar(255)"`
	ScoreLocationQID       *string `gorm:"column:score_location_qid;type:varchar(255)"`
	GTLocationReason       *string `gorm:"column:gt_location_reason;type:text"`
	PredLocationReasoning  *string `gorm:"type:text"`
	ScoreLocationReasoning *string `gorm:"type:varchar(255)"`

	Assessments []Assessment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

/*
Assessment 记录了一名评审员对一条条目的一次人工评分。

	四个维度的分数相互独立，取值限定在 {0, 0.5, 1}（见 scores.go），允许为空；
	同一 (Record, Reviewer) 至多一条，靠先查后插维持，不设唯一索引；
	重复提交时原地更新分数并推进 UpdatedAt。
*/
type Assessment struct {
	gorm.Model

	RecordID   uint `gorm:"index;not null"`
	ReviewerID uint `gorm:"index;not null"`

	ScorePeriodString    *float64
	ScorePeriodTimeframe *float64
	ScoreLocationString  *float64
	ScoreLocationQID     *float64 `gorm:"column:score_location_qid"`
}
