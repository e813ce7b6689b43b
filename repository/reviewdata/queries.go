package reviewdata

import (
	"errors"

	"llm-assessment-backend/utils"

	"gorm.io/gorm"
)

// 查询函数统一显式传入*gorm.DB并返回普通结构体，持久化细节不渗透到调用方。
// 未命中的单条查询返回 (nil, nil)，调用方据此区分“不存在”和“查询失败”；
// 归属校验类查询（XxxForReviewer）例外，未命中时返回 gorm.ErrRecordNotFound。

func ReviewerByUsername(db *gorm.DB, username string) (*Reviewer, error) {
	var reviewer Reviewer
	err := db.Where(&Reviewer{Username: username}).First(&reviewer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select reviewer by username [%s] fail", username)
	}

	return &reviewer, nil
}

func ReviewerByEmail(db *gorm.DB, email string) (*Reviewer, error) {
	var reviewer Reviewer
	err := db.Where(&Reviewer{Email: email}).First(&reviewer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select reviewer by email [%s] fail", email)
	}

	return &reviewer, nil
}

func ReviewerByID(db *gorm.DB, id uint) (*Reviewer, error) {
	var reviewer Reviewer
	err := db.First(&reviewer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select reviewer [id=%d] fail", id)
	}

	return &reviewer, nil
}

func CreateReviewer(db *gorm.DB, reviewer *Reviewer) error {
	if err := db.Create(reviewer).Error; err != nil {
		return utils.WrapError(err, "create reviewer fail")
	}
	return nil
}

// BatchesByReviewer 按上传时间倒序列出评审员的全部批次。
func BatchesByReviewer(db *gorm.DB, reviewerID uint) ([]Batch, error) {
	var batches []Batch
	err := db.Where(&Batch{ReviewerID: reviewerID}).
		Order("created_at DESC, id DESC").
		Find(&batches).Error
	if err != nil {
		return nil, utils.WrapErrorf(err, "select batches of reviewer [%d] fail", reviewerID)
	}

	return batches, nil
}

// BatchForReviewer 带归属校验地取一个批次，批次不存在或不属于该评审员时返回 gorm.ErrRecordNotFound。
func BatchForReviewer(db *gorm.DB, batchID, reviewerID uint) (*Batch, error) {
	var batch Batch
	err := db.Where("id = ? AND reviewer_id = ?", batchID, reviewerID).First(&batch).Error
	if err != nil {
		return nil, err
	}

	return &batch, nil
}

// RecordsByBatch 按入库顺序列出批次的全部条目。
func RecordsByBatch(db *gorm.DB, batchID uint) ([]Record, error) {
	var records []Record
	err := db.Where(&Record{BatchID: batchID}).Order("id").Find(&records).Error
	if err != nil {
		return nil, utils.WrapErrorf(err, "select records of batch [%d] fail", batchID)
	}

	return records, nil
}

func RecordInBatch(db *gorm.DB, recordID, batchID uint) (*Record, error) {
	var record Record
	err := db.Where("id = ? AND batch_id = ?", recordID, batchID).First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// FirstUnassessedRecord 按入库顺序找批次内第一条该评审员尚未评分的条目，全部已评时返回 (nil, nil)。
func FirstUnassessedRecord(db *gorm.DB, batchID, reviewerID uint) (*Record, error) {
	assessed := db.Model(&Assessment{}).
		Select("record_id").
		Where("reviewer_id = ?", reviewerID)

	var record Record
	err := db.Where("batch_id = ?", batchID).
		Where("id NOT IN (?)", assessed).
		Order("id").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select first unassessed record of batch [%d] fail", batchID)
	}

	return &record, nil
}

func AssessmentFor(db *gorm.DB, recordID, reviewerID uint) (*Assessment, error) {
	var assessment Assessment
	err := db.Where(&Assessment{RecordID: recordID, ReviewerID: reviewerID}).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapErrorf(err, "select assessment [record=%d reviewer=%d] fail", recordID, reviewerID)
	}

	return &assessment, nil
}

func AssessedCount(db *gorm.DB, batchID, reviewerID uint) (int64, error) {
	var count int64
	err := db.Model(&Assessment{}).
		Joins("JOIN records ON records.id = assessments.record_id AND records.deleted_at IS NULL").
		Where("records.batch_id = ?", batchID).
		Where("assessments.reviewer_id = ?", reviewerID).
		Count(&count).Error
	if err != nil {
		return 0, utils.WrapErrorf(err, "count assessed records of batch [%d] fail", batchID)
	}

	return count, nil
}

func AssessmentsForBatch(db *gorm.DB, batchID, reviewerID uint) ([]Assessment, error) {
	var assessments []Assessment
	err := db.
		Joins("JOIN records ON records.id = assessments.record_id AND records.deleted_at IS NULL").
		Where("records.batch_id = ?", batchID).
		Where("assessments.reviewer_id = ?", reviewerID).
		Find(&assessments).Error
	if err != nil {
		return nil, utils.WrapErrorf(err, "select assessments of batch [%d] fail", batchID)
	}

	return assessments, nil
}

/*
UpsertAssessment 先查后插地写入一次评分，返回评分与是否新建。

新建时一并重算批次的 AssessedResponses 冗余计数；更新时只改分数，
UpdatedAt 随保存推进。整个过程在一个事务里完成。
*/
func UpsertAssessment(db *gorm.DB, recordID, reviewerID, batchID uint, scores *ScoreSet) (*Assessment, bool, error) {
	var assessment *Assessment
	created := false

	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := AssessmentFor(tx, recordID, reviewerID)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.ScorePeriodString = utils.FloatToPtr(scores.PeriodString)
			existing.ScorePeriodTimeframe = utils.FloatToPtr(scores.PeriodTimeframe)
			existing.ScoreLocationString = utils.FloatToPtr(scores.LocationString)
			existing.ScoreLocationQID = utils.FloatToPtr(scores.LocationQID)

			if err := tx.Save(existing).Error; err != nil {
				return utils.WrapError(err, "update assessment fail")
			}

			assessment = existing
			return nil
		}

		fresh := Assessment{
			RecordID:             recordID,
			ReviewerID:           reviewerID,
			ScorePeriodString:    utils.FloatToPtr(scores.PeriodString),
			ScorePeriodTimeframe: utils.FloatToPtr(scores.PeriodTimeframe),
			ScoreLocationString:  utils.FloatToPtr(scores.LocationString),
			ScoreLocationQID:     utils.FloatToPtr(scores.LocationQID),
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return utils.WrapError(err, "create assessment fail")
		}

		count, err := AssessedCount(tx, batchID, reviewerID)
		if err != nil {
			return err
		}

		err = tx.Model(&Batch{}).Where("id = ?", batchID).
			Update("assessed_responses", count).Error
		if err != nil {
			return utils.WrapError(err, "update batch assessed count fail")
		}

		assessment = &fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return assessment, created, nil
}

// DeleteBatchCascade 在一个事务里删除批次及其全部条目和评分。
func DeleteBatchCascade(db *gorm.DB, batchID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		recordIDs := tx.Model(&Record{}).Select("id").Where("batch_id = ?", batchID)

		if err := tx.Where("record_id IN (?)", recordIDs).Delete(&Assessment{}).Error; err != nil {
			return utils.WrapError(err, "delete assessments of batch fail")
		}

		if err := tx.Where("batch_id = ?", batchID).Delete(&Record{}).Error; err != nil {
			return utils.WrapError(err, "delete records of batch fail")
		}

		if err := tx.Delete(&Batch{}, batchID).Error; err != nil {
			return utils.WrapError(err, "delete batch fail")
		}

		return nil
	})
}

// searchColumns 即原始表格中允许被全文检索的列。
var searchColumns = []string{
	"records.author",
	"records.title",
	"records.response_id",
	"records.document_id",
	"records.model_name",
	"records.model_id",
	"records.prompt_id",
	"records.gt_period",
	"records.pred_period",
	"records.gt_timeframe",
	"records.pred_timeframe",
	"records.gt_preferred_location",
	"records.gt_accepted_locations",
	"records.gt_preferred_location_qid",
	"records.gt_acceptable_location_qids",
	"records.gt_location",
	"records.pred_location",
}

// SearchRecords 在评审员自己的批次里按关键词模糊检索条目。
func SearchRecords(db *gorm.DB, reviewerID uint, query string) ([]Record, error) {
	like := "%" + query + "%"

	cond := db.Where(searchColumns[0]+" LIKE ?", like)
	for _, column := range searchColumns[1:] {
		cond = cond.Or(column+" LIKE ?", like)
	}

	var records []Record
	err := db.
		Joins("JOIN batches ON batches.id = records.batch_id AND batches.deleted_at IS NULL").
		Where("batches.reviewer_id = ?", reviewerID).
		Where(cond).
		Order("records.batch_id, records.id").
		Find(&records).Error
	if err != nil {
		return nil, utils.WrapErrorf(err, "search records with query [%s] fail", query)
	}

	return records, nil
}
