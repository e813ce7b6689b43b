package progress

import (
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/utils"

	"gorm.io/gorm"
)

/*
Position 批次内的当前位置与进度计数。

	Record 当前条目，批次为空时为nil；
	Index 当前条目在入库顺序里的1起位置，Record为nil时为0；
	PrevID/NextID 入库顺序上紧邻的条目，边界处为0；
*/
type Position struct {
	Record   *reviewdata.Record
	Total    int
	Assessed int
	Index    int
	PrevID   uint
	NextID   uint
}

// Completed 批次非空且该评审员已评完全部条目。
func (p *Position) Completed() bool {
	return p.Total > 0 && p.Assessed >= p.Total
}

func resolve(setting *Setting, reviewerID, batchID, requestedID uint) (*Position, error) {
	db := setting.GetDatabase()

	records, err := reviewdata.RecordsByBatch(db, batchID)
	if err != nil {
		return nil, err
	}

	assessed, err := reviewdata.AssessedCount(db, batchID, reviewerID)
	if err != nil {
		return nil, err
	}

	position := &Position{
		Total:    len(records),
		Assessed: int(assessed),
	}

	// 空批次：没有可评审的条目
	if len(records) == 0 {
		setting.Logger.Debugf("batch [%d] has no records, nothing to review", batchID)
		return position, nil
	}

	current, err := selectCurrent(setting, records, reviewerID, batchID, requestedID)
	if err != nil {
		return nil, err
	}

	index := indexOf(records, current.ID)
	position.Record = current
	position.Index = index + 1

	if index > 0 {
		position.PrevID = records[index-1].ID
	}
	if index < len(records)-1 {
		position.NextID = records[index+1].ID
	}

	return position, nil
}

func selectCurrent(setting *Setting, records []reviewdata.Record, reviewerID, batchID, requestedID uint) (*reviewdata.Record, error) {
	if requestedID != 0 {
		if idx := indexOf(records, requestedID); idx >= 0 {
			return &records[idx], nil
		}
		setting.Logger.Debugf("requested record [%d] not in batch [%d]", requestedID, batchID)
		return nil, gorm.ErrRecordNotFound
	}

	unassessed, err := reviewdata.FirstUnassessedRecord(setting.GetDatabase(), batchID, reviewerID)
	if err != nil {
		return nil, utils.WrapError(err, "select first unassessed record fail")
	}
	if unassessed != nil {
		return unassessed, nil
	}

	// 全部评完后退回第一条
	setting.Logger.Debugf("batch [%d] fully assessed by reviewer [%d], fall back to first record", batchID, reviewerID)
	return &records[0], nil
}

func indexOf(records []reviewdata.Record, id uint) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
