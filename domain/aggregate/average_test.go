package aggregate

import (
	"fmt"
	"testing"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSetting(t *testing.T) (*Setting, *gorm.DB) {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	database, err := reviewdata.CreateDatabase(reviewdata.GenerateTestConfig())
	require.Nil(t, err)

	return &Setting{
		GetDatabase: func() *gorm.DB { return database },
		Logger:      logging.NewLogger(),
	}, database
}

func seedBatch(t *testing.T, db *gorm.DB, reviewerID uint, recordCount int) (*reviewdata.Batch, []reviewdata.Record) {
	batch := reviewdata.Batch{
		Filename:       "predictions.csv",
		ReviewerID:     reviewerID,
		TotalResponses: recordCount,
	}
	require.Nil(t, db.Create(&batch).Error)

	for i := 0; i < recordCount; i++ {
		require.Nil(t, db.Create(&reviewdata.Record{
			ResponseID: fmt.Sprintf("r_%d", i),
			BatchID:    batch.ID,
			Author:     utils.StrToPtr(fmt.Sprintf("Author %d", i)),
		}).Error)
	}

	records, err := reviewdata.RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	return &batch, records
}

func TestAverageScoresPerDimension(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch, records := seedBatch(t, db, reviewerID, 3)

	// period_string 取到 0、0.5、1，period_timeframe 全部缺值
	values := []float64{0, 0.5, 1}
	for i, record := range records {
		assessment := reviewdata.Assessment{
			RecordID:            record.ID,
			ReviewerID:          reviewerID,
			ScorePeriodString:   utils.FloatToPtr(values[i]),
			ScoreLocationString: utils.FloatToPtr(1),
		}
		require.Nil(t, db.Create(&assessment).Error)
	}

	averages, err := averageScores(setting, reviewerID, batch.ID)
	require.Nil(t, err)

	assert.Equal(t, 0.5, averages.PeriodString)
	assert.Equal(t, 0.0, averages.PeriodTimeframe)
	assert.Equal(t, 1.0, averages.LocationString)
	assert.Equal(t, 0.0, averages.LocationQID)
	assert.Equal(t, 3, averages.Count)
}

func TestAverageScoresRounding(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch, records := seedBatch(t, db, reviewerID, 3)

	// 两个1一个0 → 0.6666... → 0.67
	values := []float64{1, 1, 0}
	for i, record := range records {
		assessment := reviewdata.Assessment{
			RecordID:         record.ID,
			ReviewerID:       reviewerID,
			ScoreLocationQID: utils.FloatToPtr(values[i]),
		}
		require.Nil(t, db.Create(&assessment).Error)
	}

	averages, err := averageScores(setting, reviewerID, batch.ID)
	require.Nil(t, err)
	assert.Equal(t, 0.67, averages.LocationQID)
}

func TestAverageScoresEmptyBatch(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch, _ := seedBatch(t, db, reviewerID, 0)

	averages, err := averageScores(setting, reviewerID, batch.ID)
	require.Nil(t, err)
	assert.Zero(t, averages.PeriodString)
	assert.Zero(t, averages.Count)
}

func TestAverageScoresIgnoresOtherReviewers(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1
	const otherID = 2

	batch, records := seedBatch(t, db, reviewerID, 1)

	require.Nil(t, db.Create(&reviewdata.Assessment{
		RecordID:          records[0].ID,
		ReviewerID:        otherID,
		ScorePeriodString: utils.FloatToPtr(1),
	}).Error)

	averages, err := averageScores(setting, reviewerID, batch.ID)
	require.Nil(t, err)
	assert.Zero(t, averages.Count)
	assert.Zero(t, averages.PeriodString)
}
