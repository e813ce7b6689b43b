package reviewdata

import (
	"fmt"
	"testing"
	"time"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	database, err := CreateDatabase(GenerateTestConfig())
	require.Nil(t, err)
	return database
}

func seedBatch(t *testing.T, db *gorm.DB, reviewerID uint, recordCount int) *Batch {
	batch := Batch{
		Filename:       "predictions.csv",
		ReviewerID:     reviewerID,
		TotalResponses: recordCount,
	}
	require.Nil(t, db.Create(&batch).Error)

	for i := 0; i < recordCount; i++ {
		record := Record{
			ResponseID: fmt.Sprintf("resp_%d", i),
			BatchID:    batch.ID,
			Author:     utils.StrToPtr(fmt.Sprintf("Author %d", i)),
		}
		require.Nil(t, db.Create(&record).Error)
	}

	return &batch
}

func TestUpsertAssessmentIdempotence(t *testing.T) {
	db := newTestDatabase(t)

	reviewer := Reviewer{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.Nil(t, db.Create(&reviewer).Error)

	batch := seedBatch(t, db, reviewer.ID, 2)

	records, err := RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	require.Len(t, records, 2)

	first, created, err := UpsertAssessment(db, records[0].ID, reviewer.ID, batch.ID, &ScoreSet{
		PeriodString:    ScoreWrong,
		PeriodTimeframe: ScorePartial,
		LocationString:  ScoreCorrect,
		LocationQID:     ScoreCorrect,
	})
	require.Nil(t, err)
	assert.True(t, created)
	require.NotNil(t, first.ScorePeriodTimeframe)
	assert.Equal(t, ScorePartial, *first.ScorePeriodTimeframe)

	var updatedBatch Batch
	require.Nil(t, db.First(&updatedBatch, batch.ID).Error)
	assert.Equal(t, 1, updatedBatch.AssessedResponses)

	firstUpdatedAt := first.UpdatedAt
	time.Sleep(10 * time.Millisecond)

	second, created, err := UpsertAssessment(db, records[0].ID, reviewer.ID, batch.ID, &ScoreSet{
		PeriodString:    ScoreCorrect,
		PeriodTimeframe: ScoreCorrect,
		LocationString:  ScoreWrong,
		LocationQID:     ScorePartial,
	})
	require.Nil(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.Nil(t, db.Model(&Assessment{}).
		Where(&Assessment{RecordID: records[0].ID, ReviewerID: reviewer.ID}).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored Assessment
	require.Nil(t, db.First(&stored, first.ID).Error)
	require.NotNil(t, stored.ScorePeriodString)
	assert.Equal(t, ScoreCorrect, *stored.ScorePeriodString)
	require.NotNil(t, stored.ScoreLocationQID)
	assert.Equal(t, ScorePartial, *stored.ScoreLocationQID)
	assert.True(t, stored.UpdatedAt.After(firstUpdatedAt))
}

func TestFirstUnassessedRecord(t *testing.T) {
	db := newTestDatabase(t)

	reviewer := Reviewer{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.Nil(t, db.Create(&reviewer).Error)

	batch := seedBatch(t, db, reviewer.ID, 3)

	records, err := RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	require.Len(t, records, 3)

	// 没有任何评分时返回第一条
	next, err := FirstUnassessedRecord(db, batch.ID, reviewer.ID)
	require.Nil(t, err)
	require.NotNil(t, next)
	assert.Equal(t, records[0].ID, next.ID)

	scores := ScoreSet{PeriodString: 1, PeriodTimeframe: 1, LocationString: 1, LocationQID: 1}
	_, _, err = UpsertAssessment(db, records[0].ID, reviewer.ID, batch.ID, &scores)
	require.Nil(t, err)

	next, err = FirstUnassessedRecord(db, batch.ID, reviewer.ID)
	require.Nil(t, err)
	require.NotNil(t, next)
	assert.Equal(t, records[1].ID, next.ID)

	// 其他评审员的评分不影响本人的进度
	other := Reviewer{Username: "carol", Email: "carol@example.com", PasswordHash: "x"}
	require.Nil(t, db.Create(&other).Error)
	_, _, err = UpsertAssessment(db, records[1].ID, other.ID, batch.ID, &scores)
	require.Nil(t, err)

	next, err = FirstUnassessedRecord(db, batch.ID, reviewer.ID)
	require.Nil(t, err)
	require.NotNil(t, next)
	assert.Equal(t, records[1].ID, next.ID)

	for _, record := range records[1:] {
		_, _, err = UpsertAssessment(db, record.ID, reviewer.ID, batch.ID, &scores)
		require.Nil(t, err)
	}

	next, err = FirstUnassessedRecord(db, batch.ID, reviewer.ID)
	require.Nil(t, err)
	assert.Nil(t, next)

	count, err := AssessedCount(db, batch.ID, reviewer.ID)
	require.Nil(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDeleteBatchCascade(t *testing.T) {
	db := newTestDatabase(t)

	reviewer := Reviewer{Username: "dave", Email: "dave@example.com", PasswordHash: "x"}
	require.Nil(t, db.Create(&reviewer).Error)

	batch := seedBatch(t, db, reviewer.ID, 2)
	keep := seedBatch(t, db, reviewer.ID, 1)

	records, err := RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	scores := ScoreSet{PeriodString: 1, PeriodTimeframe: 0, LocationString: 0.5, LocationQID: 1}
	_, _, err = UpsertAssessment(db, records[0].ID, reviewer.ID, batch.ID, &scores)
	require.Nil(t, err)

	require.Nil(t, DeleteBatchCascade(db, batch.ID))

	_, err = BatchForReviewer(db, batch.ID, reviewer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	remaining, err := RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	assert.Empty(t, remaining)

	assessment, err := AssessmentFor(db, records[0].ID, reviewer.ID)
	require.Nil(t, err)
	assert.Nil(t, assessment)

	// 其他批次不受影响
	keptRecords, err := RecordsByBatch(db, keep.ID)
	require.Nil(t, err)
	assert.Len(t, keptRecords, 1)
}

func TestSearchRecordsScopedToReviewer(t *testing.T) {
	db := newTestDatabase(t)

	alice := Reviewer{Username: "alice2", Email: "alice2@example.com", PasswordHash: "x"}
	bob := Reviewer{Username: "bob2", Email: "bob2@example.com", PasswordHash: "x"}
	require.Nil(t, db.Create(&alice).Error)
	require.Nil(t, db.Create(&bob).Error)

	aliceBatch := seedBatch(t, db, alice.ID, 1)
	require.Nil(t, db.Create(&Record{
		ResponseID: "r_x",
		BatchID:    aliceBatch.ID,
		Title:      utils.StrToPtr("A Journey Through Provence"),
	}).Error)

	bobBatch := seedBatch(t, db, bob.ID, 0)
	require.Nil(t, db.Create(&Record{
		ResponseID: "r_y",
		BatchID:    bobBatch.ID,
		Title:      utils.StrToPtr("Provence Revisited"),
	}).Error)

	results, err := SearchRecords(db, alice.ID, "Provence")
	require.Nil(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "r_x", results[0].ResponseID)
}
