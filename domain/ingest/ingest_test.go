package ingest

import (
	"errors"
	"fmt"
	"testing"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/repository/reviewdata"

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

func TestIngestWithoutResponseIDColumn(t *testing.T) {
	setting, db := newTestSetting(t)

	data := []byte("author,title\nA1,T1\nA2,T2\nA3,T3\n")
	res := ingestFile(setting, data, "predictions.csv", 7)

	require.True(t, res.OK)
	assert.Equal(t, "Successfully processed 3 responses", res.Message)
	assert.Contains(t, res.Warning, "'response_id' column is missing")
	assert.Equal(t, 3, res.RowCount)

	var batch reviewdata.Batch
	require.Nil(t, db.First(&batch, res.BatchID).Error)
	assert.Equal(t, 3, batch.TotalResponses)
	assert.Equal(t, uint(7), batch.ReviewerID)

	records, err := reviewdata.RecordsByBatch(db, batch.ID)
	require.Nil(t, err)
	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, fmt.Sprintf("auto_gen_%d", i), record.ResponseID)
	}
}

func TestIngestMixedResponseIDs(t *testing.T) {
	setting, db := newTestSetting(t)

	// 第二行的 response_id 为空白，第三行与第一行重复
	data := []byte("response_id,author\nr_1,A1\n  ,A2\nr_1,A3\n")
	res := ingestFile(setting, data, "predictions.csv", 1)
	require.True(t, res.OK)

	records, err := reviewdata.RecordsByBatch(db, res.BatchID)
	require.Nil(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "r_1", records[0].ResponseID)
	assert.Equal(t, "auto_gen_1", records[1].ResponseID)
	// 重复的外部标识被原样保留，各自成为独立条目
	assert.Equal(t, "r_1", records[2].ResponseID)
}

func TestIngestReconcilesLegacyColumns(t *testing.T) {
	setting, db := newTestSetting(t)

	header := "response_id\tgt_location\tgt_preferred_location_QID\tmodel_id\tdocument_length\tkeep_fine_tuning\n"
	row := "r_1\tParis\tQ90\tgpt-4\t2048\ttrue\n"
	res := ingestFile(setting, []byte(header+row), "predictions.tsv", 1)
	require.True(t, res.OK)

	records, err := reviewdata.RecordsByBatch(db, res.BatchID)
	require.Nil(t, err)
	require.Len(t, records, 1)
	record := records[0]

	// 旧列填新字段，新列填旧字段，两边取值一致
	require.NotNil(t, record.GTPreferredLocation)
	require.NotNil(t, record.GTLocation)
	assert.Equal(t, "Paris", *record.GTPreferredLocation)
	assert.Equal(t, *record.GTPreferredLocation, *record.GTLocation)

	require.NotNil(t, record.GTPreferredLocationQID)
	require.NotNil(t, record.GTLocationQID)
	assert.Equal(t, "Q90", *record.GTPreferredLocationQID)
	assert.Equal(t, *record.GTPreferredLocationQID, *record.GTLocationQID)

	require.NotNil(t, record.ModelName)
	require.NotNil(t, record.ModelID)
	assert.Equal(t, "gpt-4", *record.ModelName)
	assert.Equal(t, *record.ModelName, *record.ModelID)

	require.NotNil(t, record.DocumentLength)
	assert.Equal(t, 2048, *record.DocumentLength)
	require.NotNil(t, record.KeepFineTuning)
	assert.True(t, *record.KeepFineTuning)

	// 缺失的来源列入库为NULL
	assert.Nil(t, record.Author)
	assert.Nil(t, record.GTAcceptedLocations)
}

func TestIngestRollsBackOnRowFailure(t *testing.T) {
	setting, db := newTestSetting(t)

	// 通过create回调让指定行入库失败，验证整个批次回滚
	err := db.Callback().Create().Before("gorm:create").Register("ingest_test_fail_marker", func(d *gorm.DB) {
		if record, ok := d.Statement.Dest.(*reviewdata.Record); ok && record.ResponseID == "boom" {
			d.AddError(errors.New("forced row failure"))
		}
	})
	require.Nil(t, err)

	data := []byte("response_id\nr_1\nboom\nr_3\n")
	res := ingestFile(setting, data, "predictions.csv", 1)

	assert.False(t, res.OK)
	assert.Equal(t, "Database error: failed to save the uploaded file", res.Message)

	var batchCount, recordCount int64
	require.Nil(t, db.Model(&reviewdata.Batch{}).Count(&batchCount).Error)
	require.Nil(t, db.Model(&reviewdata.Record{}).Count(&recordCount).Error)
	assert.Zero(t, batchCount)
	assert.Zero(t, recordCount)
}

func TestIngestRejectsEmptyFile(t *testing.T) {
	setting, db := newTestSetting(t)

	res := ingestFile(setting, nil, "empty.csv", 1)
	assert.False(t, res.OK)
	assert.Equal(t, "CSV file appears to be empty", res.Message)

	var batchCount int64
	require.Nil(t, db.Model(&reviewdata.Batch{}).Count(&batchCount).Error)
	assert.Zero(t, batchCount)
}
