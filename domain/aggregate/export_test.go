package aggregate

import (
	"strings"
	"testing"

	"llm-assessment-backend/repository/reviewdata"
	"llm-assessment-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRoundTrip(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch, records := seedBatch(t, db, reviewerID, 2)

	// 只给第一条打分，第二条保持未评审
	scores := reviewdata.ScoreSet{
		PeriodString:    1,
		PeriodTimeframe: 0.5,
		LocationString:  0,
		LocationQID:     1,
	}
	assessment, _, err := reviewdata.UpsertAssessment(db, records[0].ID, reviewerID, batch.ID, &scores)
	require.Nil(t, err)

	data := exportResults(setting, reviewerID, batch.ID)
	require.NotNil(t, data)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], "\t")
	assert.Equal(t, exportColumns, header)

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	assessedRow := strings.Split(lines[1], "\t")
	require.Len(t, assessedRow, len(exportColumns))
	assert.Equal(t, "r_0", assessedRow[columnIndex["response_id"]])
	assert.Equal(t, "1", assessedRow[columnIndex["period_string_score"]])
	assert.Equal(t, "0.5", assessedRow[columnIndex["period_timeframe_score"]])
	assert.Equal(t, "0", assessedRow[columnIndex["location_string_score"]])
	assert.Equal(t, "1", assessedRow[columnIndex["location_qid_score"]])
	assert.Equal(t, assessment.UpdatedAt.Format(assessmentDateLayout),
		assessedRow[columnIndex["assessment_date"]])

	unassessedRow := strings.Split(lines[2], "\t")
	require.Len(t, unassessedRow, len(exportColumns))
	assert.Equal(t, "r_1", unassessedRow[columnIndex["response_id"]])
	for _, column := range []string{
		"period_string_score", "period_timeframe_score",
		"location_string_score", "location_qid_score", "assessment_date",
	} {
		assert.Emptyf(t, unassessedRow[columnIndex[column]], "column=%s", column)
	}
}

func TestExportMirrorsLegacyColumns(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch := reviewdata.Batch{Filename: "f.csv", ReviewerID: reviewerID, TotalResponses: 1}
	require.Nil(t, db.Create(&batch).Error)
	require.Nil(t, db.Create(&reviewdata.Record{
		ResponseID:             "r_0",
		BatchID:                batch.ID,
		GTPreferredLocation:    utils.StrToPtr("Paris"),
		GTLocation:             utils.StrToPtr("Paris"),
		GTPreferredLocationQID: utils.StrToPtr("Q90"),
		GTLocationQID:          utils.StrToPtr("Q90"),
	}).Error)

	data := exportResults(setting, reviewerID, batch.ID)
	require.NotNil(t, data)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)

	header := strings.Split(lines[0], "\t")
	row := strings.Split(lines[1], "\t")
	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	assert.Equal(t, "Paris", row[columnIndex["gt_preferred_location"]])
	assert.Equal(t, "Paris", row[columnIndex["gt_location"]])
	assert.Equal(t, "Q90", row[columnIndex["gt_preferred_location_QID"]])
	assert.Equal(t, "Q90", row[columnIndex["gt_location_QID"]])
}

func TestExportSanitizesCells(t *testing.T) {
	setting, db := newTestSetting(t)
	const reviewerID = 1

	batch := reviewdata.Batch{Filename: "f.csv", ReviewerID: reviewerID, TotalResponses: 1}
	require.Nil(t, db.Create(&batch).Error)
	require.Nil(t, db.Create(&reviewdata.Record{
		ResponseID: "r_0",
		BatchID:    batch.ID,
		Title:      utils.StrToPtr("line one\nline\ttwo"),
	}).Error)

	data := exportResults(setting, reviewerID, batch.ID)
	require.NotNil(t, data)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, len(exportColumns))
	assert.Contains(t, lines[1], "line one line two")
}
