package ingest

import (
	"fmt"

	"llm-assessment-backend/repository/reviewdata"

	"gorm.io/gorm"
)

func ingestFile(setting *Setting, data []byte, filename string, reviewerID uint) *Result {
	ok, validateMessage := validateTable(data, filename)
	if !ok {
		return &Result{OK: false, Message: validateMessage}
	}

	t, err := parseTable(data, filename)
	if err != nil {
		// 结构校验已通过，这里只剩格式损坏一类的解析错误
		return &Result{OK: false, Message: fmt.Sprintf("Error processing file: %s", err.Error()), Warning: validateMessage}
	}

	batch := reviewdata.Batch{
		Filename:       filename,
		ReviewerID:     reviewerID,
		TotalResponses: len(t.rows),
	}

	err = setting.GetDatabase().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		for i, row := range t.rows {
			record := t.buildRecord(i, row, batch.ID)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		setting.Logger.WithError(err).Errorf("ingest file [%s] fail: %s", filename, err.Error())
		return &Result{OK: false, Message: "Database error: failed to save the uploaded file", Warning: validateMessage}
	}

	return &Result{
		OK:       true,
		Message:  fmt.Sprintf("Successfully processed %d responses", len(t.rows)),
		Warning:  validateMessage,
		BatchID:  batch.ID,
		RowCount: len(t.rows),
	}
}
