package config

import (
	"encoding/json"
	"os"

	"llm-assessment-backend/logging"
)

/*
Criteria 四个评分维度的展示文案，key为维度名，value为提示说明。

从JSON文件的 assessment_criteria 字段读取，读取失败时退回到两条通用说明。
*/
type Criteria map[string]string

type criteriaFileSchema struct {
	AssessmentCriteria Criteria `json:"assessment_criteria"`
}

func defaultCriteria() Criteria {
	return Criteria{
		"time":  "Assess accuracy of predicted time period (0-1)",
		"space": "Assess accuracy of predicted location (0-1)",
	}
}

func LoadCriteria(path string) Criteria {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Default().WithError(err).Errorf("read criteria file [%s] fail", path)
		return defaultCriteria()
	}

	var schema criteriaFileSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		logging.Default().WithError(err).Errorf("parse criteria file [%s] fail", path)
		return defaultCriteria()
	}

	if len(schema.AssessmentCriteria) == 0 {
		return defaultCriteria()
	}

	return schema.AssessmentCriteria
}
