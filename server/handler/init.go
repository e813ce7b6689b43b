package handler

import (
	"llm-assessment-backend/config"
)

type Setting struct {
	Criteria config.Criteria
}

var globalSetting Setting

func Init(setting *Setting) {
	globalSetting = *setting
}
