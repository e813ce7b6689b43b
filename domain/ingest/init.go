package ingest

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Setting struct {
	GetDatabase func() *gorm.DB
	Logger      *logrus.Logger
}

var globalSetting Setting

func Init(setting *Setting) {
	globalSetting = *setting
}

/*
Result 一次入库的结果。OK为false时整个批次未落库，Message可直接展示给用户。

Warning 是表格校验阶段产生的非致命提示（缺少response_id列、缺少推荐列等），
成功与否都可能携带。
*/
type Result struct {
	OK       bool
	Message  string
	Warning  string
	BatchID  uint
	RowCount int
}

// IngestFile 解析上传的表格并在一个事务里创建批次和全部条目。
func IngestFile(data []byte, filename string, reviewerID uint) *Result {
	return ingestFile(&globalSetting, data, filename, reviewerID)
}
