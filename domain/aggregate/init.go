package aggregate

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

// AverageScores 按需计算一个批次里该评审员四个维度各自的平均分。
func AverageScores(reviewerID, batchID uint) (*Averages, error) {
	return averageScores(&globalSetting, reviewerID, batchID)
}

// ExportResults 把批次条目连同该评审员的评分导出为制表符分隔的文本。
// 内部出错时返回nil并记录原因，调用方应视为“导出不可用”而不是零行结果。
func ExportResults(reviewerID, batchID uint) []byte {
	return exportResults(&globalSetting, reviewerID, batchID)
}
