package progress

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
Resolve 确定评审员在一个批次里当前应该看到的条目及进度。

requestedID 为0表示没有显式指定，此时选第一条未评条目，全评完则退回第一条；
requestedID 非0但不在批次里时返回 gorm.ErrRecordNotFound。
会话里保存的“上次看到的条目”由调用方作为 requestedID 传入，这里不碰会话。
*/
func Resolve(reviewerID, batchID, requestedID uint) (*Position, error) {
	return resolve(&globalSetting, reviewerID, batchID, requestedID)
}
