package common

import (
	"net/http"
	"time"

	"llm-assessment-backend/logging"

	"github.com/gin-gonic/gin"
)

const RequestContextKeyUser = "request-user-info"

type UserInfo struct {
	ReviewerID uint
	Username   string
	Email      string
}

func LogRequest(ctx *gin.Context) {
	start := time.Now()

	ctx.Next()

	logging.Default().Infof("%s %s [%d] %v",
		ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start))
}

// SetUserInfo 把会话里的评审员写进请求上下文。debug模式下没有会话时
// 注入一个固定的调试账户，跳过登录流程。
func SetUserInfo(debug bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, ok := sessionReviewer(ctx); ok {
			ctx.Set(RequestContextKeyUser, user)
		} else if debug {
			ctx.Set(RequestContextKeyUser, &UserInfo{
				ReviewerID: 1,
				Username:   "debug",
			})
		}

		ctx.Next()
	}
}

func RejectNotLogin(debug bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exist := ctx.Get(RequestContextKeyUser); !exist {
			if !debug {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, MakeErrorResp("Please log in first"))
				return
			}
		}

		ctx.Next()
	}
}
