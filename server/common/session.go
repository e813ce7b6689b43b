package common

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "assessment_session"

	sessionKeyReviewerID = "reviewer_id"
	sessionKeyUsername   = "username"
	sessionKeyEmail      = "email"
)

var store *sessions.CookieStore

// InitSession 必须在挂路由之前调用，secret用于cookie签名。
func InitSession(secret string) {
	store = sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
}

func currentSession(ctx *gin.Context) *sessions.Session {
	// 解码失败时Get仍返回一个可用的空会话
	session, _ := store.Get(ctx.Request, sessionName)
	return session
}

func SetReviewer(ctx *gin.Context, reviewerID uint, username, email string) error {
	session := currentSession(ctx)
	session.Values[sessionKeyReviewerID] = reviewerID
	session.Values[sessionKeyUsername] = username
	session.Values[sessionKeyEmail] = email
	return session.Save(ctx.Request, ctx.Writer)
}

func ClearReviewer(ctx *gin.Context) error {
	session := currentSession(ctx)
	session.Options.MaxAge = -1
	return session.Save(ctx.Request, ctx.Writer)
}

func sessionReviewer(ctx *gin.Context) (*UserInfo, bool) {
	session := currentSession(ctx)

	id, ok := session.Values[sessionKeyReviewerID].(uint)
	if !ok || id == 0 {
		return nil, false
	}

	username, _ := session.Values[sessionKeyUsername].(string)
	email, _ := session.Values[sessionKeyEmail].(string)

	return &UserInfo{
		ReviewerID: id,
		Username:   username,
		Email:      email,
	}, true
}

func lastRecordKey(batchID uint) string {
	return fmt.Sprintf("last_record_%d", batchID)
}

// LastRecordID 该评审员在batchID里上次查看的条目，没有时second为false。
func LastRecordID(ctx *gin.Context, batchID uint) (uint, bool) {
	session := currentSession(ctx)
	id, ok := session.Values[lastRecordKey(batchID)].(uint)
	return id, ok
}

func SetLastRecordID(ctx *gin.Context, batchID, recordID uint) error {
	session := currentSession(ctx)
	session.Values[lastRecordKey(batchID)] = recordID
	return session.Save(ctx.Request, ctx.Writer)
}
