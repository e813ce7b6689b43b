package handler

import (
	"net/http"

	"llm-assessment-backend/logging"
	"llm-assessment-backend/server/common"

	"github.com/gin-gonic/gin"
)

func Logout(ctx *gin.Context) {
	if err := common.ClearReviewer(ctx); err != nil {
		logging.Default().WithError(err).Errorf("clear session error: %s", err.Error())
		ctx.JSON(http.StatusInternalServerError, common.MakeUnknownErrorResp())
		return
	}

	ctx.JSON(http.StatusOK, common.MakeSuccessResp(nil))
}
