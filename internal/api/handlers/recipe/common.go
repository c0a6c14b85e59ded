package recipe

import (
	"net/http"

	"recipe-recommender/internal/api/middleware"
	"recipe-recommender/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getRequestID 取得請求 ID，缺少時補上
func getRequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := common.GenerateUUID()
	c.Header("X-Request-ID", id)
	return id
}

// respondError 依錯誤類型輸出對應的狀態碼與錯誤結構
func respondError(c *gin.Context, msg string, err error) {
	status, resp := common.ToErrorResponse(err, gin.IsDebugging())
	fields := []zap.Field{
		zap.Error(err),
		zap.String("request_id", getRequestID(c)),
		zap.Int("status", status),
	}
	if status >= 500 {
		common.LogError(msg, fields...)
	} else {
		common.LogWarn(msg, fields...)
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

// bindError 請求格式錯誤；請求體超過上限時回傳 413
func bindError(c *gin.Context, err error) {
	if limit, ok := middleware.IsBodyTooLarge(err); ok {
		c.JSON(http.StatusRequestEntityTooLarge, middleware.TooLargeResponse(limit))
		return
	}
	common.LogWarn("請求格式無效",
		zap.Error(err),
		zap.String("request_id", getRequestID(c)),
	)
	c.JSON(common.ErrInvalidRequest.Status, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: "invalid request format",
		Details: err.Error(),
	})
}
