package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-recommender/internal/pkg/common"
)

// BodySizeLimit 限制請求體大小；maxBytes <= 0 時不限制。
// 宣告的長度超過上限時直接回傳 413，未宣告長度的請求則在讀取時截斷。
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_bytes", maxBytes),
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, TooLargeResponse(maxBytes))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// TooLargeResponse 請求體超過上限時的錯誤響應
func TooLargeResponse(maxBytes int64) common.ErrorResponse {
	return common.ErrorResponse{
		Code:    common.ErrCodeRequestTooLarge,
		Message: "request body too large",
		Details: fmt.Sprintf("limit is %d bytes", maxBytes),
	}
}

// IsBodyTooLarge 讀取請求體時是否因超過上限而失敗
func IsBodyTooLarge(err error) (int64, bool) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return mbe.Limit, true
	}
	return 0, false
}
