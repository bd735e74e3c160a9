package response

import (
	"errors"
	"net/http"

	cErr "modelhub/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Response 所有 JSON 回應的外層；成功時 Code 為 0
type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

const defaultMessage = "Request Success"

// Success 只把資料放進 context，由 FormatHandler 負責包裝與輸出。
// data 為 gin.H 且帶 "message" 時，該值會成為 description 並從 data 移除
func Success(c *gin.Context, data any) {
	message := defaultMessage
	if h, ok := data.(gin.H); ok {
		if m, ok := h["message"].(string); ok && m != "" {
			message = m
			delete(h, "message")
		}
	}
	c.Set("data", data)
	c.Set("message", message)
	c.Abort()
}

// AbortWithError 交給 Recovery 統一輸出錯誤
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.AbortWithStatusJSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Message:     msg,
		Description: desc,
	})
}

// FailByErr 非 *cErr.Error 一律視為 500
func FailByErr(c *gin.Context, requestID string, err error) {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), appErr.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}
