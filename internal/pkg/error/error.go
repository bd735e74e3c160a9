package error

import (
	"errors"
	"net/http"
)

// Error 對外的應用錯誤；errorMsg 是穩定的短代號，errorDesc 給人看
type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}
}

// From 包過的 *Error 也能取出；其他錯誤一律視為 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalServer(err.Error())
}

// 400
func ValidatePathParamsErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request/params", errorDesc)
}

func BadRequest(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request", errorDesc)
}

func BadRequestParams(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request-params", errorDesc)
}

// 404
func NotFound(errorDesc string) *Error {
	return New(http.StatusNotFound, NOT_FOUND, "not-found", errorDesc)
}

func ProviderNotFound(errorDesc string) *Error {
	return New(http.StatusNotFound, PROVIDER_NOT_FOUND, "provider-not-found", errorDesc)
}

func ModelNotFound(errorDesc string) *Error {
	return New(http.StatusNotFound, MODEL_NOT_FOUND, "model-not-found", errorDesc)
}

func MethodNotAllowed(errorDesc string) *Error {
	return New(http.StatusMethodNotAllowed, METHOD_NOT_ALLOWED, "method-not-allowed", errorDesc)
}

// 429
func RateLimitExceeded(errorDesc string) *Error {
	return New(http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded", errorDesc)
}

// 5xx
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}

func (e *Error) ErrorDesc() string {
	return e.errorDesc
}

func (e *Error) Error() string {
	return e.errorMsg
}

// MapHttpStatusToError handler 直接寫了錯誤狀態碼卻沒有 c.Error 時使用
func MapHttpStatusToError(status int, desc string) *Error {
	switch status {
	case http.StatusBadRequest:
		return BadRequest(desc)
	case http.StatusNotFound:
		return NotFound(desc)
	case http.StatusMethodNotAllowed:
		return MethodNotAllowed(desc)
	case http.StatusTooManyRequests:
		return RateLimitExceeded(desc)
	case http.StatusServiceUnavailable:
		return ServiceUnavailable(desc)
	case http.StatusGatewayTimeout:
		return GatewayTimeout(desc)
	default:
		return InternalServer(desc)
	}
}
