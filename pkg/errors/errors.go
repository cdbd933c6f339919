// Package errors 提供统一的错误定义
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeUnknown         ErrorCode = "1000"
	CodeInvalidParam    ErrorCode = "1001"
	CodeNotFound        ErrorCode = "1004"
	CodeTooManyRequests ErrorCode = "1006"
	CodeInternalError   ErrorCode = "1007"

	// 配置错误 (2xxx)
	CodeNotConfigured ErrorCode = "2001"

	// 外部服务错误 (5xxx)
	CodeVendorError    ErrorCode = "5001"
	CodeTransportError ErrorCode = "5002"
	CodeCacheError     ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	// UpstreamStatus 上游返回的 HTTP 状态码，仅 CodeVendorError 有值
	UpstreamStatus int   `json:"-"`
	Err            error `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 返回附带详细信息的副本
func (e *AppError) WithDetail(detail string) *AppError {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithError 返回附带底层错误的副本
func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// New 创建应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装底层错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// Validation 创建参数校验错误 (400)
func Validation(message string) *AppError {
	return New(CodeInvalidParam, message)
}

// NotConfigured 创建凭据缺失错误
func NotConfigured(provider string) *AppError {
	return New(CodeNotConfigured, provider+" API key not configured")
}

// Vendor 创建上游非 2xx 错误，消息中包含上游状态码，响应体放入 Detail
func Vendor(vendor string, status int, body string) *AppError {
	return &AppError{
		Code:           CodeVendorError,
		Message:        fmt.Sprintf("%s API error: status %d", vendor, status),
		Detail:         body,
		HTTPStatus:     codeToHTTPStatus(CodeVendorError),
		UpstreamStatus: status,
	}
}

// Transport 创建网络/超时错误
func Transport(vendor string, err error) *AppError {
	return Wrap(err, CodeTransportError, vendor+" request failed")
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam    = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound        = New(CodeNotFound, "Endpoint not found")
	ErrTooManyRequests = New(CodeTooManyRequests, "rate limit exceeded")
	ErrInternalError   = New(CodeInternalError, "internal server error")
)

// IsAppError 检查错误链中是否包含 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError，非 AppError 统一视为内部错误
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeUnknown, "internal server error")
}

// IsCode 检查错误码
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}
