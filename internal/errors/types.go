package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 오류 코드 타입
type ErrorCode string

const (
	// 공통
	ErrCodeInternalServer   ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"

	// 저장소 / 색인
	ErrCodeStoreUnavailable  ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeConversionFailed  ErrorCode = "CONVERSION_FAILED"
	ErrCodeExtractionFailed  ErrorCode = "EXTRACTION_FAILED"

	// 외부 AI 서비스
	ErrCodeEmbeddingFailed            ErrorCode = "EMBEDDING_FAILED"
	ErrCodeGenerationQuotaExceeded    ErrorCode = "GENERATION_QUOTA_EXCEEDED"
	ErrCodeGenerationPermissionDenied ErrorCode = "GENERATION_PERMISSION_DENIED"
	ErrCodeGenerationFailed           ErrorCode = "GENERATION_FAILED"
)

// ErrorType 오류 분류
type ErrorType int

const (
	ErrorTypeSystem ErrorType = iota
	ErrorTypeBusiness
	ErrorTypeValidation
	ErrorTypeExternal
)

// AppError 애플리케이션 오류 구조체
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Type     ErrorType   `json:"type"`
	HTTPCode int         `json:"-"`
	Details  interface{} `json:"details,omitempty"`
	Cause    error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause 원인 오류 연결
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails 오류 상세 정보 추가
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// NewSystemError 시스템 오류 생성
func NewSystemError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
	}
}

// NewExternalError 외부 서비스 오류 생성
func NewExternalError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Type:     ErrorTypeExternal,
		HTTPCode: getHTTPCodeForError(code),
	}
}

// NewValidationError 검증 오류 생성
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:     ErrCodeValidationFailed,
		Message:  message,
		Type:     ErrorTypeValidation,
		HTTPCode: http.StatusBadRequest,
	}
}

// NewStoreUnavailableError 청크 저장소 접근 불가
func NewStoreUnavailableError(cause error) *AppError {
	return &AppError{
		Code:     ErrCodeStoreUnavailable,
		Message:  "chunk store unavailable",
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
		Cause:    cause,
	}
}

// NewSourceUnavailableError 문서 소스 폴더 접근 불가
func NewSourceUnavailableError(dir string, cause error) *AppError {
	return &AppError{
		Code:     ErrCodeSourceUnavailable,
		Message:  fmt.Sprintf("document source %q unavailable", dir),
		Type:     ErrorTypeSystem,
		HTTPCode: http.StatusInternalServerError,
		Cause:    cause,
	}
}

func getHTTPCodeForError(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidationFailed, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeGenerationQuotaExceeded:
		return http.StatusTooManyRequests
	case ErrCodeGenerationPermissionDenied:
		return http.StatusForbidden
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf 오류에서 ErrorCode 추출 (AppError가 아니면 INTERNAL_SERVER_ERROR)
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalServer
}

// GetAppError AppError로 변환, 아니면 시스템 오류로 래핑
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewSystemError(ErrCodeInternalServer, "internal server error").WithCause(err)
}
