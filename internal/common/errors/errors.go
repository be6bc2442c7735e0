// Package errors provides standardized error handling for the price search service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeQueryTooShort      ErrorCode = "QUERY_TOO_SHORT"
	ErrCodeIntentUnresolvable ErrorCode = "INTENT_UNRESOLVABLE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeHistoryWriteFailed       ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodeHistoryReadFailed        ErrorCode = "HISTORY_READ_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeSourceTimeout     ErrorCode = "SOURCE_TIMEOUT"
	ErrCodeSourceParseFailed ErrorCode = "SOURCE_PARSE_FAILED"
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"

	ErrCodeLLMTimeout          ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMRequestFailed    ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeLLMMalformedReply   ErrorCode = "LLM_MALFORMED_REPLY"
	ErrCodeIntentParsingFailed ErrorCode = "INTENT_PARSING_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTooShortError creates a non-retryable query length error.
func NewQueryTooShortError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTooShort,
		Message:   "Query must be at least 2 characters",
		Details:   fmt.Sprintf("query: %q", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentUnresolvableError creates a non-retryable intent error. The query
// was understood but does not describe a purchasable product.
func NewIntentUnresolvableError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentUnresolvable,
		Message:   "Query does not describe a searchable product",
		Details:   fmt.Sprintf("query: %q", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError creates a retryable history insert error.
func NewHistoryWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Search history insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryReadFailedError creates a retryable history query error.
func NewHistoryReadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryReadFailed,
		Message:   "Search history query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Discovery cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceUnavailableError creates a retryable fetcher error. The orchestrator
// treats the source as having produced zero results for this request.
func NewSourceUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   fmt.Sprintf("Source '%s' unavailable", source),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceTimeoutError creates a non-retryable source timeout error. The
// search returns without this source rather than retrying inline.
func NewSourceTimeoutError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceTimeout,
		Message:   fmt.Sprintf("Source '%s' timed out", source),
		Details:   "fetch exceeded its per-source deadline",
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceParseFailedError creates a non-retryable response parse error.
func NewSourceParseFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceParseFailed,
		Message:   fmt.Sprintf("Source '%s' returned an unparseable response", source),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCredentialError creates a non-retryable credential error. Raised
// at construction time, not per request; the fetcher reports unavailable.
func NewMissingCredentialError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingCredential,
		Message:   fmt.Sprintf("Source '%s' has no API credential configured", source),
		Details:   "set the corresponding api_key to enable this source",
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable LLM timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "AI completion timeout",
		Details:   "completion call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMRequestFailedError creates a retryable LLM transport error.
func NewLLMRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMRequestFailed,
		Message:   "AI completion request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMMalformedReplyError creates a non-retryable LLM response error. The
// reply arrived but failed JSON schema validation.
func NewLLMMalformedReplyError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMMalformedReply,
		Message:   "AI completion returned malformed JSON",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentParsingFailedError creates a retryable intent parsing error.
func NewIntentParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentParsingFailed,
		Message:   "Intent extraction error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeHistoryWriteFailed,
		ErrCodeHistoryReadFailed,
		ErrCodeSourceUnavailable,
		ErrCodeLLMRequestFailed,
		ErrCodeIntentParsingFailed:
		return 3 // Retryable technical errors

	case ErrCodeCacheUnavailable,
		ErrCodeLLMTimeout:
		return 1

	default:
		return 0 // Business errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "HISTORY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "SOURCE") || strings.Contains(codeStr, "CREDENTIAL"):
		return "SOURCE"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "INTENT"):
		return "AI"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "QUERY"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
