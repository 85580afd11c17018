// Package errors provides standardized error handling for the carrier
// quoting platform.
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
	// Transport / protocol failures. The platform should alert or retry.
	ErrCodeCarrierUnreachable   ErrorCode = "CARRIER_UNREACHABLE"
	ErrCodeCarrierTimeout       ErrorCode = "CARRIER_TIMEOUT"
	ErrCodeCarrierResponseError ErrorCode = "CARRIER_RESPONSE_ERROR"
	ErrCodeMalformedResponse    ErrorCode = "MALFORMED_RESPONSE"
	ErrCodeCarrierAuthFailed    ErrorCode = "CARRIER_AUTH_FAILED"

	// Partial data: a required upstream mapping is absent.
	ErrCodeMissingQuestionMapping ErrorCode = "MISSING_QUESTION_MAPPING"
	ErrCodeMissingActivityCode    ErrorCode = "MISSING_ACTIVITY_CODE"
	ErrCodeMissingIndustryCode    ErrorCode = "MISSING_INDUSTRY_CODE"

	// Configuration / infrastructure.
	ErrCodeProfileInvalid    ErrorCode = "CARRIER_PROFILE_INVALID"
	ErrCodeAuditWriteFailed  ErrorCode = "AUDIT_WRITE_FAILED"
	ErrCodeIndexWriteFailed  ErrorCode = "INDEX_WRITE_FAILED"
	ErrCodeTokenCacheFailed  ErrorCode = "TOKEN_CACHE_FAILED"
	ErrCodeQuoteInputInvalid ErrorCode = "QUOTE_INPUT_INVALID"
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

// NewCarrierUnreachableError creates a retryable connection error.
func NewCarrierUnreachableError(carrierID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierUnreachable,
		Message:   "Carrier host unreachable",
		Details:   fmt.Sprintf("carrier: %s, error: %s", carrierID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierTimeoutError creates a retryable timeout error.
func NewCarrierTimeoutError(carrierID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierTimeout,
		Message:   "Carrier call exceeded timeout",
		Details:   fmt.Sprintf("carrier: %s", carrierID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierResponseError creates a retryable error for non-2xx carrier responses.
func NewCarrierResponseError(carrierID string, statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeCarrierResponseError,
		Message:   "Carrier returned an error status",
		Details:   fmt.Sprintf("carrier: %s, httpStatus: %d", carrierID, statusCode),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates a non-retryable parse error.
func NewMalformedResponseError(carrierID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "Carrier response could not be parsed",
		Details:   fmt.Sprintf("carrier: %s, error: %s", carrierID, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCarrierAuthFailedError creates a non-retryable authentication error.
// Token fetches are never retried automatically; re-submission is the
// caller's decision.
func NewCarrierAuthFailedError(carrierID string, err error) *StandardError {
	details := fmt.Sprintf("carrier: %s", carrierID)
	if err != nil {
		details += fmt.Sprintf(", error: %s", err.Error())
	}
	return &StandardError{
		Code:      ErrCodeCarrierAuthFailed,
		Message:   "Carrier authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingQuestionMappingError creates a non-retryable mapping error for
// a question the carrier requires but has no configured code for.
func NewMissingQuestionMappingError(carrierID, questionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingQuestionMapping,
		Message:   "Required question has no carrier code",
		Details:   fmt.Sprintf("carrier: %s, questionId: %s", carrierID, questionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingActivityCodeError creates a non-retryable error for a location
// with no usable class code.
func NewMissingActivityCodeError(carrierID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingActivityCode,
		Message:   "No activity code available for rating",
		Details:   fmt.Sprintf("carrier: %s", carrierID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingIndustryCodeError creates a non-retryable error when the
// application carries no industry-code mapping the carrier can use.
func NewMissingIndustryCodeError(carrierID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingIndustryCode,
		Message:   "No industry code mapping for carrier",
		Details:   fmt.Sprintf("carrier: %s", carrierID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileInvalidError creates a non-retryable configuration error.
func NewProfileInvalidError(carrierID, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileInvalid,
		Message:   "Carrier profile failed validation",
		Details:   fmt.Sprintf("carrier: %s, %s", carrierID, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuditWriteFailedError creates a retryable audit persistence error.
func NewAuditWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuditWriteFailed,
		Message:   "Carrier call audit record could not be written",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexWriteFailedError creates a retryable outcome index error.
func NewIndexWriteFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Quote outcome could not be indexed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTokenCacheFailedError creates a retryable token cache error.
func NewTokenCacheFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTokenCacheFailed,
		Message:   "Carrier token cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuoteInputInvalidError creates a non-retryable input error.
func NewQuoteInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQuoteInputInvalid,
		Message:   "Quote request input failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for workflow-level
// error handling. Carrier quote calls themselves are never retried by the
// core; these counts apply only to infrastructure failures surfaced to the
// workflow engine.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAuditWriteFailed,
		ErrCodeIndexWriteFailed,
		ErrCodeTokenCacheFailed:
		return 3

	case ErrCodeCarrierUnreachable,
		ErrCodeCarrierTimeout,
		ErrCodeCarrierResponseError:
		return 0 // carrier calls are re-submitted by the caller, not retried

	default:
		return 0
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
	case strings.Contains(codeStr, "CARRIER_AUTH") || strings.Contains(codeStr, "TOKEN"):
		return "AUTH"
	case strings.Contains(codeStr, "CARRIER"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "MISSING"):
		return "MAPPING"
	case strings.Contains(codeStr, "AUDIT") || strings.Contains(codeStr, "INDEX"):
		return "PERSISTENCE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "MALFORMED"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
