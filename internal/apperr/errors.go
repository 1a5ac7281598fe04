package apperr

import (
	"errors"
	"fmt"
)

// Code is a typed error code enum for consistent error identification by
// whatever transport hosts the engine.
type Code string

const (
	// ─── Assessment ────────────────────────────────────────────────────
	CodeUnknownTestType            Code = "UNKNOWN_TEST_TYPE"
	CodeSessionNotFound            Code = "SESSION_NOT_FOUND"
	CodeAssessmentAlreadyCompleted Code = "ASSESSMENT_ALREADY_COMPLETED"
	CodeFreeTierLimitReached       Code = "FREE_TIER_LIMIT_REACHED"
	CodeInvalidSubmission          Code = "INVALID_SUBMISSION"

	// ─── Reasoning model ───────────────────────────────────────────────
	CodeExternalModelUnavailable Code = "EXTERNAL_MODEL_UNAVAILABLE"

	// ─── Users & mentorship ────────────────────────────────────────────
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeMentorNotFound       Code = "MENTOR_NOT_FOUND"
	CodeInvalidSessionType   Code = "INVALID_SESSION_TYPE"
	CodeAlreadyAppliedMentor Code = "ALREADY_APPLIED_MENTOR"

	// ─── Server ────────────────────────────────────────────────────────
	CodeInternal Code = "INTERNAL_ERROR"
)

// Message returns a human-readable message for a given error code.
func Message(code Code) string {
	switch code {
	// ─── Assessment ────────────────────────────────────────────────────
	case CodeUnknownTestType:
		return "Invalid test type."
	case CodeSessionNotFound:
		return "Assessment not found."
	case CodeAssessmentAlreadyCompleted:
		return "Assessment already completed."
	case CodeFreeTierLimitReached:
		return "Free users can only take 2 tests. Upgrade to Premium!"
	case CodeInvalidSubmission:
		return "Submission is invalid."

	// ─── Reasoning model ───────────────────────────────────────────────
	case CodeExternalModelUnavailable:
		return "Report model is unavailable."

	// ─── Users & mentorship ────────────────────────────────────────────
	case CodeUserNotFound:
		return "User not found."
	case CodeMentorNotFound:
		return "Mentor not found."
	case CodeInvalidSessionType:
		return "Invalid session type."
	case CodeAlreadyAppliedMentor:
		return "Already applied as mentor."

	default:
		return "An internal server error occurred."
	}
}

// Error carries a stable code, a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same code, so wrapped instances compare
// equal to the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New builds an error for code with the default message.
func New(code Code) *Error {
	return &Error{Code: code, Message: Message(code)}
}

// Wrap builds an error for code that keeps err as its cause.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: Message(code), Err: err}
}

// Withf builds an error for code with a custom message.
func Withf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnknownTestType            = New(CodeUnknownTestType)
	ErrSessionNotFound            = New(CodeSessionNotFound)
	ErrAssessmentAlreadyCompleted = New(CodeAssessmentAlreadyCompleted)
	ErrFreeTierLimitReached       = New(CodeFreeTierLimitReached)
	ErrInvalidSubmission          = New(CodeInvalidSubmission)
	ErrExternalModelUnavailable   = New(CodeExternalModelUnavailable)
	ErrUserNotFound               = New(CodeUserNotFound)
	ErrMentorNotFound             = New(CodeMentorNotFound)
	ErrInvalidSessionType         = New(CodeInvalidSessionType)
	ErrAlreadyAppliedMentor       = New(CodeAlreadyAppliedMentor)
)

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
