package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("submit: %w", Withf(CodeSessionNotFound, "session %s missing", "abc"))

	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected wrapped error to match ErrSessionNotFound")
	}
	if errors.Is(err, ErrAssessmentAlreadyCompleted) {
		t.Fatalf("did not expect match against a different code")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"sentinel", ErrUnknownTestType, CodeUnknownTestType},
		{"wrapped", fmt.Errorf("outer: %w", ErrMentorNotFound), CodeMentorNotFound},
		{"cause kept", Wrap(CodeInvalidSubmission, errors.New("bad index")), CodeInvalidSubmission},
		{"plain", errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(CodeExternalModelUnavailable, cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
}
