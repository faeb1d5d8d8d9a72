// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/orgrun/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "already_running_error",
			code:    errors.ErrAlreadyRunning,
			message: "Process already running.",
			wantStr: "[ALREADY_RUNNING] Process already running.",
		},
		{
			name:    "invalid_config_error",
			code:    errors.ErrInvalidConfig,
			message: "config_data must be a mapping",
			wantStr: "[INVALID_CONFIG] config_data must be a mapping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrNonZeroExit, "Process failed with exit code %d", 3)
	if err.Message != "Process failed with exit code 3" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrTempFileIO, "failed to write temporary config file")

		if err.Code != errors.ErrTempFileIO {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrTempFileIO)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[TEMP_FILE_IO] failed to write temporary config file: permission denied"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrSpawnFailure, "failed to start %s", "organize")
		if err.Message != "failed to start organize" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestCauseAndUserMessage(t *testing.T) {
	t.Run("cause_drops_code_prefix", func(t *testing.T) {
		err := errors.Wrap(stderrors.New("disk full"), errors.ErrTempFileIO, "failed to write temporary config file")
		if got := err.Cause(); got != "failed to write temporary config file: disk full" {
			t.Errorf("Cause() = %q", got)
		}
	})

	t.Run("user_message_unwraps_chain", func(t *testing.T) {
		inner := errors.New(errors.ErrInvalidConfig, "config_data must contain a 'rules' sequence")
		wrapped := fmt.Errorf("bridge: %w", inner)
		if got := errors.UserMessage(wrapped); got != "config_data must contain a 'rules' sequence" {
			t.Errorf("UserMessage() = %q", got)
		}
	})

	t.Run("user_message_plain_error", func(t *testing.T) {
		if got := errors.UserMessage(stderrors.New("boom")); got != "boom" {
			t.Errorf("UserMessage() = %q", got)
		}
		if got := errors.UserMessage(nil); got != "" {
			t.Errorf("UserMessage(nil) = %q", got)
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSpawnFailure, "failed to start").
		WithDetail("executable", "organize").
		WithDetail("kind", "direct")

	if err.Details["executable"] != "organize" {
		t.Errorf("WithDetail() executable = %v, want %v", err.Details["executable"], "organize")
	}

	if err.Details["kind"] != "direct" {
		t.Errorf("WithDetail() kind = %v, want %v", err.Details["kind"], "direct")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrAlreadyRunning, "error 1")
	err2 := errors.New(errors.ErrAlreadyRunning, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with OrgrunError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotRunning, "not running"),
			code:     errors.ErrNotRunning,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotRunning, "not running"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrStreamError, "read failed"),
			code:     errors.ErrStreamError,
			expected: true,
		},
		{
			name:     "non_orgrun_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "orgrun_error",
			err:      errors.New(errors.ErrHistoryStore, "store closed"),
			expected: errors.ErrHistoryStore,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrDocumentLoad, "cannot read rules")
	configErr := errors.Wrap(fileErr, errors.ErrInvalidConfig, "invalid document")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrInvalidConfig) {
			t.Error("Top level should have ErrInvalidConfig code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var orgErr *errors.OrgrunError
		if stderrors.As(configErr.Unwrap(), &orgErr) {
			if !errors.IsErrorCode(orgErr, errors.ErrDocumentLoad) {
				t.Error("Middle error should have ErrDocumentLoad code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}
