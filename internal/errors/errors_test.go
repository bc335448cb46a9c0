package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	// Verify all expected error codes exist
	codes := []string{
		ErrConfig,
		ErrExec,
		ErrProcess,
		ErrSession,
		ErrLog,
		ErrArtifact,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	// Verify codes are unique
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .scrapewatch.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "session error",
			code:       ErrSession,
			message:    "tmux session 'scraper' not found",
			suggestion: "Start the scraper session first",
		},
		{
			name:       "exec error",
			code:       ErrExec,
			message:    "Couldn't run ps",
			suggestion: "Make sure procps is installed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 127")
	err := Wrap(cause, "Couldn't list processes")

	assert.Equal(t, ErrExec, err.Code)
	assert.Equal(t, "Couldn't list processes", err.Message)
	assert.Equal(t, cause, err.Cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("no server running on /tmp/tmux-1000/default")
	err := WrapWithCode(cause, ErrSession, "Couldn't query tmux", "Check that tmux is installed")

	assert.Equal(t, ErrSession, err.Code)
	assert.Equal(t, "Couldn't query tmux", err.Message)
	assert.Equal(t, "Check that tmux is installed", err.Suggestion)
	assert.Equal(t, cause, err.Cause)
}

func TestErrorFormat(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapWithCode(cause, ErrLog, "Couldn't read the scraper log", "Check file permissions")

	msg := err.Error()

	// Failure symbol leads the output
	assert.True(t, strings.HasPrefix(msg, "✗ "), "error should start with failure symbol")
	assert.Contains(t, msg, "Couldn't read the scraper log")
	assert.Contains(t, msg, "permission denied")
	assert.Contains(t, msg, "Check file permissions")
}

func TestErrorFormatWithoutSuggestion(t *testing.T) {
	err := New(ErrProcess, "No matching worker process", "")
	msg := err.Error()

	assert.Contains(t, msg, "No matching worker process")
	assert.NotContains(t, msg, "\n\n\n")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, "wrapper")

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrArtifact, "Couldn't open spreadsheet", "")

	assert.True(t, IsCode(err, ErrArtifact))
	assert.False(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(nil, ErrArtifact))
	assert.False(t, IsCode(errors.New("plain"), ErrArtifact))
}

func TestIsCodeWrapped(t *testing.T) {
	inner := New(ErrSession, "session gone", "")
	outer := Wrap(inner, "outer context")

	// errors.As walks the chain, so the outer code wins but the inner is findable
	assert.True(t, IsCode(outer, ErrExec))
}
