package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoryString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		expected string
	}{
		"Argument":      {category: Argument, expected: "Argument Error"},
		"Configuration": {category: Configuration, expected: "Configuration Error"},
		"Prerequisite":  {category: Prerequisite, expected: "Prerequisite Error"},
		"Runtime":       {category: Runtime, expected: "Runtime Error"},
		"Unknown":       {category: ErrorCategory(99), expected: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.category.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantSteps    int
	}{
		"argument": {
			err:          NewArgumentError("missing argument", "provide the argument", "see --help"),
			wantCategory: Argument,
			wantSteps:    2,
		},
		"argument with usage": {
			err:          NewArgumentErrorWithUsage("invalid arg", "errbell check <text>", "quote the text"),
			wantCategory: Argument,
			wantSteps:    1,
		},
		"config": {
			err:          NewConfigError("bad volume", "use 0-100"),
			wantCategory: Configuration,
			wantSteps:    1,
		},
		"prerequisite": {
			err:          NewPrerequisiteError("no player"),
			wantCategory: Prerequisite,
		},
		"runtime": {
			err:          NewRuntimeError("stream closed", "restart", "check the host"),
			wantCategory: Runtime,
			wantSteps:    2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Len(t, tt.err.Remediation, tt.wantSteps)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}

	assert.Equal(t, "errbell check <text>", NewArgumentErrorWithUsage("x", "errbell check <text>").Usage)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, Wrap(nil, Runtime))
	})

	t.Run("wraps error with category", func(t *testing.T) {
		t.Parallel()
		original := fmt.Errorf("drain stalled")
		result := Wrap(original, Runtime, "fix it")

		assert.Equal(t, Runtime, result.Category)
		assert.Equal(t, "drain stalled", result.Message)
		assert.Equal(t, []string{"fix it"}, result.Remediation)
		assert.ErrorIs(t, result, original)
	})
}

func TestWrapWithMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, WrapWithMessage(nil, Runtime, "wrapper"))
	})

	t.Run("wraps error with message", func(t *testing.T) {
		t.Parallel()
		result := WrapWithMessage(&CLIError{Message: "inner"}, Configuration, "outer")

		assert.Equal(t, Configuration, result.Category)
		assert.Equal(t, "outer: inner", result.Message)
	})
}

func TestIsCLIError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsCLIError(NewArgumentError("test")))
	assert.True(t, IsCLIError(fmt.Errorf("context: %w", NewRuntimeError("inner"))))
	assert.False(t, IsCLIError(stderrors.New("plain")))
	assert.False(t, IsCLIError(nil))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	t.Run("returns the CLIError itself", func(t *testing.T) {
		t.Parallel()
		original := NewArgumentError("test")
		assert.Same(t, original, AsCLIError(original))
	})

	t.Run("finds a wrapped CLIError", func(t *testing.T) {
		t.Parallel()
		original := NewConfigError("bad")
		require.NotNil(t, AsCLIError(fmt.Errorf("load: %w", original)))
		assert.Same(t, original, AsCLIError(fmt.Errorf("load: %w", original)))
	})

	t.Run("returns nil for other errors", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, AsCLIError(&testError{}))
	})
}

// testError is a helper for testing non-CLIError errors
type testError struct{}

func (e *testError) Error() string { return "test error" }
