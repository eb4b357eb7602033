// Package notify_test tests the console indicator and warners.
// Related: internal/notify/indicator.go
// Tags: notify, indicator, warner

package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleIndicator_WritesOnlyChanges(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	ind := NewConsoleIndicator(&buf)

	ind.SetErrorState(true)
	ind.SetErrorState(true)
	ind.SetErrorState(false)
	ind.SetErrorState(false)
	ind.SetErrorState(true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"✗ Error detected",
		"✓ No errors detected",
		"✗ Error detected",
	}, lines)
}

func TestConsoleIndicator_FirstClearIsWritten(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	NewConsoleIndicator(&buf).SetErrorState(false)
	assert.Equal(t, "✓ No errors detected\n", buf.String())
}

func TestConsoleWarner(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	NewConsoleWarner(&buf).Warn("sound missing")
	assert.Equal(t, "⚠ sound missing\n", buf.String())
}

func TestFanOut(t *testing.T) {
	t.Parallel()

	a, b := &recordingState{}, &recordingState{}
	Indicators{a, b}.SetErrorState(true)
	assert.Equal(t, []bool{true}, a.calls())
	assert.Equal(t, []bool{true}, b.calls())

	wa, wb := &recordingWarner{}, &recordingWarner{}
	Warners{wa, wb}.Warn("x")
	assert.Equal(t, 1, wa.count())
	assert.Equal(t, 1, wb.count())
}
