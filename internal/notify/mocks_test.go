// Package notify_test provides mock implementations for notification sender testing.
// Related: internal/notify/sender.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MockSender is a mock implementation of Sender for testing.
// It records all method calls and allows configuring return values and errors.
type MockSender struct {
	mu sync.Mutex

	// Configuration
	VisualError error
	SoundError  error
	SoundFunc   func(ctx context.Context, file string, volume int) error

	// Call tracking
	VisualCalls []Notification
	SoundCalls  []string
	Volumes     []int
}

// NewMockSender creates a new mock sender with default behavior (no errors)
func NewMockSender() *MockSender {
	return &MockSender{}
}

// WithSoundError configures the mock to return an error on PlaySound
func (m *MockSender) WithSoundError(err error) *MockSender {
	m.SoundError = err
	return m
}

// WithSoundFunc configures a custom playback function
func (m *MockSender) WithSoundFunc(fn func(ctx context.Context, file string, volume int) error) *MockSender {
	m.SoundFunc = fn
	return m
}

// SendVisual records the call and returns configured error
func (m *MockSender) SendVisual(n Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VisualCalls = append(m.VisualCalls, n)
	return m.VisualError
}

// PlaySound records the call and returns configured error
func (m *MockSender) PlaySound(ctx context.Context, soundFile string, volume int) error {
	m.mu.Lock()
	m.SoundCalls = append(m.SoundCalls, soundFile)
	m.Volumes = append(m.Volumes, volume)
	fn := m.SoundFunc
	err := m.SoundError
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, soundFile, volume)
	}
	return err
}

func (m *MockSender) VisualAvailable() bool { return true }
func (m *MockSender) SoundAvailable() bool  { return true }

// SoundCallCount returns the number of PlaySound calls
func (m *MockSender) SoundCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SoundCalls)
}

// VisualCallCount returns the number of SendVisual calls
func (m *MockSender) VisualCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.VisualCalls)
}

// recordingState records every SetErrorState call.
type recordingState struct {
	mu     sync.Mutex
	states []bool
}

func (r *recordingState) SetErrorState(hasError bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, hasError)
}

func (r *recordingState) calls() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.states...)
}

// recordingWarner records warnings.
type recordingWarner struct {
	mu       sync.Mutex
	messages []string
}

func (w *recordingWarner) Warn(message string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, message)
}

func (w *recordingWarner) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}

// fakeTimer is a manually fired timer.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// fakeTimers hands out fakeTimers and remembers them in order.
type fakeTimers struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (ft *fakeTimers) AfterFunc(d time.Duration, f func()) Timer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) get(i int) *fakeTimer {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.timers[i]
}

func (ft *fakeTimers) len() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.timers)
}

// Common test errors
var (
	ErrMockSound = errors.New("mock sound notification error")
)
