package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ariel-frischer/errbell/internal/config"
	"github.com/ariel-frischer/errbell/internal/detect"
)

const (
	// ErrorStateDuration is how long the visual error state stays up.
	ErrorStateDuration = 2000 * time.Millisecond

	// DefaultPlaybackTimeout bounds a single sound playback.
	DefaultPlaybackTimeout = 5 * time.Second
)

// Timer is the part of *time.Timer the dispatcher uses.
type Timer interface {
	Stop() bool
}

// Dispatcher plays the alert and drives the visual error state.
// It satisfies gate.Dispatcher.
type Dispatcher struct {
	sender  Sender
	state   StateSetter
	warner  Warner
	resolve func(soundFile string) (string, error)

	afterFunc       func(d time.Duration, f func()) Timer
	playbackTimeout time.Duration

	mu         sync.Mutex
	clearTimer Timer
	generation uint64

	wg sync.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSoundResolver replaces ResolveSound.
func WithSoundResolver(resolve func(soundFile string) (string, error)) DispatcherOption {
	return func(d *Dispatcher) {
		d.resolve = resolve
	}
}

// WithAfterFunc replaces time.AfterFunc for the error state timer.
func WithAfterFunc(afterFunc func(d time.Duration, f func()) Timer) DispatcherOption {
	return func(d *Dispatcher) {
		d.afterFunc = afterFunc
	}
}

// WithPlaybackTimeout sets the playback bound. Zero or negative means none.
func WithPlaybackTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.playbackTimeout = timeout
	}
}

// NewDispatcher creates a Dispatcher. Nil state or warner default to no-ops
// and the log respectively.
func NewDispatcher(sender Sender, state StateSetter, warner Warner, opts ...DispatcherOption) *Dispatcher {
	if state == nil {
		state = Indicators{}
	}
	if warner == nil {
		warner = LogWarner{}
	}
	d := &Dispatcher{
		sender:  sender,
		state:   state,
		warner:  warner,
		resolve: ResolveSound,
		afterFunc: func(dur time.Duration, f func()) Timer {
			return time.AfterFunc(dur, f)
		},
		playbackTimeout: DefaultPlaybackTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch delivers one alert for source. release is called exactly once:
// immediately if the sound is missing, otherwise when playback completes.
//
// Playback runs in its own goroutine and is detached from ctx cancellation;
// only the playback timeout can cut it short.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg config.Snapshot, source detect.Source, release func()) {
	path, err := d.resolve(cfg.SoundFile)
	if err != nil {
		d.warner.Warn(fmt.Sprintf("errbell alert sound unavailable: %v", err))
		release()
		return
	}

	playCtx := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer release()

		if d.playbackTimeout > 0 {
			var cancel context.CancelFunc
			playCtx, cancel = context.WithTimeout(playCtx, d.playbackTimeout)
			defer cancel()
		}
		if err := d.sender.PlaySound(playCtx, path, cfg.Volume); err != nil {
			log.Printf("[notify] sound error: %v", err)
			return
		}
		log.Printf("[notify] alert triggered by %s", source)
	}()

	if cfg.Desktop {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.sender.SendVisual(AlertFor(source)); err != nil {
				log.Printf("[notify] warning: failed to send desktop notification: %v", err)
			}
		}()
	}

	d.showErrorState()
}

// showErrorState raises the error state and (re)starts the clear timer.
// A timer superseded by a later dispatch does nothing when it fires.
func (d *Dispatcher) showErrorState() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.clearTimer != nil {
		d.clearTimer.Stop()
	}
	d.generation++
	gen := d.generation

	d.state.SetErrorState(true)
	d.clearTimer = d.afterFunc(ErrorStateDuration, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if d.generation != gen {
			return
		}
		d.clearTimer = nil
		d.state.SetErrorState(false)
	})
}

// Wait blocks until all started playbacks and notifications have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
