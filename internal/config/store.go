package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"maps"
	"os"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/providers/file"
)

// Store publishes the current Snapshot. Replacement is a single pointer swap,
// so a reader sees either the previous snapshot or the next one in full.
type Store struct {
	loader  *Loader
	current atomic.Pointer[Snapshot]

	mu        sync.Mutex
	overrides map[string]any
	listeners []func(old, next Snapshot)
}

// NewStore creates a store and performs the initial load. Load problems are
// logged; the store always starts with a usable snapshot.
func NewStore(loader *Loader) *Store {
	if loader == nil {
		loader = &Loader{}
	}
	s := &Store{
		loader:    loader,
		overrides: make(map[string]any),
	}
	snap, err := loader.Load(nil)
	if err != nil {
		log.Printf("[config] warning: %v", err)
	}
	s.current.Store(&snap)
	return s
}

// NewStaticStore creates a store holding snap that reads no files.
func NewStaticStore(snap Snapshot) *Store {
	s := &Store{
		loader:    &Loader{},
		overrides: make(map[string]any),
	}
	s.current.Store(&snap)
	return s
}

// Current returns the active snapshot.
func (s *Store) Current() Snapshot {
	return *s.current.Load()
}

// Replace publishes next and notifies change listeners.
func (s *Store) Replace(next Snapshot) {
	s.mu.Lock()
	old := *s.current.Swap(&next)
	listeners := append([]func(Snapshot, Snapshot){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(old, next)
	}
}

// OnChange registers fn to run after every Replace.
func (s *Store) OnChange(fn func(old, next Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload rebuilds the snapshot from the config sources and the host settings
// received so far. The snapshot is published even when err is non-nil.
func (s *Store) Reload() error {
	s.mu.Lock()
	overrides := maps.Clone(s.overrides)
	s.mu.Unlock()

	snap, err := s.loader.Load(overrides)
	s.Replace(snap)
	return err
}

// ApplySettings merges settings pushed by the host and reloads. Unknown keys
// are ignored. A value of the wrong type is rejected and the key keeps its
// previous setting.
func (s *Store) ApplySettings(settings map[string]any) error {
	var errs []error
	s.mu.Lock()
	for key, value := range settings {
		canonical, ok := NormalizeKey(key)
		if !ok {
			continue
		}
		coerced, err := CoerceValue(canonical, value)
		if err != nil {
			errs = append(errs, fmt.Errorf("rejected setting %w", err))
			continue
		}
		s.overrides[canonical] = coerced
	}
	s.mu.Unlock()
	errs = append(errs, s.Reload())
	return errors.Join(errs...)
}

// Watch reloads the store whenever one of the loader's config files changes.
// It blocks until ctx is done. Files that do not exist when Watch starts are
// not watched.
func (s *Store) Watch(ctx context.Context) error {
	var providers []*file.File
	for _, path := range s.loader.Paths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fp := file.Provider(path)
		err := fp.Watch(func(_ interface{}, err error) {
			if err != nil {
				log.Printf("[config] warning: watch error on %s: %v", path, err)
				return
			}
			if err := s.Reload(); err != nil {
				log.Printf("[config] warning: %v", err)
			}
		})
		if err != nil {
			for _, p := range providers {
				_ = p.Unwatch()
			}
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		providers = append(providers, fp)
	}

	<-ctx.Done()
	for _, p := range providers {
		_ = p.Unwatch()
	}
	return nil
}
