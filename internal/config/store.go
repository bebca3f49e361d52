package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Store holds the process-wide configuration. Readers get an immutable
// snapshot; Reload builds and validates a new snapshot before swapping it
// in, so a failed reload leaves the current one untouched.
type Store struct {
	path    string
	current atomic.Pointer[Config]

	// mu serialises reloads and guards listeners.
	mu        sync.Mutex
	listeners []func(*Config)
	watching  bool
}

// NewStore loads the initial configuration from path (see Load).
func NewStore(path string) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path}
	s.current.Store(cfg)
	return s, nil
}

// NewStaticStore returns a Store serving cfg. Reload re-reads from the
// default sources.
func NewStaticStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the active configuration snapshot. Callers must treat it
// as read-only.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// AuthSettings returns the auth settings of the active snapshot.
func (s *Store) AuthSettings() AuthConfig {
	return s.Current().Auth
}

// Reload re-reads every configuration source and atomically replaces the
// active snapshot. Listeners registered with OnReload are called with the
// new snapshot after the swap.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := Load(s.path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	s.current.Store(cfg)

	for _, fn := range s.listeners {
		fn(cfg)
	}
	return nil
}

// OnReload registers fn to be called after every successful reload.
func (s *Store) OnReload(fn func(*Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Watch reloads the configuration whenever the config file changes.
// It is a no-op when no config file is in use. Calling it again has no effect.
func (s *Store) Watch(logger *slog.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching {
		return nil
	}

	v, err := newViper(s.path)
	if err != nil {
		return err
	}
	if v.ConfigFileUsed() == "" {
		logger.Debug("no config file in use, not watching")
		return nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := s.Reload(); err != nil {
			logger.Error("config file changed but reload failed",
				slog.String("file", e.Name),
				slog.String("error", err.Error()))
			return
		}
		logger.Info("configuration reloaded after file change", slog.String("file", e.Name))
	})
	v.WatchConfig()
	s.watching = true

	logger.Info("watching config file", slog.String("file", v.ConfigFileUsed()))
	return nil
}
