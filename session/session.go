// Package session owns one client session: the feed store plus the
// snapshot and live inputs that fill it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"dealfeed/feedstore"
	"dealfeed/livechannel"
	"dealfeed/snapshot"
	"dealfeed/types"
)

// Status is a point-in-time view of the session's inputs
type Status struct {
	Loaded     bool
	LoadErr    error
	Live       bool
	StreamDone bool
	Merged     int
}

// Config wires a Session
type Config struct {
	Store   *feedstore.Store
	Loader  *snapshot.Loader
	Channel *livechannel.Channel
	Logger  *slog.Logger
}

// Session applies snapshot loads and live merges to its store and signals
// Changes after every mutation.
type Session struct {
	store   *feedstore.Store
	loader  *snapshot.Loader
	channel *livechannel.Channel
	logger  *slog.Logger

	changes chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	status Status
}

// New creates a Session; nothing runs until Start
func New(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Session{
		store:   cfg.Store,
		loader:  cfg.Loader,
		channel: cfg.Channel,
		logger:  cfg.Logger.With("component", "session"),
		changes: make(chan struct{}, 1),
	}
}

// Start kicks off the snapshot load and the live stream concurrently.
func (s *Session) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Reload(ctx)
	}()

	s.channel.Start(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		livechannel.Forward(ctx, s.channel.Messages(), s.store, s.merged)
		s.mu.Lock()
		s.status.StreamDone = true
		s.mu.Unlock()
		s.logger.Info("live stream finished")
		s.notify()
	}()
}

// Reload replaces the store from a fresh snapshot. A failed load keeps the
// current contents and is reported through Status.
func (s *Session) Reload(ctx context.Context) error {
	_, err := s.loader.Load(ctx)

	s.mu.Lock()
	s.status.LoadErr = err
	if err == nil {
		s.status.Loaded = true
	}
	s.mu.Unlock()

	s.notify()
	return err
}

func (s *Session) merged(item types.DealItem) {
	s.mu.Lock()
	s.status.Merged++
	s.mu.Unlock()
	s.logger.Debug("live item merged", "id", item.ID)
	s.notify()
}

// notify posts a coalesced change signal
func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Changes signals that the store or status changed since the last receive
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Store returns the session's feed store
func (s *Session) Store() *feedstore.Store {
	return s.store
}

// Status returns the current status
func (s *Session) Status() Status {
	s.mu.Lock()
	st := s.status
	s.mu.Unlock()
	st.Live = s.channel.Connected()
	return st
}

// Close tears down the live stream and waits for the session's goroutines.
// An in-flight snapshot load is allowed to finish and is still applied.
func (s *Session) Close() error {
	err := s.channel.Close()
	s.wg.Wait()
	return err
}
