package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	applog "themeapp/internal/log"
)

const (
	defaultDelay          = time.Second
	defaultBannerDuration = 3 * time.Second
)

var (
	// ErrIncomplete is returned when a required field is blank.
	ErrIncomplete = errors.New("contact: all fields are required")
	// ErrInFlight is returned while an earlier submission for the same visitor is pending.
	ErrInFlight = errors.New("contact: submission already in progress")
)

// Config tunes the simulated send.
type Config struct {
	Delay          time.Duration
	BannerDuration time.Duration
}

// Result is what the page renders once a submission completes.
type Result struct {
	Form         Form
	Sent         bool
	DismissAfter time.Duration
}

// Submitter simulates delivery of contact messages. Nothing leaves the process.
type Submitter struct {
	delay   time.Duration
	banner  time.Duration
	sleep   func(time.Duration)
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewSubmitter fills unset durations with one second of delay and a three second banner.
func NewSubmitter(cfg Config) *Submitter {
	delay := cfg.Delay
	if delay <= 0 {
		delay = defaultDelay
	}
	banner := cfg.BannerDuration
	if banner <= 0 {
		banner = defaultBannerDuration
	}
	return &Submitter{
		delay:   delay,
		banner:  banner,
		sleep:   time.Sleep,
		pending: make(map[string]struct{}),
	}
}

// BannerDuration reports how long the success banner stays visible.
func (s *Submitter) BannerDuration() time.Duration {
	return s.banner
}

// Submit waits out the fixed delay and then reports success with cleared
// fields. The wait runs to completion even if ctx is cancelled.
func (s *Submitter) Submit(ctx context.Context, key string, form Form) (Result, error) {
	if !form.Ready() {
		return Result{Form: form}, ErrIncomplete
	}

	if !s.begin(key) {
		return Result{Form: form}, ErrInFlight
	}
	defer s.finish(key)

	s.sleep(s.delay)
	applog.Info(ctx, "contact message accepted", "visitor", key, "delay", s.delay)

	return Result{Form: Form{}, Sent: true, DismissAfter: s.banner}, nil
}

func (s *Submitter) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[key]; busy {
		return false
	}
	s.pending[key] = struct{}{}
	return true
}

func (s *Submitter) finish(key string) {
	s.mu.Lock()
	delete(s.pending, key)
	s.mu.Unlock()
}
