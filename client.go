package twocaptcha

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Observer receives the final outcome of each Solve.
type Observer func(SolveOutcome)

// Solver submits reCAPTCHA challenges to 2captcha and polls for solutions.
// A Solver is safe for concurrent use.
type Solver struct {
	apiKey    string
	baseURL   string
	proxy     *ProxyConfig
	userAgent string
	doer      Doer
	log       *slog.Logger

	// sleep is swapped out by tests.
	sleep func(ctx context.Context, d time.Duration) error

	mu           sync.RWMutex
	initialDelay time.Duration
	pollInterval time.Duration
	observers    []Observer
}

// NewSolver creates a fully-wired Solver.
func NewSolver(cfg Config) (*Solver, error) {
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	doer := cfg.Transport
	if doer == nil {
		sd, err := newStealthDoer(cfg.Profile, cfg.Proxy, cfg.transportOptions...)
		if err != nil {
			return nil, err
		}
		doer = sd
	}

	s := &Solver{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		proxy:        cfg.Proxy,
		userAgent:    cfg.Profile.UserAgent,
		doer:         doer,
		log:          cfg.Logger,
		sleep:        sleepContext,
		initialDelay: cfg.InitialDelay,
		pollInterval: cfg.PollInterval,
		observers:    append([]Observer(nil), cfg.Observers...),
	}

	if s.proxy != nil {
		s.log.Debug("twocaptcha: proxy configured",
			slog.String("proxy", stealth.MaskProxy(s.proxy.URL())),
			slog.String("kind", string(s.proxy.Kind)))
	}
	return s, nil
}

// Subscribe registers an observer for subsequent Solve calls.
func (s *Solver) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// notify calls every observer in registration order.
func (s *Solver) notify(out SolveOutcome) {
	s.mu.RLock()
	obs := s.observers
	s.mu.RUnlock()
	for _, o := range obs {
		o(out)
	}
}

// InitialDelay returns the wait between submission and the first poll.
func (s *Solver) InitialDelay() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialDelay
}

// SetInitialDelay changes the wait before the first poll of later Solve calls.
func (s *Solver) SetInitialDelay(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: initial delay %s must be positive", ErrInvalidDelay, d)
	}
	s.mu.Lock()
	s.initialDelay = d
	s.mu.Unlock()
	return nil
}

// PollInterval returns the wait between consecutive polls.
func (s *Solver) PollInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pollInterval
}

// SetPollInterval changes the poll cadence of later Solve calls.
func (s *Solver) SetPollInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: poll interval %s must be positive", ErrInvalidDelay, d)
	}
	s.mu.Lock()
	s.pollInterval = d
	s.mu.Unlock()
	return nil
}

// HasProxy reports whether a proxy is configured.
func (s *Solver) HasProxy() bool { return s.proxy != nil }

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
