package twocaptcha

import (
	"fmt"
	"log/slog"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

const (
	defaultBaseURL      = "https://2captcha.com"
	defaultInitialDelay = 10 * time.Second
	defaultPollInterval = 10 * time.Second

	// MaxWait bounds the time spent between polls of one Solve. It is not
	// configurable.
	MaxWait = 120 * time.Second
)

// Config holds all configuration for the Solver.
type Config struct {
	// APIKey is the 2captcha account key. Required.
	APIKey string

	// Proxy routes the Solver's own traffic through a proxy and makes it
	// available to the service for requests with UseProxyForSolve set.
	Proxy *ProxyConfig

	// InitialDelay is the wait between submission and the first poll.
	// Default: 10s
	InitialDelay time.Duration

	// PollInterval is the wait between consecutive polls.
	// Default: 10s
	PollInterval time.Duration

	// BaseURL overrides the service root, e.g. for a mirror.
	// Default: https://2captcha.com
	BaseURL string

	// Profile selects the browser fingerprint of the default transport.
	// Default: first of stealth.BuiltinProfiles
	Profile stealth.BrowserProfile

	// Transport replaces the go-stealth client. Proxy routing is then the
	// caller's responsibility.
	Transport Doer

	// Observers are notified of every Solve outcome.
	Observers []Observer

	// Logger receives structured logs. Default: slog.Default()
	Logger *slog.Logger

	// transportOptions are appended to the go-stealth options of the
	// default transport.
	transportOptions []stealth.ClientOption
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Proxy != nil && cfg.Proxy.Kind == "" {
		p := *cfg.Proxy
		p.Kind = ProxyHTTP
		cfg.Proxy = &p
	}
	if cfg.Profile.UserAgent == "" && len(stealth.BuiltinProfiles) > 0 {
		cfg.Profile = stealth.BuiltinProfiles[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
}

// Validate reports the first invalid field.
func (cfg *Config) Validate() error {
	if cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if cfg.Proxy != nil {
		if err := cfg.Proxy.Validate(); err != nil {
			return err
		}
	}
	if err := validateDelay("initial delay", cfg.InitialDelay); err != nil {
		return err
	}
	return validateDelay("poll interval", cfg.PollInterval)
}

func validateDelay(name string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %s %s is negative", ErrInvalidDelay, name, d)
	}
	return nil
}
