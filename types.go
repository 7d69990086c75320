package twocaptcha

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// ChallengeRequest describes one reCAPTCHA challenge to hand to the service.
type ChallengeRequest struct {
	SiteKey string
	PageURL string

	// UseProxyForSolve asks the service to solve through the Solver's proxy.
	// Ignored when the Solver has no proxy configured.
	UseProxyForSolve bool
}

// ProxyKind is the proxy protocol understood by both the transport and the service.
type ProxyKind string

const (
	ProxyHTTP   ProxyKind = "HTTP"
	ProxySOCKS4 ProxyKind = "SOCKS4"
	ProxySOCKS5 ProxyKind = "SOCKS5"
)

// ProxyConfig routes the Solver's traffic through a proxy.
type ProxyConfig struct {
	Host string
	Port int
	Kind ProxyKind

	// Login and Password authenticate against the proxy. Set both or neither.
	Login    string
	Password string
}

// Validate checks host, port range, protocol and credentials.
func (p *ProxyConfig) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidProxy)
	}
	if p.Port < 1 || p.Port > 65535 {
		return fmt.Errorf("%w: port %d must be between 1 and 65535", ErrInvalidProxy, p.Port)
	}
	switch p.Kind {
	case ProxyHTTP, ProxySOCKS4, ProxySOCKS5:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidProxy, p.Kind)
	}
	if (p.Login == "") != (p.Password == "") {
		return fmt.Errorf("%w: login and password must be set together", ErrInvalidProxy)
	}
	return nil
}

// Addr returns host:port.
func (p *ProxyConfig) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// serviceAddr is the value of the service's proxy field:
// login:password@host:port, or host:port without credentials.
func (p *ProxyConfig) serviceAddr() string {
	if p.Login == "" {
		return p.Addr()
	}
	return p.Login + ":" + p.Password + "@" + p.Addr()
}

// URL returns the proxy as a dialable URL for the transport, credentials
// included.
func (p *ProxyConfig) URL() string {
	u := url.URL{Scheme: "http", Host: p.Addr()}
	switch p.Kind {
	case ProxySOCKS4:
		u.Scheme = "socks4"
	case ProxySOCKS5:
		u.Scheme = "socks5"
	}
	if p.Login != "" {
		u.User = url.UserPassword(p.Login, p.Password)
	}
	return u.String()
}

// SolveOutcome is the result of Submit, Poll, Report or Solve.
// Token is only set when Kind is ResultOK.
type SolveOutcome struct {
	Kind  ResultKind
	Token string
}

// OK reports whether the outcome carries a token.
func (o SolveOutcome) OK() bool { return o.Kind == ResultOK }
