package twocaptcha

import (
	"context"
	"fmt"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Doer executes one HTTP request and returns the body and status code.
// Implementations must be safe for concurrent use.
type Doer interface {
	Do(ctx context.Context, method, url string, headers map[string]string) (body []byte, status int, err error)
}

// stealthDoer adapts a go-stealth BrowserClient to Doer.
type stealthDoer struct {
	client *stealth.BrowserClient
}

// newStealthDoer builds the default transport, routed through proxy when set.
// extra options are applied last.
func newStealthDoer(profile stealth.BrowserProfile, proxy *ProxyConfig, extra ...stealth.ClientOption) (*stealthDoer, error) {
	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(headerOrder),
		stealth.WithProfile(profile.TLSProfile),
	}
	if proxy != nil {
		opts = append(opts, stealth.WithProxy(proxy.URL()))
	}
	opts = append(opts, extra...)
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return &stealthDoer{client: bc}, nil
}

// Do returns as soon as ctx is done, even while the request is in flight.
func (d *stealthDoer) Do(ctx context.Context, method, url string, headers map[string]string) ([]byte, int, error) {
	body, _, status, err := d.client.DoWithHeaderOrderCtx(ctx, method, url, headers, nil, headerOrder)
	if err != nil {
		return nil, 0, err
	}
	return body, status, nil
}
