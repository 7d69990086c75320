package captcha

import "context"

// Solver turns a reCAPTCHA challenge into a response token. Callers that
// only need the token, not the service's outcome kinds, depend on this.
type Solver interface {
	// Solve returns the g-recaptcha-response token for the widget with
	// siteKey embedded in pageURL.
	Solve(ctx context.Context, siteKey, pageURL string) (token string, err error)

	// Balance reports the funds left on the account, in USD.
	Balance(ctx context.Context) (float64, error)
}
