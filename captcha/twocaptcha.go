package captcha

import (
	"context"
	"fmt"
	"log/slog"

	twocaptcha "github.com/anatolykoptev/go-twocaptcha"
)

const balanceWarnLevel = 5.0 // warn when balance drops below $5

// OutcomeError carries a service outcome that produced no token.
type OutcomeError struct {
	Kind twocaptcha.ResultKind
}

func (e *OutcomeError) Error() string {
	return fmt.Sprintf("2captcha: %s", e.Kind)
}

// backend is the part of *twocaptcha.Solver used here.
type backend interface {
	Solve(ctx context.Context, req twocaptcha.ChallengeRequest) (twocaptcha.SolveOutcome, error)
	Balance(ctx context.Context) (float64, error)
}

// TwoCaptcha implements Solver on top of a twocaptcha.Solver.
type TwoCaptcha struct {
	solver   backend
	useProxy bool
}

var _ Solver = (*TwoCaptcha)(nil)

// NewTwoCaptcha wraps s. With useProxy set, challenges are solved through
// the proxy s was configured with.
func NewTwoCaptcha(s *twocaptcha.Solver, useProxy bool) *TwoCaptcha {
	return &TwoCaptcha{solver: s, useProxy: useProxy}
}

// Solve returns the solution token, or an *OutcomeError when the service
// finished without one.
func (t *TwoCaptcha) Solve(ctx context.Context, siteKey, pageURL string) (string, error) {
	// Check balance before solve
	bal, balErr := t.solver.Balance(ctx)
	if balErr == nil && bal < balanceWarnLevel {
		slog.Warn("2captcha balance low", slog.Float64("balance", bal))
	}

	out, err := t.solver.Solve(ctx, twocaptcha.ChallengeRequest{
		SiteKey:          siteKey,
		PageURL:          pageURL,
		UseProxyForSolve: t.useProxy,
	})
	if err != nil {
		return "", fmt.Errorf("2captcha solve: %w", err)
	}
	if !out.OK() {
		return "", &OutcomeError{Kind: out.Kind}
	}
	return out.Token, nil
}

// Balance returns the account balance in USD.
func (t *TwoCaptcha) Balance(ctx context.Context) (float64, error) {
	return t.solver.Balance(ctx)
}
