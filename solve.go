package twocaptcha

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Solve submits the challenge and polls until the service returns a solution,
// reports a terminal error, or MaxWait of polling has elapsed.
//
// Only transport and protocol failures are returned as errors. Service
// refusals, ResultTimeout and ResultCancelled (ctx ended) come back as the
// outcome's Kind. Observers see every outcome Solve returns.
func (s *Solver) Solve(ctx context.Context, req ChallengeRequest) (SolveOutcome, error) {
	log := s.log.With(slog.String("solve_id", uuid.NewString()))

	out, err := s.solve(ctx, log, req, s.InitialDelay(), s.PollInterval())
	if err != nil {
		var te *TransportError
		if !errors.As(err, &te) || ctx.Err() == nil {
			log.Warn("CAPTCHA solve failed", slog.Any("error", err))
			return SolveOutcome{}, err
		}
		out = SolveOutcome{Kind: ResultCancelled}
	}

	s.notify(out)
	return out, nil
}

func (s *Solver) solve(ctx context.Context, log *slog.Logger, req ChallengeRequest, initialDelay, pollInterval time.Duration) (SolveOutcome, error) {
	sub, err := s.Submit(ctx, req)
	if err != nil {
		return SolveOutcome{}, err
	}
	if sub.Kind != ResultOK {
		log.Warn("CAPTCHA submission rejected", slog.String("kind", sub.Kind.String()))
		return sub, nil
	}
	if sub.Token == "" {
		return SolveOutcome{}, &MalformedResponseError{Op: opSubmit, Body: okPrefix}
	}

	ticket := sub.Token
	log = log.With(slog.String("ticket", ticket))
	log.Info("CAPTCHA task created")

	if err := s.sleep(ctx, initialDelay); err != nil {
		log.Info("CAPTCHA solve cancelled", slog.Any("error", err))
		return SolveOutcome{Kind: ResultCancelled}, nil
	}

	out, err := s.Poll(ctx, ticket)
	if err != nil {
		return SolveOutcome{}, err
	}

	var elapsed time.Duration
	polls := 1
	for out.Kind == ResultNotReady {
		if err := s.sleep(ctx, pollInterval); err != nil {
			log.Info("CAPTCHA solve cancelled", slog.Int("polls", polls), slog.Any("error", err))
			return SolveOutcome{Kind: ResultCancelled}, nil
		}
		elapsed += pollInterval
		if elapsed > MaxWait {
			log.Warn("CAPTCHA solve timed out", slog.Int("polls", polls), slog.Duration("elapsed", elapsed))
			return SolveOutcome{Kind: ResultTimeout}, nil
		}
		if out, err = s.Poll(ctx, ticket); err != nil {
			return SolveOutcome{}, err
		}
		polls++
	}

	if out.Kind != ResultOK {
		log.Warn("CAPTCHA not solved", slog.String("kind", out.Kind.String()), slog.Int("polls", polls))
		return out, nil
	}
	if out.Token == "" {
		return SolveOutcome{}, &MalformedResponseError{Op: opPoll, Body: okPrefix}
	}
	log.Info("CAPTCHA solved", slog.Int("polls", polls))
	return out, nil
}
