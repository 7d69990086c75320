package twocaptcha

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

const (
	opSubmit  = "submit"
	opPoll    = "poll"
	opBalance = "balance"
	opReport  = "report"

	reportRecorded = "OK_REPORT_RECORDED"
)

// get performs a GET and returns the body of a 2xx response.
func (s *Solver) get(ctx context.Context, op, url string) (string, error) {
	body, status, err := s.doer.Do(ctx, "GET", url, requestHeaders(s.userAgent))
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	if status < 200 || status > 299 {
		s.log.Warn("twocaptcha: non-2xx response",
			slog.String("op", op),
			slog.Int("status", status),
			slog.String("body", truncate(string(body), 200)))
		return "", statusError(op, status)
	}
	return string(body), nil
}

// Submit sends a challenge to the service. On ResultOK the Token is the
// ticket id to pass to Poll. Service-side refusals such as ResultZeroBalance
// are returned as outcomes, not errors.
func (s *Solver) Submit(ctx context.Context, req ChallengeRequest) (SolveOutcome, error) {
	body, err := s.get(ctx, opSubmit, submitURL(s.baseURL, s.apiKey, req, s.proxy))
	if err != nil {
		return SolveOutcome{}, err
	}
	return classifyResponse(opSubmit, body)
}

// Poll asks for the solution of a submitted ticket. ResultNotReady means the
// service is still working on it.
func (s *Solver) Poll(ctx context.Context, ticketID string) (SolveOutcome, error) {
	body, err := s.get(ctx, opPoll, resultURL(s.baseURL, s.apiKey, actionGet, ticketID))
	if err != nil {
		return SolveOutcome{}, err
	}
	return classifyResponse(opPoll, body)
}

// Balance returns the account balance in USD. A body that is not a number
// yields zero rather than an error.
func (s *Solver) Balance(ctx context.Context) (float64, error) {
	body, err := s.get(ctx, opBalance, resultURL(s.baseURL, s.apiKey, actionBalance, ""))
	if err != nil {
		return 0, err
	}
	bal, perr := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if perr != nil {
		s.log.Warn("twocaptcha: unparsable balance", slog.String("body", truncate(body, 200)))
		return 0, nil
	}
	return bal, nil
}

// Report tells the service whether the solution for ticketID was accepted.
// A recorded report comes back as ResultOK with an empty token.
func (s *Solver) Report(ctx context.Context, ticketID string, correct bool) (SolveOutcome, error) {
	action := actionReportBad
	if correct {
		action = actionReportGood
	}
	body, err := s.get(ctx, opReport, resultURL(s.baseURL, s.apiKey, action, ticketID))
	if err != nil {
		return SolveOutcome{}, err
	}
	if body == reportRecorded {
		return SolveOutcome{Kind: ResultOK}, nil
	}
	return classifyResponse(opReport, body)
}
