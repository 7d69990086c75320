package twocaptcha

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// call is one request seen by fakeDoer.
type call struct {
	path  string
	query url.Values
}

// fakeDoer answers requests from respond and records them.
type fakeDoer struct {
	mu      sync.Mutex
	calls   []call
	respond func(c call) (body string, status int, err error)
}

func (f *fakeDoer) Do(_ context.Context, method, rawURL string, _ map[string]string) ([]byte, int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, 0, err
	}
	c := call{path: u.Path, query: u.Query()}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	body, status, err := f.respond(c)
	return []byte(body), status, err
}

func (f *fakeDoer) callsTo(path string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.path == path {
			out = append(out, c)
		}
	}
	return out
}

// scripted answers in.php with submit and res.php with polls in order,
// repeating the last poll body once the script runs out.
func scripted(submit string, polls ...string) *fakeDoer {
	var mu sync.Mutex
	i := 0
	return &fakeDoer{respond: func(c call) (string, int, error) {
		if c.path == submitPath {
			return submit, 200, nil
		}
		mu.Lock()
		defer mu.Unlock()
		if len(polls) == 0 {
			return "", 200, nil
		}
		body := polls[min(i, len(polls)-1)]
		i++
		return body, 200, nil
	}}
}

// sleepRecorder stands in for real sleeping and remembers each wait.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.waits = append(r.waits, d)
	r.mu.Unlock()
	return nil
}

func (r *sleepRecorder) total() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum time.Duration
	for _, d := range r.waits {
		sum += d
	}
	return sum
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestSolver builds a Solver on d with sleeping recorded instead of performed.
func newTestSolver(t *testing.T, d Doer, mutate ...func(*Config)) (*Solver, *sleepRecorder) {
	t.Helper()
	cfg := Config{
		APIKey:    "test-key",
		BaseURL:   "https://2captcha.test",
		Transport: d,
		Logger:    discardLogger(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := NewSolver(cfg)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	rec := &sleepRecorder{}
	s.sleep = rec.sleep
	return s, rec
}
