package twocaptcha

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ResultKind categorizes a service response. Values are the literal strings
// the service sends, so a kind prints the way it appears on the wire.
type ResultKind string

const (
	ResultOK                ResultKind = "OK"
	ResultWrongUserKey      ResultKind = "ERROR_WRONG_USER_KEY"
	ResultKeyNotFound       ResultKind = "ERROR_KEY_DOES_NOT_EXIST"
	ResultZeroBalance       ResultKind = "ERROR_ZERO_BALANCE"
	ResultNoSlotAvailable   ResultKind = "ERROR_NO_SLOT_AVAILABLE"
	ResultIPNotAllowed      ResultKind = "ERROR_IP_NOT_ALLOWED"
	ResultIPBanned          ResultKind = "IP_BANNED"
	ResultImageBlocked      ResultKind = "ERROR_CAPTCHAIMAGE_BLOCKED"
	ResultNotReady          ResultKind = "CAPCHA_NOT_READY" // sic, the service's spelling
	ResultWrongIDFormat     ResultKind = "ERROR_WRONG_ID_FORMAT"
	ResultUnsolvable        ResultKind = "ERROR_CAPTCHA_UNSOLVABLE"
	ResultWrongID           ResultKind = "ERROR_WRONG_CAPTCHA_ID"
	ResultBadDuplicates     ResultKind = "ERROR_BAD_DUPLICATES"
	ResultReportNotRecorded ResultKind = "REPORT_NOT_RECORDED"
	ResultTimeout           ResultKind = "TIMEOUT"
	ResultNone              ResultKind = "NONE"

	// ResultCancelled is produced locally when the caller's context ends
	// mid-solve. The service never sends it.
	ResultCancelled ResultKind = "CANCELLED"
)

// responseKinds is the closed set of bodies accepted as a bare kind name.
var responseKinds = map[string]ResultKind{
	string(ResultWrongUserKey):      ResultWrongUserKey,
	string(ResultKeyNotFound):       ResultKeyNotFound,
	string(ResultZeroBalance):       ResultZeroBalance,
	string(ResultNoSlotAvailable):   ResultNoSlotAvailable,
	string(ResultIPNotAllowed):      ResultIPNotAllowed,
	string(ResultIPBanned):          ResultIPBanned,
	string(ResultImageBlocked):      ResultImageBlocked,
	string(ResultNotReady):          ResultNotReady,
	string(ResultWrongIDFormat):     ResultWrongIDFormat,
	string(ResultUnsolvable):        ResultUnsolvable,
	string(ResultWrongID):           ResultWrongID,
	string(ResultBadDuplicates):     ResultBadDuplicates,
	string(ResultReportNotRecorded): ResultReportNotRecorded,
	string(ResultTimeout):           ResultTimeout,
	string(ResultNone):              ResultNone,
}

// Terminal reports whether polling should stop on this kind.
func (k ResultKind) Terminal() bool { return k != ResultNotReady }

func (k ResultKind) String() string { return string(k) }

const okPrefix = "OK|"

// classifyResponse maps a raw body onto an outcome. "OK|<value>" yields
// ResultOK with the value; a bare kind name yields that kind. Anything else
// is a *MalformedResponseError.
func classifyResponse(op, body string) (SolveOutcome, error) {
	if value, ok := strings.CutPrefix(body, okPrefix); ok {
		return SolveOutcome{Kind: ResultOK, Token: value}, nil
	}
	if kind, ok := responseKinds[body]; ok {
		return SolveOutcome{Kind: kind}, nil
	}
	return SolveOutcome{}, &MalformedResponseError{Op: op, Body: body}
}

var (
	ErrMissingAPIKey = errors.New("twocaptcha: missing API key")
	ErrInvalidProxy  = errors.New("twocaptcha: invalid proxy")
	ErrInvalidDelay  = errors.New("twocaptcha: invalid delay")
)

// TransportError means the HTTP call failed or returned a non-2xx status.
type TransportError struct {
	Op         string
	StatusCode int    // zero when no response was received
	Status     string // reason phrase for StatusCode
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("twocaptcha %s: HTTP %d %s", e.Op, e.StatusCode, e.Status)
	}
	return fmt.Sprintf("twocaptcha %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func statusError(op string, code int) *TransportError {
	return &TransportError{Op: op, StatusCode: code, Status: http.StatusText(code)}
}

// MalformedResponseError means the service answered outside its protocol.
type MalformedResponseError struct {
	Op   string
	Body string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("twocaptcha %s: malformed response %q", e.Op, truncate(e.Body, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
