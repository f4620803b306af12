// Package upstream wraps outbound calls to a tenant's hotel reservation API.
//
// Every call is attempted exactly once with an explicit timeout, measured,
// classified into a Result kind, and recorded through an AuditSink before the
// caller sees the result. Transport failures never surface as Go errors:
// callers switch on Result.Kind instead.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// Upstream endpoints, relative to the tenant's APIAddress.
const (
	PathCheckAvailability = "/app/reservations/checkAvailability"
	PathMakeReservation   = "/app/reservations/makeReservation"
	PathGetReservation    = "/app/reservations/getReservation"
	PathChangeReservation = "/app/reservations/changeReservation"
	PathCancelReservation = "/app/reservations/cancelReservation"
)

// Synthetic status codes used when no upstream response was received.
const (
	StatusTimeout   = http.StatusGatewayTimeout
	StatusTransport = http.StatusBadGateway
)

// rawLimit caps how much of an unparseable body is kept.
const rawLimit = 500

// Kind classifies the outcome of a call.
type Kind int

const (
	// KindOK means a response with a JSON body was received (any status).
	KindOK Kind = iota
	// KindTimeout means the call exceeded its timeout.
	KindTimeout
	// KindTransport means the request failed before a response arrived.
	KindTransport
	// KindInvalidJSON means a response arrived but its body is not JSON.
	KindInvalidJSON
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindInvalidJSON:
		return "invalid_json"
	default:
		return "unknown"
	}
}

// Result is the outcome of one upstream call.
//
// Fields:
//   - Kind: outcome class; Body is only meaningful for KindOK.
//   - StatusCode: upstream status, or StatusTimeout/StatusTransport.
//   - Body: raw JSON body.
//   - Raw: first 500 characters of a non-JSON body.
//   - Err: transport error for KindTimeout/KindTransport.
//   - URL: destination URL.
//   - Elapsed: wall time of the call.
type Result struct {
	Kind       Kind
	StatusCode int
	Body       json.RawMessage
	Raw        string
	Err        error
	URL        string
	Elapsed    time.Duration
}

// Success reports whether a JSON response with a 2xx status was received.
func (r Result) Success() bool {
	return r.Kind == KindOK && r.StatusCode >= 200 && r.StatusCode < 300
}

// Seconds returns Elapsed in seconds rounded to millisecond precision.
func (r Result) Seconds() float64 {
	return math.Round(r.Elapsed.Seconds()*1000) / 1000
}

// Request describes one outbound call.
//
// Fields:
//   - Tenant: supplies APIAddress and the APIToken injected as "token".
//   - Path: one of the Path* constants.
//   - Payload: JSON object sent as the body (token is added by the gateway).
//   - LogPayload: what the audit log stores; defaults to Payload. The token
//     is always masked in the audit copy.
//   - Timeout: per-call deadline; <= 0 uses the gateway default.
//   - ContactID / Origin: copied to the audit log (ContactID defaults to "unknown").
//   - RawFallback: treat a non-JSON body as KindOK with Body {"raw": text}.
type Request struct {
	Tenant      *domain.Client
	Path        string
	Payload     map[string]any
	LogPayload  map[string]any
	Timeout     time.Duration
	ContactID   string
	Origin      string
	RawFallback bool
}

// AuditSink persists one audit row per call.
type AuditSink interface {
	RecordIntegration(ctx context.Context, l *domain.IntegrationLog) error
}

// Gateway performs upstream calls. It is safe for concurrent use.
type Gateway struct {
	client  *resty.Client
	sink    AuditSink
	timeout time.Duration
	now     func() time.Time
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithClient replaces the resty client (tests use it to inject transports).
func WithClient(c *resty.Client) Option { return func(g *Gateway) { g.client = c } }

// WithDefaultTimeout sets the timeout used when Request.Timeout is zero.
func WithDefaultTimeout(d time.Duration) Option { return func(g *Gateway) { g.timeout = d } }

// New builds a Gateway that records every call through sink.
func New(sink AuditSink, opts ...Option) *Gateway {
	g := &Gateway{
		client: resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetRetryCount(0),
		sink:    sink,
		timeout: 30 * time.Second,
		now:     time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Call posts req.Payload to the tenant's upstream and always returns a
// Result; the audit row is written before Call returns.
func (g *Gateway) Call(ctx context.Context, req Request) Result {
	url := strings.TrimRight(req.Tenant.APIAddress, "/") + req.Path
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = g.timeout
	}

	body := make(map[string]any, len(req.Payload)+1)
	for k, v := range req.Payload {
		body[k] = v
	}
	body["token"] = req.Tenant.APIToken

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := g.now()
	resp, err := g.client.R().SetContext(cctx).SetBody(body).Post(url)
	res := Result{URL: url, Elapsed: g.now().Sub(start)}

	var logged any
	switch {
	case err != nil && isTimeout(err):
		res.Kind, res.StatusCode, res.Err = KindTimeout, StatusTimeout, err
		logged = map[string]any{"detail": "timeout"}
	case err != nil:
		res.Kind, res.StatusCode, res.Err = KindTransport, StatusTransport, err
		logged = map[string]any{"detail": err.Error()}
	default:
		res.StatusCode = resp.StatusCode()
		raw := resp.Body()
		switch {
		case json.Valid(raw):
			res.Kind, res.Body = KindOK, json.RawMessage(raw)
		case req.RawFallback:
			wrapped, _ := json.Marshal(map[string]any{"raw": truncate(string(raw), rawLimit)})
			res.Kind, res.Body = KindOK, wrapped
		default:
			res.Kind, res.Raw = KindInvalidJSON, truncate(string(raw), rawLimit)
			logged = map[string]any{"detail": "invalid json", "raw": res.Raw}
		}
	}

	observe(req.Path, res)
	g.audit(ctx, req, res, logged)

	zerolog.Ctx(ctx).Debug().
		Str("url", url).
		Str("outcome", res.Kind.String()).
		Int("status", res.StatusCode).
		Dur("elapsed", res.Elapsed).
		Msg("upstream call")
	if res.Kind != KindOK {
		zerolog.Ctx(ctx).Warn().Err(res.Err).
			Str("url", url).
			Str("outcome", res.Kind.String()).
			Msg("upstream call failed")
	}
	return res
}

func (g *Gateway) audit(ctx context.Context, req Request, res Result, logged any) {
	if g.sink == nil {
		return
	}
	content := req.LogPayload
	if content == nil {
		content = req.Payload
	}
	contentJSON, _ := json.Marshal(withMaskedToken(content))

	var responseJSON []byte
	if logged != nil {
		responseJSON, _ = json.Marshal(logged)
	} else {
		responseJSON = res.Body
	}

	contact := req.ContactID
	if contact == "" {
		contact = "unknown"
	}
	entry := &domain.IntegrationLog{
		ClientID:     req.Tenant.ID,
		ContactID:    contact,
		Origin:       req.Origin,
		To:           res.URL,
		Content:      contentJSON,
		Response:     responseJSON,
		StatusHTTP:   res.StatusCode,
		ResponseTime: res.Seconds(),
	}
	// The audit row is written even when the request context is gone.
	if err := g.sink.RecordIntegration(context.WithoutCancel(ctx), entry); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("url", res.URL).Msg("integration log write failed")
	}
}

func withMaskedToken(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	out["token"] = "*****"
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
