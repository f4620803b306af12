// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key replay for reservation creation. A
// retry carrying the same key for the same tenant and route gets the stored
// status and body back, and the upstream PMS is not called a second time.
package middleware

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotencyReplayed is set to "true" on replayed responses.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
)

// StoredResponse is a response captured for a (tenant, scope, key) tuple.
type StoredResponse struct {
	Status int
	Body   []byte
}

// IdempotencyStore persists captured responses. Lookup returns (nil, nil) on
// a miss. Save may report a duplicate when two retries race; that error is
// logged and otherwise ignored.
type IdempotencyStore interface {
	Lookup(ctx context.Context, clientID, scope, key string, now time.Time) (*StoredResponse, error)
	Save(ctx context.Context, clientID, scope, key string, resp StoredResponse) error
}

// IdempotencyOptions configures header validation.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// GetIdempotencyKey returns the validated key stashed by Idempotency.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the response was served from the store.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Idempotency replays or captures responses keyed by (tenant, route, key).
// It must run after TenantAuth.
//
//   - No header: pass through.
//   - Malformed key: 400 bad_idempotency_key.
//   - Stored response: written as-is with Idempotency-Replayed: true; the
//     handler does not run.
//   - Otherwise the handler runs and any response below 500 is stored, so
//     timeouts and upstream failures can still be retried.
func Idempotency(opts IdempotencyOptions, store IdempotencyStore) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || store == nil {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			abortJSON(c, http.StatusBadRequest, "bad_idempotency_key", "invalid Idempotency-Key")
			return
		}
		c.Set(ctxKeyIdemKey, key)

		ctx := c.Request.Context()
		clientID := TenantIDFrom(c)
		scope := c.FullPath()
		lg := LoggerFrom(c)

		prev, err := store.Lookup(ctx, clientID, scope, key, time.Now().UTC())
		if err != nil {
			lg.Warn().Err(err).Msg("idempotency lookup failed")
		}
		if prev != nil {
			c.Set(ctxKeyIdemReplay, true)
			c.Header(HeaderIdempotencyReplayed, "true")
			c.Data(prev.Status, "application/json; charset=utf-8", prev.Body)
			c.Abort()
			return
		}

		rec := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status >= http.StatusInternalServerError {
			return
		}
		if err := store.Save(ctx, clientID, scope, key, StoredResponse{Status: status, Body: rec.buf.Bytes()}); err != nil {
			lg.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency save failed")
		}
	}
}

// captureWriter tees the response body into buf.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
