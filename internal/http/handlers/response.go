// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the error envelope, the mapping from service errors to
// statuses and codes, and the small success helpers shared by all handlers.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/hotel"
	"github.com/fndrorato/chatbot-backend/internal/http/middleware"
	"github.com/fndrorato/chatbot-backend/internal/services"
	"github.com/fndrorato/chatbot-backend/internal/upstream"
)

// Messages returned verbatim to API clients.
const (
	MsgInvalidJSON       = "invalid JSON body"
	MsgChatNotFound      = "Chat not found"
	MsgPromptNotFound    = "Prompt não encontrado"
	MsgMessageRequired   = "Campo 'message' é obrigatório"
	MsgRawTextRequired   = "Campo 'raw_text' é obrigatório"
	MsgContextFields     = "category e content são obrigatórios"
	MsgInternal          = "internal server error"
	MsgUnknownCategory   = "Categoria inválida"
	MsgTenantMissing     = "tenant not resolved"
	MsgChatLogNotFound   = "Chat not found for this client"
	MsgMissingChatID     = "Missing chat_id"
	MsgChatIDRequired    = "chat_id is required"
	MsgMessageFieldsMiss = "chat_id and contact_id are required"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: echoed X-Request-ID, to correlate logs with client errors.
//   - Code: stable machine-readable code (see errors.go).
//   - Message: human-readable description, safe to show.
//   - Details: optional low-level cause (e.g. the upstream transport error).
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"upstream_timeout"`
	Message   string `json:"message" example:"Upstream timeout"`
	Details   string `json:"details,omitempty" example:"dial tcp 10.0.0.5:443: connect: connection refused"`
}

// fail aborts the request with a structured error. 5xx responses are logged
// with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failDetails(c, status, code, msg, "")
}

func failDetails(c *gin.Context, status int, code, msg, details string) {
	resp := ErrorResponse{
		RequestID: middleware.RequestIDFrom(c),
		Code:      code,
		Message:   msg,
		Details:   details,
	}
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Str("details", details).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), used by the router for NoRoute and
// NoMethod.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps a service error to its response. Errors without a mapping
// are 500s.
func failErr(c *gin.Context, err error) {
	var ve *hotel.ValidationError
	var ue *services.UpstreamError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, ve.Message)
	case errors.As(err, &ue):
		var details string
		if ue.Err != nil {
			details = ue.Err.Error()
		}
		failDetails(c, ue.StatusCode, upstreamCode(ue.Kind), ue.Message, details)
	case errors.Is(err, services.ErrMissingFields):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, services.MsgMissingFields)
	case errors.Is(err, services.ErrUnknownCategory):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgUnknownCategory)
	case errors.Is(err, services.ErrMessageRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgMessageRequired)
	case errors.Is(err, services.ErrRawTextRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgRawTextRequired)
	case errors.Is(err, services.ErrChatNotFound):
		fail(c, http.StatusNotFound, ErrCodeChatNotFound, MsgChatNotFound)
	case errors.Is(err, services.ErrPromptNotFound):
		fail(c, http.StatusNotFound, ErrCodePromptNotFound, MsgPromptNotFound)
	default:
		failDetails(c, http.StatusInternalServerError, ErrCodeInternal, MsgInternal, err.Error())
	}
}

func upstreamCode(k upstream.Kind) string {
	switch k {
	case upstream.KindTimeout:
		return ErrCodeUpstreamTimeout
	case upstream.KindInvalidJSON:
		return ErrCodeInvalidUpstreamJSON
	default:
		return ErrCodeUpstreamError
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// readJSON decodes the request body keeping numbers as json.Number, so the
// hotel validators see exactly what the client sent. An empty body decodes
// to nil.
func readJSON(c *gin.Context) (any, error) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// readObject is readJSON for endpoints that take a JSON object; a missing
// body is an empty object.
func readObject(c *gin.Context) (map[string]any, bool) {
	v, err := readJSON(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return nil, false
	}
	if v == nil {
		return map[string]any{}, true
	}
	m, isObj := v.(map[string]any)
	if !isObj {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		return nil, false
	}
	return m, true
}
