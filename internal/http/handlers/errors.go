// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them, while
// the accompanying message is the human-readable text (in the language the
// chatbot flows expect, usually verbatim from the business rules).
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "upstream_timeout",
//	  "message": "Upstream timeout"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"

	// Upstream PMS failures.
	ErrCodeUpstreamTimeout     = "upstream_timeout"
	ErrCodeUpstreamError       = "upstream_error"
	ErrCodeInvalidUpstreamJSON = "invalid_upstream_json"

	// Domain-specific:
	ErrCodeOriginNotFound = "origin_not_found"
	ErrCodeChatNotFound   = "chat_not_found"
	ErrCodePromptNotFound = "prompt_not_found"
	ErrCodeExportFailed   = "export_failed"
)
