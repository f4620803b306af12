// Package services defines the business logic for tenants, chats, messages,
// hotel reservations, prompt context, prompts and audit logs.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer. Validation failures of the hotel flows are returned as
// *hotel.ValidationError and upstream failures as *UpstreamError instead.
package services

import "errors"

// Tenant errors.
var (
	// ErrInvalidToken indicates that no tenant owns the presented bearer token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInactiveClient is returned when the token belongs to a disabled tenant.
	ErrInactiveClient = errors.New("client is inactive")
)

// Chat and message errors.
var (
	// ErrMissingFields is returned when a required request field is absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrChatNotFound indicates that the requested chat does not exist or
	// belongs to another tenant.
	ErrChatNotFound = errors.New("chat not found")

	// ErrOriginNotFound is returned when no origin matches the given name.
	ErrOriginNotFound = errors.New("origin not found")
)

// Context and prompt errors.
var (
	// ErrUnknownCategory is returned for a context category outside
	// domain.ContextCategories.
	ErrUnknownCategory = errors.New("unknown context category")

	// ErrMessageRequired is returned when a relevance query has no message.
	ErrMessageRequired = errors.New("message is required")

	// ErrRawTextRequired is returned when there is no text to structure.
	ErrRawTextRequired = errors.New("raw_text is required")

	// ErrPromptNotFound indicates that the tenant has no active prompt with
	// the requested name.
	ErrPromptNotFound = errors.New("prompt not found")
)
