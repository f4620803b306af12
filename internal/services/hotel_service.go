// Package services – HotelService
//
// HotelService orchestrates the hotel reservation flows against a tenant's
// upstream API: availability lookup, reservation creation (single and batch),
// lookup, change and cancellation.
//
// Every flow validates before calling the upstream, so a rejected request
// never produces an upstream call. Upstream failures surface as *UpstreamError
// and validation failures as *hotel.ValidationError. Availability, creation
// and change requests are also recorded as SystemLog rows whose status moves
// from "Pending Validation" to "SUCCESS", "ERROR: ..." or "NO_AVAILABILITY - ...".
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/hotel"
	"github.com/fndrorato/chatbot-backend/internal/repo"
	"github.com/fndrorato/chatbot-backend/internal/upstream"
)

// SystemLog origin and statuses.
const (
	SystemLogOrigin        = "API_Hotel_Validation"
	SystemLogPending       = "Pending Validation"
	SystemLogSuccess       = "SUCCESS"
	SystemLogErrorPrefix   = "ERROR: "
	SystemLogNoAvailPrefix = "NO_AVAILABILITY - "
	// SystemLogNoDetails marks a room list whose entries all lack details.
	SystemLogNoDetails = SystemLogNoAvailPrefix + "Error no retorno do detail"
)

// Messages for upstream failures and lookups.
const (
	MsgUpstreamTimeout     = "Upstream timeout"
	MsgUpstreamError       = "Upstream error"
	MsgUpstreamInvalidJSON = "Invalid JSON from upstream"
	MsgMissingReservation  = "Missing reservation ID"
	MsgMissingFields       = "Missing required fields"
)

// Default upstream timeouts.
const (
	DefaultUpstreamTimeout      = 30 * time.Second
	DefaultUpstreamShortTimeout = 10 * time.Second
)

// Required request fields per flow.
var (
	makeRequiredFields = []string{
		"from", "to", "adults", "children", "rooms",
		"id_fee", "id_type", "document_guest", "guest", "phone_guest",
	}
	changeRequiredFields = append(append([]string{}, makeRequiredFields...), "id_reserva")
)

// Upstream performs one audited upstream call; *upstream.Gateway satisfies it.
type Upstream interface {
	Call(ctx context.Context, req upstream.Request) upstream.Result
}

// UpstreamError is a failed upstream call (timeout, transport error or a
// body that is not JSON).
type UpstreamError struct {
	Kind       upstream.Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HotelService runs the hotel reservation flows.
type HotelService struct {
	// DB holds the room cache and system logs.
	DB *gorm.DB
	// Gateway performs the upstream calls.
	Gateway Upstream

	// Timeout applies to availability, creation, batch and lookup calls.
	Timeout time.Duration
	// ShortTimeout applies to change and cancel calls.
	ShortTimeout time.Duration
	// Now is the clock used for date validation.
	Now func() time.Time
}

// NewHotelService constructs a HotelService with the default timeouts.
func NewHotelService(db *gorm.DB, gw Upstream) *HotelService {
	return &HotelService{
		DB:           db,
		Gateway:      gw,
		Timeout:      DefaultUpstreamTimeout,
		ShortTimeout: DefaultUpstreamShortTimeout,
		Now:          time.Now,
	}
}

// AvailabilityOptions selects response extensions.
type AvailabilityOptions struct {
	// AveragePerNight adds "average_per_night" to every detail.
	AveragePerNight bool
}

// AvailabilityReply is always returned with HTTP 200.
type AvailabilityReply struct {
	Availability []hotel.AvailableRoom `json:"availability"`
	Status       string                `json:"status"`
}

// ReservationReply carries the upstream status and its nested message.
type ReservationReply struct {
	StatusCode int `json:"-"`
	Message    any `json:"message"`
}

// LookupReply carries the upstream status and the reservation data.
type LookupReply struct {
	StatusCode int `json:"-"`
	Reserva    any `json:"reserva"`
}

// BatchReply is the outcome of a multi-room reservation.
type BatchReply struct {
	StatusCode int                `json:"-"`
	Summary    hotel.Summary      `json:"summary"`
	Results    []hotel.ItemResult `json:"results"`
}

// CheckAvailability validates the stay, asks the upstream for availability,
// refreshes the room cache and returns the rooms that fit the party.
//
// Degenerate upstream payloads are not errors: they yield an empty list with
// a descriptive status.
func (s *HotelService) CheckAvailability(ctx context.Context, tenant *domain.Client, body map[string]any, opt AvailabilityOptions) (*AvailabilityReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "CheckAvailability",
		trace.WithAttributes(
			attribute.String("tenant.id", tenant.ID),
			attribute.Bool("average_per_night", opt.AveragePerNight),
		),
	)
	defer span.End()

	logID := s.openLog(ctx, tenant.ID, body)

	stay, err := hotel.ParseStay(body, s.now())
	if err != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+err.Error())
		return nil, err
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:    tenant,
		Path:      upstream.PathCheckAvailability,
		Payload:   hotel.AvailabilityPayload(stay),
		Timeout:   s.timeout(),
		ContactID: hotel.StringOf(body["contact_id"]),
		Origin:    hotel.StringOf(body["origin"]),
	})
	if uerr := upstreamError(res); uerr != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+uerr.logStatus())
		return nil, uerr
	}

	a := hotel.ParseAvailability(res.Body)
	span.SetAttributes(attribute.String("availability.status", a.Status))
	if a.Shape != hotel.ShapeRoomList {
		s.closeLog(ctx, logID, SystemLogNoAvailPrefix+a.Status)
		return &AvailabilityReply{Availability: []hotel.AvailableRoom{}, Status: a.Status}, nil
	}
	if a.NoDetails() {
		s.closeLog(ctx, logID, SystemLogNoDetails)
		return &AvailabilityReply{Availability: []hotel.AvailableRoom{}, Status: hotel.StatusNoAvailability}, nil
	}

	metas := a.RoomMetas()
	upserts := make([]repo.RoomUpsert, 0, len(metas))
	for _, m := range metas {
		upserts = append(upserts, repo.RoomUpsert{RoomCode: m.Code, RoomType: m.Type, NumberOfPax: m.Pax})
	}
	if err := repo.UpsertRooms(ctx, s.DB, tenant.ID, upserts); err != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+err.Error())
		return nil, err
	}
	rooms, err := repo.ListRooms(ctx, s.DB, tenant.ID)
	if err != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+err.Error())
		return nil, err
	}

	out := hotel.Normalize(a, rooms, hotel.NormalizeOptions{
		Pax:             stay.Adults + stay.Children,
		Nights:          stay.Nights(),
		AveragePerNight: opt.AveragePerNight,
	})
	s.closeLog(ctx, logID, SystemLogSuccess)
	return &AvailabilityReply{Availability: out, Status: hotel.StatusOK}, nil
}

// MakeReservation validates and forwards a single reservation. The reply
// carries the upstream status and data[0].response[0].msg, or a default
// success message when the upstream sent none.
func (s *HotelService) MakeReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*ReservationReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "MakeReservation",
		trace.WithAttributes(attribute.String("tenant.id", tenant.ID)),
	)
	defer span.End()

	logID := s.openLog(ctx, tenant.ID, body)
	if err := s.validateReservation(body, makeRequiredFields, hotel.MsgGuestIncomplete); err != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+err.Error())
		return nil, err
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:    tenant,
		Path:      upstream.PathMakeReservation,
		Payload:   hotel.ReservationPayload(body),
		Timeout:   s.timeout(),
		ContactID: hotel.StringOf(body["contact_id"]),
		Origin:    hotel.StringOf(body["origin"]),
	})
	if uerr := upstreamError(res); uerr != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+uerr.logStatus())
		return nil, uerr
	}

	msg, ok := hotel.NestedMessage(res.Body)
	if !ok {
		msg = hotel.DefaultMakeMessage
	}
	s.closeLog(ctx, logID, SystemLogSuccess)
	span.SetAttributes(attribute.Int("upstream.status", res.StatusCode))
	return &ReservationReply{StatusCode: res.StatusCode, Message: msg}, nil
}

// ChangeReservation validates and forwards a reservation change. Message is
// nil when the upstream sent none.
func (s *HotelService) ChangeReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*ReservationReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "ChangeReservation",
		trace.WithAttributes(attribute.String("tenant.id", tenant.ID)),
	)
	defer span.End()

	logID := s.openLog(ctx, tenant.ID, body)
	if err := s.validateReservation(body, changeRequiredFields, hotel.MsgChangeGuestIncomplete); err != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+err.Error())
		return nil, err
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:    tenant,
		Path:      upstream.PathChangeReservation,
		Payload:   hotel.ReservationPayload(body),
		Timeout:   s.shortTimeout(),
		ContactID: hotel.StringOf(body["contact_id"]),
		Origin:    hotel.StringOf(body["origin"]),
	})
	if uerr := upstreamError(res); uerr != nil {
		s.closeLog(ctx, logID, SystemLogErrorPrefix+uerr.logStatus())
		return nil, uerr
	}

	msg, _ := hotel.NestedMessage(res.Body)
	s.closeLog(ctx, logID, SystemLogSuccess)
	return &ReservationReply{StatusCode: res.StatusCode, Message: msg}, nil
}

func (s *HotelService) validateReservation(body map[string]any, required []string, guestMsg string) error {
	if err := hotel.RequireFields(body, required...); err != nil {
		return err
	}
	if _, err := hotel.ParseStay(body, s.now()); err != nil {
		return err
	}
	return hotel.ValidateGuests(body["guest_data"], guestMsg)
}

// GetReservation looks a reservation up and tags every entry with the
// cached room type of its id_type.
func (s *HotelService) GetReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*LookupReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "GetReservation",
		trace.WithAttributes(attribute.String("tenant.id", tenant.ID)),
	)
	defer span.End()

	id := body["id_reserva"]
	if !hotel.Truthy(id) {
		return nil, &hotel.ValidationError{Message: MsgMissingReservation}
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:    tenant,
		Path:      upstream.PathGetReservation,
		Payload:   hotel.GetPayload(id),
		Timeout:   s.timeout(),
		ContactID: hotel.StringOf(body["contact_id"]),
		Origin:    hotel.StringOf(body["origin"]),
	})
	if uerr := upstreamError(res); uerr != nil {
		return nil, uerr
	}

	types, err := repo.RoomTypesByCode(ctx, s.DB, tenant.ID)
	if err != nil {
		return nil, err
	}
	return &LookupReply{StatusCode: res.StatusCode, Reserva: hotel.Reservations(res.Body, types)}, nil
}

// CancelReservation forwards a cancellation and returns the first reserva
// entry of the upstream reply.
func (s *HotelService) CancelReservation(ctx context.Context, tenant *domain.Client, body map[string]any) (*LookupReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "CancelReservation",
		trace.WithAttributes(attribute.String("tenant.id", tenant.ID)),
	)
	defer span.End()

	id, reason := body["id_reserva"], body["reason"]
	if !hotel.Truthy(id) || !hotel.Truthy(reason) {
		return nil, &hotel.ValidationError{Message: MsgMissingFields}
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:    tenant,
		Path:      upstream.PathCancelReservation,
		Payload:   hotel.CancelPayload(id, reason),
		Timeout:   s.shortTimeout(),
		ContactID: hotel.StringOf(body["contact_id"]),
		Origin:    hotel.StringOf(body["origin"]),
	})
	if uerr := upstreamError(res); uerr != nil {
		return nil, uerr
	}
	return &LookupReply{StatusCode: res.StatusCode, Reserva: hotel.FirstReservation(res.Body)}, nil
}

// MakeMultiReservations books one room per element of raw, which must be a
// non-empty JSON array. Items are processed in order and independently: a
// rejected or failed item is reported in its result and never aborts the
// batch. Card data is masked in the audit log only.
func (s *HotelService) MakeMultiReservations(ctx context.Context, tenant *domain.Client, raw any) (*BatchReply, error) {
	tr := otel.Tracer("services/HotelService")
	ctx, span := tr.Start(ctx, "MakeMultiReservations",
		trace.WithAttributes(attribute.String("tenant.id", tenant.ID)),
	)
	defer span.End()

	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, &hotel.ValidationError{Message: hotel.MsgBatchNotArray}
	}

	today := s.now()
	results := make([]hotel.ItemResult, 0, len(items))
	for idx, item := range items {
		results = append(results, s.reserveItem(ctx, tenant, idx, item, today))
	}

	status, summary := hotel.Aggregate(results)
	span.SetAttributes(
		attribute.Int("batch.requested", summary.Requested),
		attribute.Int("batch.succeeded", summary.Succeeded),
	)
	return &BatchReply{StatusCode: status, Summary: summary, Results: results}, nil
}

func (s *HotelService) reserveItem(ctx context.Context, tenant *domain.Client, idx int, raw any, today time.Time) hotel.ItemResult {
	it, err := hotel.ParseBatchItem(idx, raw, today)
	if err != nil {
		return hotel.ItemResult{Index: idx, FullName: it.FullName, Status: hotel.ItemError, Message: err.Error()}
	}

	var contact string
	if m, ok := raw.(map[string]any); ok {
		contact = hotel.StringOf(m["contact_id"])
	}

	res := s.Gateway.Call(ctx, upstream.Request{
		Tenant:      tenant,
		Path:        upstream.PathMakeReservation,
		Payload:     it.Payload(),
		LogPayload:  it.LogPayload(),
		Timeout:     s.timeout(),
		ContactID:   contact,
		Origin:      hotel.StringOf(it.Origin),
		RawFallback: true,
	})

	out := hotel.ItemResult{Index: idx, FullName: it.FullName, Status: hotel.ItemError}
	switch res.Kind {
	case upstream.KindTimeout:
		out.Message = hotel.MsgBatchTimeout
		return out
	case upstream.KindTransport, upstream.KindInvalidJSON:
		out.Message = upstreamError(res).Error()
		return out
	}

	msg, ok := hotel.NestedMessage(res.Body)
	if !ok {
		msg = hotel.DefaultBatchMessage
	}
	out.HTTPStatus, out.Message = res.StatusCode, msg
	if res.Success() {
		out.Status = hotel.ItemSuccess
	} else {
		out.Details = res.Body
	}
	return out
}

// upstreamError maps a failed call to *UpstreamError; nil for KindOK.
func upstreamError(res upstream.Result) *UpstreamError {
	switch res.Kind {
	case upstream.KindTimeout:
		return &UpstreamError{Kind: res.Kind, StatusCode: upstream.StatusTimeout, Message: MsgUpstreamTimeout, Err: res.Err}
	case upstream.KindTransport:
		return &UpstreamError{Kind: res.Kind, StatusCode: upstream.StatusTransport, Message: MsgUpstreamError, Err: res.Err}
	case upstream.KindInvalidJSON:
		return &UpstreamError{Kind: res.Kind, StatusCode: upstream.StatusTransport, Message: MsgUpstreamInvalidJSON}
	default:
		return nil
	}
}

// logStatus is the SystemLog rendering of e (after the "ERROR: " prefix).
func (e *UpstreamError) logStatus() string {
	if e.Kind == upstream.KindTransport && e.Err != nil {
		return fmt.Sprintf("%s - %s", e.Message, e.Err)
	}
	return e.Message
}

// openLog records the inbound body as a pending SystemLog row. Failures are
// logged and yield an empty ID.
func (s *HotelService) openLog(ctx context.Context, clientID string, body map[string]any) string {
	content, err := json.Marshal(body)
	if err != nil {
		content = []byte("{}")
	}
	l, err := repo.CreateSystemLog(ctx, s.DB, clientID, SystemLogOrigin, string(content), SystemLogPending)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("system log write failed")
		return ""
	}
	return l.ID
}

func (s *HotelService) closeLog(ctx context.Context, id, status string) {
	if id == "" {
		return
	}
	if err := repo.UpdateSystemLogStatus(context.WithoutCancel(ctx), s.DB, id, status); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("system_log_id", id).Msg("system log update failed")
	}
}

func (s *HotelService) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultUpstreamTimeout
	}
	return s.Timeout
}

func (s *HotelService) shortTimeout() time.Duration {
	if s.ShortTimeout <= 0 {
		return DefaultUpstreamShortTimeout
	}
	return s.ShortTimeout
}

func (s *HotelService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
