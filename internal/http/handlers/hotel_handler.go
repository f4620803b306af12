// Hotel HTTP handlers.
//
// This file exposes the reservation flows. Bodies are decoded generically
// (numbers kept as json.Number) and validated by the hotel package, so that
// the messages clients see match the field they sent:
//   - POST /v1/systems/check-availability/{client_type}
//   - POST /v1.1/systems/check-availability/{client_type}   (average per night)
//   - POST /v1/systems/reservations/make/{client_type}
//   - POST /v1/systems/reservations/multi-reservation/{client_type}
//   - POST /v1/systems/reservations/get/{client_type}
//   - POST /v1/systems/reservations/change/{client_type}
//   - POST /v1/systems/reservations/cancel/{client_type}
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fndrorato/chatbot-backend/internal/http/middleware"
	"github.com/fndrorato/chatbot-backend/internal/services"
)

//
// DTOs (documentation only; handlers decode into map[string]any)
//

// AvailabilityRequest is the availability query.
type AvailabilityRequest struct {
	ContactID   string `json:"contact_id" example:"5511988887777"`
	Origin      string `json:"origin" example:"whatsapp"`
	From        string `json:"from" example:"2026-12-20"`
	To          string `json:"to" example:"2026-12-23"`
	Adults      int    `json:"adults" example:"2"`
	Children    int    `json:"children" example:"1"`
	ChildrenAge string `json:"children_age" example:"7"`
	Rooms       int    `json:"rooms" example:"1"`
}

// GuestData is one additional guest of a reservation.
type GuestData struct {
	Name     string `json:"name" example:"Maria Souza"`
	Document string `json:"document" example:"123.456.789-09"`
}

// ReservationRequest creates (or, with IDReserva, changes) a reservation.
type ReservationRequest struct {
	ContactID     string      `json:"contact_id" example:"5511988887777"`
	Origin        string      `json:"origin" example:"whatsapp"`
	IDReserva     string      `json:"id_reserva,omitempty" example:"48213"`
	From          string      `json:"from" example:"2026-12-20"`
	To            string      `json:"to" example:"2026-12-23"`
	Adults        int         `json:"adults" example:"2"`
	Children      int         `json:"children" example:"0"`
	Rooms         int         `json:"rooms" example:"1"`
	IDFee         int         `json:"id_fee" example:"3"`
	IDType        int         `json:"id_type" example:"12"`
	DocumentGuest string      `json:"document_guest" example:"123.456.789-09"`
	Guest         string      `json:"guest" example:"João Souza"`
	PhoneGuest    string      `json:"phone_guest" example:"11 9888-7777"`
	Observation   string      `json:"observation" example:"Chegada tarde"`
	GuestData     []GuestData `json:"guest_data"`
}

// ReservationLookupRequest identifies a reservation.
type ReservationLookupRequest struct {
	IDReserva string `json:"id_reserva" example:"48213"`
}

// CancelReservationRequest cancels a reservation.
type CancelReservationRequest struct {
	IDReserva string `json:"id_reserva" example:"48213"`
	Reason    string `json:"reason" example:"Mudança de planos"`
}

//
// Handlers
//

// CheckAvailability godoc
// @ID          checkAvailability
// @Summary     Check room availability
// @Description Validates the stay, queries the hotel system and returns the room types that fit the
// @Description party. Always 200 once the upstream answered; "status" explains empty results.
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                          true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.AvailabilityRequest    true  "Stay"
//
// @Success     200  {object}  services.AvailabilityReply
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1/systems/check-availability/{client_type} [post]
func (h *Handlers) CheckAvailability(c *gin.Context) {
	h.checkAvailability(c, services.AvailabilityOptions{})
}

// CheckAvailabilityV11 godoc
// @ID          checkAvailabilityV11
// @Summary     Check room availability with average nightly price
// @Description Same as v1; every detail also carries "average_per_night".
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                          true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.AvailabilityRequest    true  "Stay"
//
// @Success     200  {object}  services.AvailabilityReply
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1.1/systems/check-availability/{client_type} [post]
func (h *Handlers) CheckAvailabilityV11(c *gin.Context) {
	h.checkAvailability(c, services.AvailabilityOptions{AveragePerNight: true})
}

func (h *Handlers) checkAvailability(c *gin.Context, opt services.AvailabilityOptions) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	reply, err := h.hotelSvc.CheckAvailability(c.Request.Context(), t, body, opt)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, reply)
}

// MakeReservation godoc
// @ID          makeReservation
// @Summary     Create a reservation
// @Description Forwards the reservation and answers with the hotel system's status and message.
// @Description Send Idempotency-Key to make retries safe.
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type      path    string                          true   "Client type"  Enums(hotel)
// @Param       Idempotency-Key  header  string                          false  "Idempotency key"
// @Param       body             body    handlers.ReservationRequest     true   "Reservation"
//
// @Success     200  {object}  services.ReservationReply
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1/systems/reservations/make/{client_type} [post]
func (h *Handlers) MakeReservation(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	reply, err := h.hotelSvc.MakeReservation(keyedContext(c), t, body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, reply.StatusCode, reply)
}

// ChangeReservation godoc
// @ID          changeReservation
// @Summary     Change a reservation
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                          true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.ReservationRequest     true  "Reservation with id_reserva"
//
// @Success     200  {object}  services.ReservationReply
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1/systems/reservations/change/{client_type} [post]
func (h *Handlers) ChangeReservation(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	reply, err := h.hotelSvc.ChangeReservation(c.Request.Context(), t, body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, reply.StatusCode, reply)
}

// GetReservation godoc
// @ID          getReservation
// @Summary     Look up a reservation
// @Description Each returned entry gains "room_type" when its id_type is a known room.
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                              true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.ReservationLookupRequest   true  "Reservation id"
//
// @Success     200  {object}  services.LookupReply
// @Failure     400  {object}  handlers.ErrorResponse  "Missing reservation ID"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1/systems/reservations/get/{client_type} [post]
func (h *Handlers) GetReservation(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	reply, err := h.hotelSvc.GetReservation(c.Request.Context(), t, body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, reply.StatusCode, reply)
}

// CancelReservation godoc
// @ID          cancelReservation
// @Summary     Cancel a reservation
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type  path  string                              true  "Client type"  Enums(hotel)
// @Param       body         body  handlers.CancelReservationRequest   true  "Reservation id and reason"
//
// @Success     200  {object}  services.LookupReply
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream error"
// @Failure     504  {object}  handlers.ErrorResponse  "Upstream timeout"
// @Router      /v1/systems/reservations/cancel/{client_type} [post]
func (h *Handlers) CancelReservation(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	body, valid := readObject(c)
	if !valid {
		return
	}
	reply, err := h.hotelSvc.CancelReservation(c.Request.Context(), t, body)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, reply.StatusCode, reply)
}

// MakeMultiReservations godoc
// @ID          makeMultiReservations
// @Summary     Create one reservation per room
// @Description The body is a JSON array of reservation items processed in order. Failed items never
// @Description abort the batch. 200 when all succeed, 207 when some do, 400 when none do.
// @Tags        Hotel
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       client_type      path    string                          true   "Client type"  Enums(hotel)
// @Param       Idempotency-Key  header  string                          false  "Idempotency key"
// @Param       body             body    []handlers.ReservationRequest   true   "Items"
//
// @Success     200  {object}  services.BatchReply
// @Success     207  {object}  services.BatchReply
// @Failure     400  {object}  services.BatchReply  "No item succeeded"
// @Failure     403  {object}  handlers.ErrorResponse  "Forbidden"
// @Router      /v1/systems/reservations/multi-reservation/{client_type} [post]
func (h *Handlers) MakeMultiReservations(c *gin.Context) {
	t, found := tenant(c)
	if !found {
		return
	}
	// A body that does not decode is reported like any other non-array.
	raw, _ := readJSON(c)
	reply, err := h.hotelSvc.MakeMultiReservations(keyedContext(c), t, raw)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, reply.StatusCode, reply)
}

// keyedContext returns the request context with the idempotency key, if any,
// added to its logger so upstream and audit log lines carry it.
func keyedContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	key, found := middleware.GetIdempotencyKey(c)
	if !found {
		return ctx
	}
	l := middleware.LoggerFrom(c).With().Str("idempotency_key", key).Logger()
	return l.WithContext(ctx)
}
