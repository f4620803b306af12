package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fndrorato/chatbot-backend/internal/hotel"
	"github.com/fndrorato/chatbot-backend/internal/http/middleware"
	"github.com/fndrorato/chatbot-backend/internal/services"
	"github.com/fndrorato/chatbot-backend/internal/upstream"
)

func TestCheckAvailability_VersionsAndNumbers(t *testing.T) {
	var opts []services.AvailabilityOptions
	var adults any
	h := New(Deps{Hotel: stubHotel{
		avail: func(body map[string]any, opt services.AvailabilityOptions) (*services.AvailabilityReply, error) {
			opts = append(opts, opt)
			adults = body["adults"]
			return &services.AvailabilityReply{Availability: []hotel.AvailableRoom{}, Status: hotel.StatusNoAvailability}, nil
		},
	}})
	r := newTestRouter(http.MethodPost, "/v1/:client_type", h.CheckAvailability)
	r.POST("/v11/:client_type", h.CheckAvailabilityV11)

	body := `{"from":"2030-01-01","to":"2030-01-03","adults":2,"children":0,"rooms":1}`
	w := doJSON(t, r, http.MethodPost, "/v1/hotel", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	m := decodeBody(t, w)
	if m["status"] != hotel.StatusNoAvailability {
		t.Fatalf("body=%v", m)
	}
	if list, isList := m["availability"].([]any); !isList || len(list) != 0 {
		t.Fatalf("availability must be an empty list: %v", m["availability"])
	}
	if n, isNum := adults.(json.Number); !isNum || n.String() != "2" {
		t.Fatalf("numbers must reach the service as json.Number, got %T %v", adults, adults)
	}

	doJSON(t, r, http.MethodPost, "/v11/hotel", body)
	if len(opts) != 2 || opts[0].AveragePerNight || !opts[1].AveragePerNight {
		t.Fatalf("opts=%+v", opts)
	}
}

func TestCheckAvailability_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"validation", &hotel.ValidationError{Message: hotel.MsgFromInPast}, http.StatusBadRequest, ErrCodeBadRequest, hotel.MsgFromInPast},
		{"missing", services.ErrMissingFields, http.StatusBadRequest, ErrCodeBadRequest, services.MsgMissingFields},
		{"timeout", &services.UpstreamError{Kind: upstream.KindTimeout, StatusCode: http.StatusGatewayTimeout, Message: services.MsgUpstreamTimeout}, http.StatusGatewayTimeout, ErrCodeUpstreamTimeout, services.MsgUpstreamTimeout},
		{"transport", &services.UpstreamError{Kind: upstream.KindTransport, StatusCode: http.StatusBadGateway, Message: services.MsgUpstreamError, Err: errors.New("connection refused")}, http.StatusBadGateway, ErrCodeUpstreamError, services.MsgUpstreamError},
		{"bad json", &services.UpstreamError{Kind: upstream.KindInvalidJSON, StatusCode: http.StatusBadGateway, Message: services.MsgUpstreamInvalidJSON}, http.StatusBadGateway, ErrCodeInvalidUpstreamJSON, services.MsgUpstreamInvalidJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := New(Deps{Hotel: stubHotel{
				avail: func(map[string]any, services.AvailabilityOptions) (*services.AvailabilityReply, error) {
					return nil, tc.err
				},
			}})
			r := newTestRouter(http.MethodPost, "/a/:client_type", h.CheckAvailability)
			w := doJSON(t, r, http.MethodPost, "/a/hotel", `{}`)
			expectError(t, w, tc.status, tc.code, tc.msg)
		})
	}
}

func TestCheckAvailability_TransportDetails(t *testing.T) {
	h := New(Deps{Hotel: stubHotel{
		avail: func(map[string]any, services.AvailabilityOptions) (*services.AvailabilityReply, error) {
			return nil, &services.UpstreamError{Kind: upstream.KindTransport, StatusCode: http.StatusBadGateway, Message: services.MsgUpstreamError, Err: errors.New("connection refused")}
		},
	}})
	r := newTestRouter(http.MethodPost, "/a/:client_type", h.CheckAvailability)
	w := doJSON(t, r, http.MethodPost, "/a/hotel", `{}`)
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Details != "connection refused" {
		t.Fatalf("details=%q", er.Details)
	}
}

func TestHotelHandlers_RejectNonObjectBodies(t *testing.T) {
	h := New(Deps{Hotel: stubHotel{}})
	r := newTestRouter(http.MethodPost, "/make/:client_type", h.MakeReservation)
	r.POST("/get/:client_type", h.GetReservation)

	for _, path := range []string{"/make/hotel", "/get/hotel"} {
		w := doJSON(t, r, http.MethodPost, path, `[1,2]`)
		expectError(t, w, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
		w = doJSON(t, r, http.MethodPost, path, `{"from":`)
		expectError(t, w, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidJSON)
	}
}

func TestReservationHandlers_UseUpstreamStatus(t *testing.T) {
	h := New(Deps{Hotel: stubHotel{
		make: func(map[string]any) (*services.ReservationReply, error) {
			return &services.ReservationReply{StatusCode: http.StatusCreated, Message: "Reserva criada"}, nil
		},
		change: func(map[string]any) (*services.ReservationReply, error) {
			return &services.ReservationReply{StatusCode: http.StatusUnprocessableEntity, Message: map[string]any{"erro": "tarifa"}}, nil
		},
		get: func(body map[string]any) (*services.LookupReply, error) {
			if body["id_reserva"] == nil {
				return nil, &hotel.ValidationError{Message: services.MsgMissingReservation}
			}
			return &services.LookupReply{StatusCode: http.StatusOK, Reserva: []any{map[string]any{"id_type": "12", "room_type": "Luxo"}}}, nil
		},
		cancel: func(map[string]any) (*services.LookupReply, error) {
			return &services.LookupReply{StatusCode: http.StatusOK, Reserva: map[string]any{"status": "cancelada"}}, nil
		},
	}})
	r := newTestRouter(http.MethodPost, "/make/:client_type", h.MakeReservation)
	r.POST("/change/:client_type", h.ChangeReservation)
	r.POST("/get/:client_type", h.GetReservation)
	r.POST("/cancel/:client_type", h.CancelReservation)

	w := doJSON(t, r, http.MethodPost, "/make/hotel", `{}`)
	if w.Code != http.StatusCreated || decodeBody(t, w)["message"] != "Reserva criada" {
		t.Fatalf("make: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/change/hotel", `{}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("change status=%d", w.Code)
	}
	if msg, isObj := decodeBody(t, w)["message"].(map[string]any); !isObj || msg["erro"] != "tarifa" {
		t.Fatalf("change body=%s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/get/hotel", `{"id_reserva":"48213"}`)
	list, isList := decodeBody(t, w)["reserva"].([]any)
	if w.Code != http.StatusOK || !isList || len(list) != 1 {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/get/hotel", `{}`)
	expectError(t, w, http.StatusBadRequest, ErrCodeBadRequest, services.MsgMissingReservation)

	w = doJSON(t, r, http.MethodPost, "/cancel/hotel", `{"id_reserva":"1","reason":"x"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel status=%d", w.Code)
	}
	if res, isObj := decodeBody(t, w)["reserva"].(map[string]any); !isObj || res["status"] != "cancelada" {
		t.Fatalf("cancel body=%s", w.Body.String())
	}
}

func TestMakeMultiReservations(t *testing.T) {
	var got any
	h := New(Deps{Hotel: stubHotel{
		multi: func(raw any) (*services.BatchReply, error) {
			got = raw
			items, isList := raw.([]any)
			if !isList || len(items) == 0 {
				return nil, &hotel.ValidationError{Message: hotel.MsgBatchNotArray}
			}
			return &services.BatchReply{
				StatusCode: http.StatusMultiStatus,
				Summary:    hotel.Summary{Requested: 2, Succeeded: 1, Failed: 1},
				Results:    []hotel.ItemResult{{Index: 0, Status: hotel.ItemSuccess}, {Index: 1, Status: hotel.ItemError}},
			}, nil
		},
	}})
	r := newTestRouter(http.MethodPost, "/multi/:client_type", h.MakeMultiReservations)

	w := doJSON(t, r, http.MethodPost, "/multi/hotel", `[{"rooms":1},{"rooms":1}]`)
	if w.Code != http.StatusMultiStatus {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	m := decodeBody(t, w)
	if _, has := m["summary"]; !has {
		t.Fatalf("body=%v", m)
	}
	if res, isList := m["results"].([]any); !isList || len(res) != 2 {
		t.Fatalf("results=%v", m["results"])
	}

	for _, body := range []string{`{"rooms":1}`, `[]`, `not json`, ""} {
		w = doJSON(t, r, http.MethodPost, "/multi/hotel", body)
		expectError(t, w, http.StatusBadRequest, ErrCodeBadRequest, hotel.MsgBatchNotArray)
	}
	if got != nil {
		t.Fatalf("empty body must reach the service as nil, got %v", got)
	}
}

type nopIdemStore struct{}

func (nopIdemStore) Lookup(context.Context, string, string, string, time.Time) (*middleware.StoredResponse, error) {
	return nil, nil
}

func (nopIdemStore) Save(context.Context, string, string, string, middleware.StoredResponse) error {
	return nil
}

func TestKeyedContext_TagsLoggerWithIdempotencyKey(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf)

	r := newTestRouter(http.MethodPost, "/make", func(c *gin.Context) {
		zerolog.Ctx(keyedContext(c)).Info().Msg("reservation")
		c.Status(http.StatusNoContent)
	})
	r.Use(middleware.Idempotency(middleware.IdempotencyOptions{}, nopIdemStore{}))
	r.POST("/keyed", func(c *gin.Context) {
		zerolog.Ctx(keyedContext(c)).Info().Msg("reservation")
		c.Status(http.StatusNoContent)
	})

	doJSON(t, r, http.MethodPost, "/keyed", `{}`, middleware.HeaderIdempotencyKey, "mk-42")
	if !strings.Contains(buf.String(), `"idempotency_key":"mk-42"`) {
		t.Fatalf("log=%s", buf.String())
	}

	buf.Reset()
	doJSON(t, r, http.MethodPost, "/make", `{}`)
	if strings.Contains(buf.String(), "idempotency_key") {
		t.Fatalf("unkeyed request must not carry a key: %s", buf.String())
	}
}
