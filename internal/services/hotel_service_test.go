package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/hotel"
	"github.com/fndrorato/chatbot-backend/internal/repo"
	"github.com/fndrorato/chatbot-backend/internal/upstream"
)

// ----- fakes + fixtures -----

type fakeUpstream struct {
	calls   []upstream.Request
	respond func(req upstream.Request) upstream.Result
}

func (f *fakeUpstream) Call(_ context.Context, req upstream.Request) upstream.Result {
	f.calls = append(f.calls, req)
	if f.respond == nil {
		return okResult(http.StatusOK, `{}`)
	}
	return f.respond(req)
}

func okResult(status int, body string) upstream.Result {
	return upstream.Result{Kind: upstream.KindOK, StatusCode: status, Body: json.RawMessage(body)}
}

func replyWith(status int, body string) func(upstream.Request) upstream.Result {
	return func(upstream.Request) upstream.Result { return okResult(status, body) }
}

var hotelToday = time.Date(2030, 1, 10, 15, 0, 0, 0, time.UTC)

func newHotelFixture(t *testing.T, respond func(upstream.Request) upstream.Result) (*HotelService, *fakeUpstream, *domain.Client, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	tenant := seedTenant(t, db, true)
	gw := &fakeUpstream{respond: respond}
	s := NewHotelService(db, gw)
	s.Now = func() time.Time { return hotelToday }
	return s, gw, tenant, db
}

func stayBody(overrides map[string]any) map[string]any {
	b := map[string]any{
		"from":         "2030-01-15",
		"to":           "2030-01-17",
		"adults":       float64(2),
		"children":     float64(1),
		"children_age": "5",
		"rooms":        float64(1),
		"contact_id":   "5511",
		"origin":       "whatsapp",
	}
	for k, v := range overrides {
		if v == nil {
			delete(b, k)
			continue
		}
		b[k] = v
	}
	return b
}

func reservationBody(overrides map[string]any) map[string]any {
	b := stayBody(map[string]any{
		"id_fee":         float64(3),
		"id_type":        float64(11),
		"document_guest": "123",
		"guest":          "Ana",
		"phone_guest":    "+55 11 99999-0000",
		"guest_data": []any{
			map[string]any{"guest": "Ana", "document_guest": "123"},
			map[string]any{"guest": "Bia", "document_guest": "456"},
		},
	})
	for k, v := range overrides {
		if v == nil {
			delete(b, k)
			continue
		}
		b[k] = v
	}
	return b
}

func lastSystemLog(t *testing.T, db *gorm.DB, clientID string) domain.SystemLog {
	t.Helper()
	var l domain.SystemLog
	if err := db.Where("client_id = ?", clientID).Order("created_at DESC").First(&l).Error; err != nil {
		t.Fatalf("system log: %v", err)
	}
	return l
}

func wantValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var ve *hotel.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *hotel.ValidationError, got %T %v", err, err)
	}
	if ve.Message != msg {
		t.Fatalf("message = %q; want %q", ve.Message, msg)
	}
}

const availabilityBody = `{"data":[{"availability":[
	{"id_type":10,"type":"Standard","photos":[{"number_of_pax":2}],"details":[{"total":"300.50"}]},
	{"id_type":11,"type":"Family","photos":[{"number_of_pax":4}],"details":[{"total":"450","fee":"Flex"}]},
	{"id_type":12,"type":"Loft","details":[{"total":101}]}
]}]}`

// ----- CheckAvailability -----

func TestCheckAvailability_FiltersByCapacityAndLogsSuccess(t *testing.T) {
	s, gw, tenant, db := newHotelFixture(t, replyWith(http.StatusOK, availabilityBody))
	s.Timeout = 7 * time.Second

	got, err := s.CheckAvailability(context.Background(), tenant, stayBody(nil), AvailabilityOptions{AveragePerNight: true})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if got.Status != hotel.StatusOK || len(got.Availability) != 2 {
		t.Fatalf("unexpected reply: %+v", got)
	}

	family, loft := got.Availability[0], got.Availability[1]
	if fmt.Sprint(family.IDType) != "11" || family.Type != "Family" || fmt.Sprint(loft.IDType) != "12" {
		t.Fatalf("unexpected rooms: %+v", got.Availability)
	}
	d := family.Details[0].(map[string]any)
	if d["total"] != 450.0 || d["average_per_night"] != 225.0 || d["fee"] != "Flex" {
		t.Fatalf("unexpected detail: %+v", d)
	}

	if len(gw.calls) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(gw.calls))
	}
	req := gw.calls[0]
	if req.Path != upstream.PathCheckAvailability || req.Timeout != 7*time.Second || req.ContactID != "5511" || req.Tenant.ID != tenant.ID {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Payload["from"] != "2030-01-15" || req.Payload["children"] != 1 {
		t.Fatalf("unexpected payload: %+v", req.Payload)
	}

	rooms, err := repo.ListRooms(context.Background(), db, tenant.ID)
	if err != nil || len(rooms) != 3 {
		t.Fatalf("room cache not refreshed: %+v %v", rooms, err)
	}
	if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != SystemLogSuccess || l.Origin != SystemLogOrigin {
		t.Fatalf("unexpected system log: %+v", l)
	}
}

func TestCheckAvailability_PastDateNeverCallsUpstream(t *testing.T) {
	s, gw, tenant, db := newHotelFixture(t, nil)

	_, err := s.CheckAvailability(context.Background(), tenant, stayBody(map[string]any{"from": "2030-01-09"}), AvailabilityOptions{})
	wantValidation(t, err, hotel.MsgFromInPast)
	if len(gw.calls) != 0 {
		t.Fatalf("upstream called %d times", len(gw.calls))
	}
	if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != SystemLogErrorPrefix+hotel.MsgFromInPast {
		t.Fatalf("status = %q", l.StatusMessage)
	}
}

func TestCheckAvailability_DegenerateShapes(t *testing.T) {
	cases := []struct {
		name, body, status, logStatus string
	}{
		{"status object", `{"data":[{"availability":{"status":"Sem disponibilidade"}}]}`, "Sem disponibilidade", SystemLogNoAvailPrefix + "Sem disponibilidade"},
		{"empty data", `{"data":[]}`, hotel.StatusInvalidPayload, SystemLogNoAvailPrefix + hotel.StatusInvalidPayload},
		{"null availability", `{"data":[{"availability":null}]}`, hotel.StatusNoneReturned, SystemLogNoAvailPrefix + hotel.StatusNoneReturned},
		{"no details", `{"data":[{"availability":[{"id_type":1,"details":[]}]}]}`, hotel.StatusNoAvailability, SystemLogNoDetails},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, tenant, db := newHotelFixture(t, replyWith(http.StatusOK, tc.body))
			got, err := s.CheckAvailability(context.Background(), tenant, stayBody(nil), AvailabilityOptions{})
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if got.Status != tc.status || got.Availability == nil || len(got.Availability) != 0 {
				t.Fatalf("unexpected reply: %+v", got)
			}
			if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != tc.logStatus {
				t.Fatalf("log status = %q; want %q", l.StatusMessage, tc.logStatus)
			}
		})
	}
}

func TestCheckAvailability_UpstreamFailures(t *testing.T) {
	cases := []struct {
		name      string
		res       upstream.Result
		status    int
		logStatus string
	}{
		{"timeout", upstream.Result{Kind: upstream.KindTimeout, StatusCode: 504, Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, SystemLogErrorPrefix + MsgUpstreamTimeout},
		{"transport", upstream.Result{Kind: upstream.KindTransport, StatusCode: 502, Err: errors.New("connection refused")}, http.StatusBadGateway, SystemLogErrorPrefix + MsgUpstreamError + " - connection refused"},
		{"invalid json", upstream.Result{Kind: upstream.KindInvalidJSON, StatusCode: 200, Raw: "<html>"}, http.StatusBadGateway, SystemLogErrorPrefix + MsgUpstreamInvalidJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := tc.res
			s, _, tenant, db := newHotelFixture(t, func(upstream.Request) upstream.Result { return res })
			_, err := s.CheckAvailability(context.Background(), tenant, stayBody(nil), AvailabilityOptions{})
			var ue *UpstreamError
			if !errors.As(err, &ue) || ue.StatusCode != tc.status || ue.Kind != res.Kind {
				t.Fatalf("expected UpstreamError %d, got %v", tc.status, err)
			}
			if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != tc.logStatus {
				t.Fatalf("log status = %q; want %q", l.StatusMessage, tc.logStatus)
			}
		})
	}
}

// ----- MakeReservation / ChangeReservation -----

func TestMakeReservation_ForwardsBodyAndNestedMessage(t *testing.T) {
	s, gw, tenant, db := newHotelFixture(t, replyWith(http.StatusCreated, `{"data":[{"response":[{"msg":"Reserva 991 criada"}]}]}`))

	got, err := s.MakeReservation(context.Background(), tenant, reservationBody(map[string]any{"token": "client-supplied"}))
	if err != nil {
		t.Fatalf("MakeReservation: %v", err)
	}
	if got.StatusCode != http.StatusCreated || got.Message != "Reserva 991 criada" {
		t.Fatalf("unexpected reply: %+v", got)
	}
	req := gw.calls[0]
	if req.Path != upstream.PathMakeReservation || req.Payload["guest"] != "Ana" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if _, ok := req.Payload["token"]; ok {
		t.Fatal("client token must not be forwarded")
	}
	if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != SystemLogSuccess {
		t.Fatalf("status = %q", l.StatusMessage)
	}
}

func TestMakeReservation_DefaultMessage(t *testing.T) {
	s, _, tenant, _ := newHotelFixture(t, replyWith(http.StatusOK, `{"data":[]}`))
	got, err := s.MakeReservation(context.Background(), tenant, reservationBody(nil))
	if err != nil || got.Message != hotel.DefaultMakeMessage {
		t.Fatalf("unexpected: %+v %v", got, err)
	}
}

func TestMakeReservation_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		msg  string
	}{
		{"missing fields", reservationBody(map[string]any{"guest": "", "phone_guest": nil}), "Missing required fields: guest, phone_guest"},
		{"bad dates", reservationBody(map[string]any{"to": "2030-01-15"}), hotel.MsgToNotAfterFrom},
		{"incomplete guest", reservationBody(map[string]any{"guest_data": []any{map[string]any{"guest": "Ana"}}}), hotel.MsgGuestIncomplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, gw, tenant, db := newHotelFixture(t, nil)
			_, err := s.MakeReservation(context.Background(), tenant, tc.body)
			wantValidation(t, err, tc.msg)
			if len(gw.calls) != 0 {
				t.Fatal("upstream must not be called")
			}
			if l := lastSystemLog(t, db, tenant.ID); l.StatusMessage != SystemLogErrorPrefix+tc.msg {
				t.Fatalf("status = %q", l.StatusMessage)
			}
		})
	}
}

func TestChangeReservation(t *testing.T) {
	s, gw, tenant, _ := newHotelFixture(t, replyWith(http.StatusOK, `{"ok":true}`))
	s.ShortTimeout = 3 * time.Second
	ctx := context.Background()

	_, err := s.ChangeReservation(ctx, tenant, reservationBody(nil))
	wantValidation(t, err, "Missing required fields: id_reserva")

	_, err = s.ChangeReservation(ctx, tenant, reservationBody(map[string]any{
		"id_reserva": "991", "guest_data": []any{map[string]any{"document_guest": "1"}},
	}))
	wantValidation(t, err, hotel.MsgChangeGuestIncomplete)

	got, err := s.ChangeReservation(ctx, tenant, reservationBody(map[string]any{"id_reserva": "991"}))
	if err != nil {
		t.Fatalf("ChangeReservation: %v", err)
	}
	if got.StatusCode != http.StatusOK || got.Message != nil {
		t.Fatalf("unexpected reply: %+v", got)
	}
	if len(gw.calls) != 1 || gw.calls[0].Path != upstream.PathChangeReservation || gw.calls[0].Timeout != 3*time.Second {
		t.Fatalf("unexpected calls: %+v", gw.calls)
	}
}

// ----- GetReservation / CancelReservation -----

func TestGetReservation_EnrichesRoomType(t *testing.T) {
	s, gw, tenant, db := newHotelFixture(t, replyWith(http.StatusOK, `{"reserva":[{"id_type":11,"id_reserva":991},{"id_type":99}]}`))
	ctx := context.Background()
	if err := repo.UpsertRooms(ctx, db, tenant.ID, []repo.RoomUpsert{{RoomCode: "11", RoomType: "Family"}}); err != nil {
		t.Fatalf("seed rooms: %v", err)
	}

	got, err := s.GetReservation(ctx, tenant, map[string]any{"id_reserva": float64(991)})
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	list := got.Reserva.([]any)
	if len(list) != 2 {
		t.Fatalf("unexpected reserva: %+v", got.Reserva)
	}
	if list[0].(map[string]any)["room_type"] != "Family" {
		t.Fatalf("room_type not added: %+v", list[0])
	}
	if _, ok := list[1].(map[string]any)["room_type"]; ok {
		t.Fatalf("unknown room must not be tagged: %+v", list[1])
	}
	if gw.calls[0].Payload["id_reserva"] != float64(991) {
		t.Fatalf("unexpected payload: %+v", gw.calls[0].Payload)
	}
}

func TestGetReservation_MissingID(t *testing.T) {
	s, gw, tenant, _ := newHotelFixture(t, nil)
	for _, body := range []map[string]any{{}, {"id_reserva": ""}, {"id_reserva": float64(0)}} {
		_, err := s.GetReservation(context.Background(), tenant, body)
		wantValidation(t, err, MsgMissingReservation)
	}
	if len(gw.calls) != 0 {
		t.Fatal("upstream must not be called")
	}
}

func TestCancelReservation(t *testing.T) {
	s, gw, tenant, _ := newHotelFixture(t, replyWith(http.StatusOK, `{"reserva":[{"status":"cancelada"},{"status":"x"}]}`))
	ctx := context.Background()

	_, err := s.CancelReservation(ctx, tenant, map[string]any{"id_reserva": "991"})
	wantValidation(t, err, MsgMissingFields)

	got, err := s.CancelReservation(ctx, tenant, map[string]any{"id_reserva": "991", "reason": "mudança"})
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if got.Reserva.(map[string]any)["status"] != "cancelada" {
		t.Fatalf("unexpected reserva: %+v", got.Reserva)
	}
	if req := gw.calls[0]; req.Path != upstream.PathCancelReservation || req.Timeout != DefaultUpstreamShortTimeout || req.Payload["reason"] != "mudança" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestCancelReservation_Timeout(t *testing.T) {
	s, _, tenant, _ := newHotelFixture(t, func(upstream.Request) upstream.Result {
		return upstream.Result{Kind: upstream.KindTimeout, StatusCode: 504}
	})
	_, err := s.CancelReservation(context.Background(), tenant, map[string]any{"id_reserva": "1", "reason": "r"})
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusGatewayTimeout || ue.Error() != MsgUpstreamTimeout {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ----- MakeMultiReservations -----

func batchEntry(name string, overrides map[string]any) map[string]any {
	m := map[string]any{
		"full_name":        name,
		"adults":           float64(2),
		"childrens":        float64(0),
		"document":         "123",
		"phone":            "+55 11 99999-0000",
		"payment_method":   "credit_card",
		"credit_card_data": "4111 1111 1111 1234",
		"check_in":         "2030-01-15",
		"check_out":        "2030-01-17",
		"id_type":          float64(11),
		"id_fee":           float64(3),
		"origin":           "whatsapp",
		"contact_id":       "5511",
	}
	for k, v := range overrides {
		m[k] = v
	}
	return m
}

func TestMakeMultiReservations_MixedOutcomes(t *testing.T) {
	s, gw, tenant, _ := newHotelFixture(t, func(req upstream.Request) upstream.Result {
		switch req.Payload["guest"] {
		case "Ana":
			return okResult(http.StatusOK, `{"data":[{"response":[{"msg":"Reserva 1 ok"}]}]}`)
		case "Caio":
			return okResult(http.StatusConflict, `{"error":"sem quarto"}`)
		default:
			return upstream.Result{Kind: upstream.KindTimeout, StatusCode: 504}
		}
	})

	raw := []any{
		batchEntry("Ana", nil),
		"not an object",
		batchEntry("Bia", map[string]any{"check_in": "2030-01-01"}),
		batchEntry("Caio", nil),
		batchEntry("Duda", nil),
	}
	got, err := s.MakeMultiReservations(context.Background(), tenant, raw)
	if err != nil {
		t.Fatalf("MakeMultiReservations: %v", err)
	}
	if got.StatusCode != http.StatusMultiStatus || got.Summary != (hotel.Summary{Requested: 5, Succeeded: 1, Failed: 4}) {
		t.Fatalf("unexpected summary: %d %+v", got.StatusCode, got.Summary)
	}

	r := got.Results
	if r[0].Status != hotel.ItemSuccess || r[0].Message != "Reserva 1 ok" || r[0].HTTPStatus != http.StatusOK {
		t.Fatalf("item 0: %+v", r[0])
	}
	if r[1].Status != hotel.ItemError || r[1].Message != hotel.MsgBatchNotObject {
		t.Fatalf("item 1: %+v", r[1])
	}
	if r[2].Status != hotel.ItemError || r[2].FullName != "Bia" || r[2].HTTPStatus != 0 {
		t.Fatalf("item 2: %+v", r[2])
	}
	if r[3].HTTPStatus != http.StatusConflict || r[3].Message != hotel.DefaultBatchMessage || string(r[3].Details) != `{"error":"sem quarto"}` {
		t.Fatalf("item 3: %+v", r[3])
	}
	if r[4].Message != hotel.MsgBatchTimeout {
		t.Fatalf("item 4: %+v", r[4])
	}
	for i, res := range r {
		if res.Index != i {
			t.Fatalf("results out of order: %+v", r)
		}
	}

	// only the three valid items reach the upstream
	if len(gw.calls) != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", len(gw.calls))
	}
	req := gw.calls[0]
	if req.Payload["observation"] != "credit_card | 4111 1111 1111 1234" ||
		req.LogPayload["observation"] != "credit_card | **** **** **** 1234" {
		t.Fatalf("card handling: %v / %v", req.Payload["observation"], req.LogPayload["observation"])
	}
	if !req.RawFallback || req.ContactID != "5511" || req.Origin != "whatsapp" || req.Payload["rooms"] != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestMakeMultiReservations_AllSucceedOrAllFail(t *testing.T) {
	s, _, tenant, _ := newHotelFixture(t, replyWith(http.StatusOK, `{}`))
	got, err := s.MakeMultiReservations(context.Background(), tenant, []any{batchEntry("Ana", nil)})
	if err != nil || got.StatusCode != http.StatusOK || got.Results[0].Message != hotel.DefaultBatchMessage {
		t.Fatalf("unexpected: %+v %v", got, err)
	}

	got, err = s.MakeMultiReservations(context.Background(), tenant, []any{float64(1)})
	if err != nil || got.StatusCode != http.StatusBadRequest || got.Summary.Failed != 1 {
		t.Fatalf("unexpected: %+v %v", got, err)
	}
}

func TestMakeMultiReservations_NotAnArray(t *testing.T) {
	s, gw, tenant, _ := newHotelFixture(t, nil)
	for _, raw := range []any{nil, []any{}, map[string]any{"full_name": "Ana"}} {
		_, err := s.MakeMultiReservations(context.Background(), tenant, raw)
		wantValidation(t, err, hotel.MsgBatchNotArray)
	}
	if len(gw.calls) != 0 {
		t.Fatal("upstream must not be called")
	}
}
