package hotel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityPayload(t *testing.T) {
	s := Stay{
		From:   time.Date(2030, 5, 10, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2030, 5, 12, 0, 0, 0, 0, time.UTC),
		Adults: 2, Children: 2, Rooms: 1,
		ChildrenAges: []int{3, 9},
	}
	p := AvailabilityPayload(s)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"from":"2030-05-10","to":"2030-05-12","adults":2,"children":2,"rooms":1,
		"age_children":[{"age":3},{"age":9}]
	}`, string(raw))

	s.Children, s.ChildrenAges = 0, nil
	_, has := AvailabilityPayload(s)["age_children"]
	assert.False(t, has)
}

func TestReservationPayload_CopiesBody(t *testing.T) {
	body := map[string]any{"from": "2030-05-10", "guest": "Ana", "token": "client-supplied"}
	p := ReservationPayload(body)
	assert.Equal(t, "Ana", p["guest"])
	assert.NotContains(t, p, "token")
	p["guest"] = "changed"
	assert.Equal(t, "Ana", body["guest"])
}

func TestGetAndCancelPayloads(t *testing.T) {
	assert.Equal(t, map[string]any{"id_reserva": "77"}, GetPayload("77"))
	assert.Equal(t, map[string]any{"id_reserva": "77", "reason": "plans changed"}, CancelPayload("77", "plans changed"))
}

func TestNestedMessage(t *testing.T) {
	msg, ok := NestedMessage([]byte(`{"data":[{"response":[{"msg":"Reserva 123 criada"}]}]}`))
	require.True(t, ok)
	assert.Equal(t, "Reserva 123 criada", msg)

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"data":[]}`,
		`{"data":[{}]}`,
		`{"data":[{"response":[]}]}`,
		`{"data":[{"response":["x"]}]}`,
		`{"data":[{"response":[{"code":1}]}]}`,
		`{"data":"x"}`,
	} {
		_, ok := NestedMessage([]byte(body))
		assert.False(t, ok, body)
	}
}

func TestReservations_EnrichesRoomType(t *testing.T) {
	body := []byte(`{"reserva":[{"id_reserva":1,"id_type":10},{"id_reserva":2,"id_type":"99"},"junk"]}`)
	got := Reservations(body, map[string]string{"10": "Standard"})
	require.Len(t, got, 3)
	assert.Equal(t, "Standard", got[0].(map[string]any)["room_type"])
	_, has := got[1].(map[string]any)["room_type"]
	assert.False(t, has)

	assert.Equal(t, []any{}, Reservations([]byte(`{"reserva":"none"}`), nil))
	assert.Equal(t, []any{}, Reservations([]byte(`{}`), nil))
}

func TestFirstReservation(t *testing.T) {
	got := FirstReservation([]byte(`{"reserva":[{"status":"cancelled"},{"status":"other"}]}`))
	assert.Equal(t, map[string]any{"status": "cancelled"}, got)
	assert.Equal(t, map[string]any{}, FirstReservation([]byte(`{"reserva":[]}`)))
	assert.Equal(t, map[string]any{}, FirstReservation([]byte(`{}`)))
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "", MaskCard(""))
	assert.Equal(t, "**** **** **** 1111", MaskCard("4111 1111 1111 1111"))
	assert.Equal(t, "**** **** **** 4242", MaskCard("4242-4242-4242-4242"))
	assert.Equal(t, "**** **** **** 12", MaskCard("12"))
	assert.Equal(t, "****", MaskCard("visa"))
}
