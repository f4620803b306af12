package hotel

import (
	"bytes"
	"encoding/json"
	"regexp"
)

// Default messages used when the upstream reply carries none.
const (
	DefaultMakeMessage  = "Reserva realizada com sucesso."
	DefaultBatchMessage = "Reserva processada."
)

// AvailabilityPayload maps a validated stay to the checkAvailability body.
// age_children is only sent when ages were given.
func AvailabilityPayload(s Stay) map[string]any {
	p := map[string]any{
		"from":     s.From.Format(DateLayout),
		"to":       s.To.Format(DateLayout),
		"adults":   s.Adults,
		"children": s.Children,
		"rooms":    s.Rooms,
	}
	if len(s.ChildrenAges) > 0 {
		ages := make([]map[string]int, 0, len(s.ChildrenAges))
		for _, a := range s.ChildrenAges {
			ages = append(ages, map[string]int{"age": a})
		}
		p["age_children"] = ages
	}
	return p
}

// ReservationPayload forwards the request body unchanged to makeReservation
// and changeReservation; the gateway adds the tenant token.
func ReservationPayload(body map[string]any) map[string]any {
	p := make(map[string]any, len(body))
	for k, v := range body {
		p[k] = v
	}
	delete(p, "token")
	return p
}

// GetPayload is the getReservation body.
func GetPayload(idReserva any) map[string]any {
	return map[string]any{"id_reserva": idReserva}
}

// CancelPayload is the cancelReservation body.
func CancelPayload(idReserva, reason any) map[string]any {
	return map[string]any{"id_reserva": idReserva, "reason": reason}
}

// NestedMessage returns data[0].response[0].msg from an upstream body. ok is
// false when any level of the path is missing or has the wrong type.
func NestedMessage(body []byte) (msg any, ok bool) {
	top, ok := decodeObject(body)
	if !ok {
		return nil, false
	}
	data, ok := top["data"].([]any)
	if !ok || len(data) == 0 {
		return nil, false
	}
	first, ok := data[0].(map[string]any)
	if !ok {
		return nil, false
	}
	resp, ok := first["response"].([]any)
	if !ok || len(resp) == 0 {
		return nil, false
	}
	entry, ok := resp[0].(map[string]any)
	if !ok {
		return nil, false
	}
	msg, ok = entry["msg"]
	return msg, ok
}

// Reservations returns the "reserva" list of a getReservation body, each
// object entry gaining "room_type" when its id_type is a cached room code.
// The result is never nil.
func Reservations(body []byte, roomTypes map[string]string) []any {
	top, ok := decodeObject(body)
	if !ok {
		return []any{}
	}
	list, ok := top["reserva"].([]any)
	if !ok {
		return []any{}
	}
	for _, item := range list {
		r, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := roomTypes[StringOf(r["id_type"])]; ok {
			r["room_type"] = t
		}
	}
	return list
}

// FirstReservation returns reserva[0] of a cancelReservation body, or an
// empty object.
func FirstReservation(body []byte) any {
	top, ok := decodeObject(body)
	if !ok {
		return map[string]any{}
	}
	list, ok := top["reserva"].([]any)
	if !ok || len(list) == 0 {
		return map[string]any{}
	}
	return list[0]
}

var nonDigits = regexp.MustCompile(`\D`)

// MaskCard keeps only the last four digits of a card number for logs.
func MaskCard(card string) string {
	if card == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(card, "")
	tail := digits
	if len(digits) > 4 {
		tail = digits[len(digits)-4:]
	}
	if tail == "" {
		return "****"
	}
	return "**** **** **** " + tail
}

func decodeObject(body []byte) (map[string]any, bool) {
	var top map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&top); err != nil || top == nil {
		return nil, false
	}
	return top, true
}
