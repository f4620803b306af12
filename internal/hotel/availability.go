package hotel

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/fndrorato/chatbot-backend/internal/domain"
)

// Availability statuses returned with HTTP 200.
const (
	StatusOK               = "OK"
	StatusInvalidPayload   = "Invalid or empty data payload"
	StatusUnexpectedObject = "Unexpected availability object"
	StatusNoneReturned     = "No availability returned"
	StatusNotAList         = "Availability is not a list"
	StatusNoAvailability   = "No availability"
)

// Shape tags the variant of an upstream availability payload.
type Shape int

const (
	// ShapeEmptyPayload: "data" is missing, not a list, or empty.
	ShapeEmptyPayload Shape = iota
	// ShapeStatusMessage: the upstream answered with a status instead of rooms.
	ShapeStatusMessage
	// ShapeRoomList: data[0].availability is a non-empty list.
	ShapeRoomList
)

// Availability is the decoded form of a checkAvailability response.
//
// Fields:
//   - Shape: which variant was decoded.
//   - Status: the status text for ShapeEmptyPayload and ShapeStatusMessage.
//   - Rooms: object entries of the list for ShapeRoomList.
//   - others: number of list entries that were not JSON objects.
type Availability struct {
	Shape  Shape
	Status string
	Rooms  []RoomOffer
	others int
}

// RoomOffer is one entry of the upstream availability list.
//
// Fields:
//   - Code: id_type rendered as text ("" when absent, null, 0 or "").
//   - IDType / Type: the upstream values, echoed unchanged in responses.
//   - Pax: photos[0].number_of_pax when present and integral.
//   - Details: the raw "details" value.
type RoomOffer struct {
	Code    string
	IDType  any
	Type    any
	Pax     *int
	Details any
}

// AvailableRoom is one room of a normalized availability response.
type AvailableRoom struct {
	IDType  any   `json:"id_type"`
	Type    any   `json:"type"`
	Details []any `json:"details"`
}

// RoomMeta is the room-cache refresh derived from one RoomOffer.
type RoomMeta struct {
	Code string
	Type string
	Pax  *int
}

// ParseAvailability decodes an upstream body into one of the Shape variants.
// It never fails: malformed input yields ShapeEmptyPayload.
func ParseAvailability(body []byte) Availability {
	empty := Availability{Shape: ShapeEmptyPayload, Status: StatusInvalidPayload}

	var top map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&top); err != nil || top == nil {
		return empty
	}
	data, ok := top["data"].([]any)
	if !ok || len(data) == 0 {
		return empty
	}
	first, ok := data[0].(map[string]any)
	if !ok {
		return empty
	}

	raw := first["availability"]
	if obj, ok := raw.(map[string]any); ok {
		if s := StringOf(obj["status"]); s != "" {
			return Availability{Shape: ShapeStatusMessage, Status: s}
		}
		return Availability{Shape: ShapeStatusMessage, Status: StatusUnexpectedObject}
	}
	if !Truthy(raw) {
		return Availability{Shape: ShapeStatusMessage, Status: StatusNoneReturned}
	}
	list, ok := raw.([]any)
	if !ok {
		return Availability{Shape: ShapeStatusMessage, Status: StatusNotAList}
	}

	out := Availability{Shape: ShapeRoomList, Status: StatusOK}
	for _, item := range list {
		room, ok := item.(map[string]any)
		if !ok {
			out.others++
			continue
		}
		out.Rooms = append(out.Rooms, RoomOffer{
			Code:    roomCode(room["id_type"]),
			IDType:  room["id_type"],
			Type:    room["type"],
			Pax:     photoPax(room["photos"]),
			Details: room["details"],
		})
	}
	return out
}

// NoDetails reports whether every list entry is an object with empty
// details, which the upstream uses to signal no availability.
func (a Availability) NoDetails() bool {
	if a.Shape != ShapeRoomList || a.others > 0 {
		return false
	}
	for _, r := range a.Rooms {
		if Truthy(r.Details) {
			return false
		}
	}
	return true
}

// RoomMetas returns the cache refreshes for rooms that carry a code.
func (a Availability) RoomMetas() []RoomMeta {
	var out []RoomMeta
	for _, r := range a.Rooms {
		if r.Code == "" {
			continue
		}
		out = append(out, RoomMeta{Code: r.Code, Type: StringOf(r.Type), Pax: r.Pax})
	}
	return out
}

// NormalizeOptions controls Normalize.
//
// Fields:
//   - Pax: party size (adults + children).
//   - Nights: stay length used for AveragePerNight.
//   - AveragePerNight: add "average_per_night" to every detail.
type NormalizeOptions struct {
	Pax             int
	Nights          int
	AveragePerNight bool
}

// Normalize keeps the offers whose room code is cached with a capacity that
// fits the party (an unknown capacity fits any party), and converts every
// detail's "total" to a number. Input maps are not modified.
func Normalize(a Availability, cache []domain.HotelRoom, opt NormalizeOptions) []AvailableRoom {
	fits := make(map[string]bool, len(cache))
	for _, r := range cache {
		if r.NumberOfPax == nil || *r.NumberOfPax >= opt.Pax {
			fits[r.RoomCode] = true
		}
	}

	out := []AvailableRoom{}
	for _, r := range a.Rooms {
		if r.Code == "" || !fits[r.Code] {
			continue
		}
		src, _ := r.Details.([]any)
		details := make([]any, 0, len(src))
		for _, d := range src {
			dm, ok := d.(map[string]any)
			if !ok {
				details = append(details, d)
				continue
			}
			details = append(details, normalizeDetail(dm, opt))
		}
		out = append(out, AvailableRoom{IDType: r.IDType, Type: r.Type, Details: details})
	}
	return out
}

func normalizeDetail(in map[string]any, opt NormalizeOptions) map[string]any {
	d := make(map[string]any, len(in)+1)
	for k, v := range in {
		d[k] = v
	}
	raw, present := in["total"]
	if !present {
		raw = float64(0)
	}
	total, ok := toFloat(raw)
	if ok {
		d["total"] = total
	} else {
		d["total"] = raw
	}
	if opt.AveragePerNight && ok {
		d["average_per_night"] = AveragePerNight(total, opt.Nights)
	}
	return d
}

// AveragePerNight rounds total/nights half to even; total is returned as is
// when nights <= 0.
func AveragePerNight(total float64, nights int) float64 {
	if nights <= 0 {
		return total
	}
	return math.RoundToEven(total / float64(nights))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func roomCode(v any) string {
	if !Truthy(v) {
		return ""
	}
	return StringOf(v)
}

func photoPax(v any) *int {
	photos, ok := v.([]any)
	if !ok || len(photos) == 0 {
		return nil
	}
	first, ok := photos[0].(map[string]any)
	if !ok {
		return nil
	}
	n, ok := CoerceInt(first["number_of_pax"])
	if !ok {
		return nil
	}
	return &n
}
