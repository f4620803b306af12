package hotel

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Batch messages.
const (
	MsgBatchNotArray  = "Request body must be a non-empty JSON array."
	MsgBatchNotObject = "Item must be a JSON object."
	MsgBatchTimeout   = "Upstream timeout (30s) while creating reservation."
)

// batchRequired lists the fields every batch item must carry.
var batchRequired = []string{
	"full_name", "adults", "childrens", "document", "phone",
	"payment_method", "check_in", "check_out", "id_type", "id_fee",
}

// Item result statuses.
const (
	ItemSuccess = "success"
	ItemError   = "error"
)

// BatchItem is one validated entry of a multi-room reservation request. Each
// item books exactly one room.
type BatchItem struct {
	Index         int
	FullName      any
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
	IDType        int
	IDFee         int
	Document      any
	Phone         any
	PaymentMethod string
	CardData      string
	Origin        any
}

// ParseBatchItem validates raw (the idx-th array element). Ages are not
// checked for batch items.
func ParseBatchItem(idx int, raw any, today time.Time) (BatchItem, error) {
	it := BatchItem{Index: idx}
	m, ok := raw.(map[string]any)
	if !ok {
		return it, &ValidationError{Message: MsgBatchNotObject}
	}
	it.FullName = m["full_name"]
	if err := RequireFields(m, batchRequired...); err != nil {
		return it, err
	}

	var err error
	if it.CheckIn, err = batchDate(m, "check_in"); err != nil {
		return it, err
	}
	if it.CheckOut, err = batchDate(m, "check_out"); err != nil {
		return it, err
	}
	if it.CheckIn.Before(Day(today)) {
		return it, &ValidationError{Message: "check_in must be today or in the future."}
	}
	if !it.CheckOut.After(it.CheckIn) {
		return it, &ValidationError{Message: "check_out must be after check_in."}
	}

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"adults", &it.Adults},
		{"childrens", &it.Children},
		{"id_type", &it.IDType},
		{"id_fee", &it.IDFee},
	} {
		n, ok := CoerceInt(m[f.key])
		if !ok {
			return it, invalidf("Field '%s' must be an integer.", f.key)
		}
		*f.dst = n
	}
	if it.Adults <= 0 {
		return it, &ValidationError{Message: "adults must be greater than 0."}
	}
	if it.Children < 0 {
		return it, &ValidationError{Message: "childrens must be 0 or greater."}
	}

	it.Document = m["document"]
	it.Phone = m["phone"]
	it.PaymentMethod = strings.TrimSpace(StringOf(m["payment_method"]))
	it.CardData = strings.TrimSpace(StringOf(m["credit_card_data"]))
	it.Origin = m["origin"]
	return it, nil
}

func batchDate(m map[string]any, key string) (time.Time, error) {
	t, ok := ParseDate(StringOf(m[key]))
	if !ok {
		return time.Time{}, invalidf("Field '%s' must be a date in format YYYY-MM-DD.", key)
	}
	return t, nil
}

// Payload maps the item to the makeReservation body (one room per item).
// The card data is sent unmasked.
func (it BatchItem) Payload() map[string]any {
	return it.payload(it.observation(false))
}

// LogPayload is Payload with the card number masked.
func (it BatchItem) LogPayload() map[string]any {
	return it.payload(it.observation(true))
}

func (it BatchItem) payload(observation string) map[string]any {
	return map[string]any{
		"from":           it.CheckIn.Format(DateLayout),
		"to":             it.CheckOut.Format(DateLayout),
		"adults":         it.Adults,
		"children":       it.Children,
		"rooms":          1,
		"id_fee":         it.IDFee,
		"id_type":        it.IDType,
		"document_guest": it.Document,
		"guest":          it.FullName,
		"phone_guest":    it.Phone,
		"observation":    observation,
		"origin":         it.Origin,
		"guest_data": []map[string]any{{
			"document_guest": it.Document,
			"guest":          it.FullName,
			"guest_pax":      strconv.Itoa(it.Adults + it.Children),
			"phone_guest":    it.Phone,
		}},
	}
}

// observation is "payment_method | card", or "" when both are empty.
func (it BatchItem) observation(mask bool) string {
	if it.PaymentMethod == "" && it.CardData == "" {
		return ""
	}
	card := it.CardData
	if mask {
		card = MaskCard(card)
	}
	return it.PaymentMethod + " | " + card
}

// ItemResult is the outcome of one batch item.
type ItemResult struct {
	Index      int             `json:"index"`
	FullName   any             `json:"full_name"`
	Status     string          `json:"status"`
	HTTPStatus int             `json:"http_status,omitempty"`
	Message    any             `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Succeeded reports whether the item was booked.
func (r ItemResult) Succeeded() bool { return r.Status == ItemSuccess }

// Summary counts batch outcomes; Succeeded + Failed == Requested.
type Summary struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Aggregate summarizes results and picks the response status: 200 when
// every item succeeded, 207 when outcomes are mixed, 400 otherwise.
func Aggregate(results []ItemResult) (int, Summary) {
	s := Summary{Requested: len(results)}
	for _, r := range results {
		if r.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	switch {
	case s.Succeeded > 0 && s.Failed > 0:
		return http.StatusMultiStatus, s
	case s.Succeeded > 0:
		return http.StatusOK, s
	default:
		return http.StatusBadRequest, s
	}
}
