// Package hotel holds the request and response logic of the hotel
// reservation flows: input validation, upstream payload mapping, the parsing
// of the upstream's availability payloads and batch aggregation.
//
// Nothing in this package performs I/O. Services hand it decoded request
// bodies (map[string]any as produced by encoding/json) and raw upstream
// bodies, and get back canonical values or a *ValidationError carrying the
// exact message returned to the caller.
package hotel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Validation messages shared with handlers and tests.
const (
	MsgInvalidDate      = "Invalid date format. Use YYYY-MM-DD"
	MsgFromInPast       = "From date must be today or in the future"
	MsgToNotAfterFrom   = "To date must be after from date"
	MsgAdultsPositive   = "Adults must be greater than 0"
	MsgChildrenNegative = "Children must be 0 or greater"
	MsgRoomsPositive    = "Rooms must be greater than 0"

	MsgAgesRequired    = "children_age is required when children > 0"
	MsgAgesBadString   = `Invalid children_age format. Must be a comma-separated string of integers (e.g., "2,10")`
	MsgAgesBadListItem = "Each child age in the list must be an integer"
	MsgAgesBadType     = `children_age must be a string (e.g., "2,10")`
	MsgAgeNegative     = "Each child age must be a positive integer"
	MsgAgesNotEmpty    = "children_age should be empty when children = 0"

	// MsgGuestIncomplete is used by reservation creation.
	MsgGuestIncomplete = "Each guest must have name and document"
	// MsgChangeGuestIncomplete is used by reservation changes.
	MsgChangeGuestIncomplete = "Guest name and document are required for each guest."
	MsgGuestDataNotList      = "guest_data must be a list"
)

// ValidationError is a rejected request. Message is returned verbatim to the
// client with HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Stay is a validated stay request in canonical form.
//
// Fields:
//   - From / To: UTC midnights; To is strictly after From.
//   - Adults (> 0), Children (>= 0), Rooms (> 0).
//   - ChildrenAges: exactly Children non-negative ages (nil when Children == 0).
type Stay struct {
	From         time.Time
	To           time.Time
	Adults       int
	Children     int
	Rooms        int
	ChildrenAges []int
}

// Nights returns the number of nights between From and To.
func (s Stay) Nights() int {
	return int(s.To.Sub(s.From).Hours() / 24)
}

// RequireFields reports the fields of body that are absent, null or "".
// The message lists them in the given order.
func RequireFields(body map[string]any, fields ...string) error {
	var missing []string
	for _, f := range fields {
		if blank(body[f]) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return invalidf("Missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseStay validates the stay fields of body in a fixed order: dates first,
// then counts, then children ages. today is truncated to its calendar day.
//
// Absent counts default to zero, so a missing "adults" or "rooms" fails the
// positivity checks rather than the integer check.
func ParseStay(body map[string]any, today time.Time) (Stay, error) {
	var s Stay

	from, ok := ParseDate(body["from"])
	if !ok {
		return s, &ValidationError{Message: MsgInvalidDate}
	}
	to, ok := ParseDate(body["to"])
	if !ok {
		return s, &ValidationError{Message: MsgInvalidDate}
	}
	if from.Before(Day(today)) {
		return s, &ValidationError{Message: MsgFromInPast}
	}
	if !to.After(from) {
		return s, &ValidationError{Message: MsgToNotAfterFrom}
	}
	s.From, s.To = from, to

	var err error
	if s.Adults, err = intField(body, "adults"); err != nil {
		return s, err
	}
	if s.Children, err = intField(body, "children"); err != nil {
		return s, err
	}
	if s.Rooms, err = intField(body, "rooms"); err != nil {
		return s, err
	}
	switch {
	case s.Adults <= 0:
		return s, &ValidationError{Message: MsgAdultsPositive}
	case s.Children < 0:
		return s, &ValidationError{Message: MsgChildrenNegative}
	case s.Rooms <= 0:
		return s, &ValidationError{Message: MsgRoomsPositive}
	}

	if s.ChildrenAges, err = ParseChildrenAges(s.Children, body["children_age"]); err != nil {
		return s, err
	}
	return s, nil
}

// ParseChildrenAges normalizes the children_age input, which callers send
// either as a comma-separated string ("2,10") or as a JSON list, into a list
// of exactly children non-negative ages. When children is zero the input must
// be empty and the result is nil.
func ParseChildrenAges(children int, raw any) ([]int, error) {
	if children <= 0 {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
			return nil, nil
		}
		if Truthy(raw) {
			return nil, &ValidationError{Message: MsgAgesNotEmpty}
		}
		return nil, nil
	}

	if !Truthy(raw) {
		return nil, &ValidationError{Message: MsgAgesRequired}
	}

	var ages []int
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, &ValidationError{Message: MsgAgesBadString}
			}
			ages = append(ages, n)
		}
	case []any:
		for _, item := range v {
			n, ok := CoerceInt(item)
			if !ok {
				return nil, &ValidationError{Message: MsgAgesBadListItem}
			}
			ages = append(ages, n)
		}
	default:
		return nil, &ValidationError{Message: MsgAgesBadType}
	}

	if len(ages) != children {
		return nil, invalidf("children_age must contain exactly %d ages, but found %d", children, len(ages))
	}
	for _, a := range ages {
		if a < 0 {
			return nil, &ValidationError{Message: MsgAgeNegative}
		}
	}
	return ages, nil
}

// ValidateGuests checks that every guest_data entry carries both "guest" and
// "document_guest". A missing guest_data is accepted.
func ValidateGuests(raw any, msg string) error {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return &ValidationError{Message: MsgGuestDataNotList}
	}
	for _, item := range list {
		g, ok := item.(map[string]any)
		if !ok || !Truthy(g["guest"]) || !Truthy(g["document_guest"]) {
			return &ValidationError{Message: msg}
		}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string (surrounding spaces allowed) as a UTC
// midnight.
func ParseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Day truncates t to its calendar day, expressed as a UTC midnight so it
// compares directly with ParseDate results.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CoerceInt accepts JSON numbers without a fractional part and numeric
// strings.
func CoerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return CoerceInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// intField reads an optional integer; absent or null is zero.
func intField(body map[string]any, key string) (int, error) {
	v, ok := body[key]
	if !ok || v == nil {
		return 0, nil
	}
	n, ok := CoerceInt(v)
	if !ok {
		return 0, invalidf("'%s' must be an integer", key)
	}
	return n, nil
}

// StringOf renders a scalar JSON value as text; nil is "".
func StringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
		return strconv.FormatFloat(s, 'g', -1, 64)
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Truthy mirrors JSON "emptiness": null, false, 0, "" and empty
// collections are false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
