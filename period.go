package quota

import (
	"encoding"
	"encoding/json"
	"fmt"
	"time"
)

// Period is a quota horizon: one day or one Monday-based week.
type Period int

const (
	Daily  Period = iota + 1 // [today 00:00, tomorrow 00:00)
	Weekly                   // [Monday 00:00, next Monday 00:00)
)

var (
	periodNames  = [...]string{Daily: "daily", Weekly: "weekly"}
	periodByName = map[string]Period{
		"daily":  Daily,
		"weekly": Weekly,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Period(0)
	_ json.Marshaler           = Period(0)
	_ json.Unmarshaler         = (*Period)(nil)
	_ encoding.TextMarshaler   = Period(0)
	_ encoding.TextUnmarshaler = (*Period)(nil)
)

// IsValid reports whether p is Daily or Weekly.
func (p Period) IsValid() bool {
	return p == Daily || p == Weekly
}

// String returns "daily" or "weekly". For invalid values it returns "Period(n)".
func (p Period) String() string {
	if p.IsValid() {
		return periodNames[p]
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeriod, int(p))
	}
	return []byte(periodNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	v, ok := periodByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Period serializes as a JSON string.
func (p Period) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, data)
	}
	return p.UnmarshalText([]byte(s))
}

// Bounds returns the half-open interval [start, end) of the period that
// contains now, in now's location.
func (p Period) Bounds(now time.Time) (start, end time.Time) {
	if p == Weekly {
		start = StartOfWeek(now)
		return start, start.AddDate(0, 0, 7)
	}
	start = StartOfDay(now)
	return start, start.AddDate(0, 0, 1)
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday → 0, Sunday → 6
	return day.AddDate(0, 0, -offset)
}

// daysBetween counts calendar days from a to b (negative when b is earlier).
// Only the dates matter, so DST transitions do not skew the count.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
