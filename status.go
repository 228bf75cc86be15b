package quota

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Status is the completion state of a subject within one period instance.
// It only moves forward inside a period; a new period starts at NotStarted.
type Status int

const (
	NotStarted Status = iota + 1 // Nothing logged this period.
	InProgress                   // Some units logged, quota not met.
	Completed                    // Logged units meet the quota.
)

var (
	statusNames  = [...]string{NotStarted: "not_started", InProgress: "in_progress", Completed: "completed"}
	statusByName = map[string]Status{
		"not_started": NotStarted,
		"in_progress": InProgress,
		"completed":   Completed,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Status(0)
	_ json.Marshaler           = Status(0)
	_ json.Unmarshaler         = (*Status)(nil)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

func (s Status) isValid() bool {
	return s >= NotStarted && s <= Completed
}

// String returns the name of the status.
// For invalid values it returns "Status(n)".
func (s Status) String() string {
	if s.isValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, ok := statusByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Status serializes as a JSON string.
func (s Status) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}
	return s.UnmarshalText([]byte(str))
}
