package quota

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Level is a three-step ranking used for a subject's manual priority, its
// importance, and the display tier derived during a computation.
type Level int

const (
	High   Level = iota + 1 // Most urgent.
	Medium                  // Default urgency.
	Low                     // Least urgent.
)

var (
	levelNames  = [...]string{High: "high", Medium: "medium", Low: "low"}
	levelByName = map[string]Level{
		"high":   High,
		"medium": Medium,
		"low":    Low,
	}
	levelWeights = [...]int{High: 3, Medium: 2, Low: 1}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Level(0)
	_ json.Marshaler           = Level(0)
	_ json.Unmarshaler         = (*Level)(nil)
	_ encoding.TextMarshaler   = Level(0)
	_ encoding.TextUnmarshaler = (*Level)(nil)
)

// String returns the name of the level ("high", "medium", "low").
// For invalid values it returns "Level(n)".
func (l Level) String() string {
	if l.IsValid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// IsValid reports whether l is High, Medium or Low.
func (l Level) IsValid() bool {
	return l >= High && l <= Low
}

// Weight returns the budget weight of the level: high=3, medium=2, low=1.
// Invalid levels weigh 0.
func (l Level) Weight() int {
	if !l.IsValid() {
		return 0
	}
	return levelWeights[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	v, ok := levelByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, text)
	}
	*l = v
	return nil
}

// MarshalJSON implements json.Marshaler. Level serializes as a JSON string.
func (l Level) MarshalJSON() ([]byte, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, data)
	}
	return l.UnmarshalText([]byte(s))
}
