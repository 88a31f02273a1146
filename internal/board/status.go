package board

import "fmt"

type Status int

const (
	Pending Status = iota
	InProgress
	Won
	Lost
)

var statusNames = [...]string{
	Pending:    "pending",
	InProgress: "in_progress",
	Won:        "won",
	Lost:       "lost",
}

// [Status] implements [fmt.Stringer]
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Terminal reports whether the game is over. Terminal boards ignore every
// intent until they are reset.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}
