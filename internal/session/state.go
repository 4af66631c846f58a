package session

import "fmt"

// State is the phase of a Converter.
type State int

const (
	// Idle means no source image is loaded.
	Idle State = iota

	// PendingDebounce means parameters changed and the quiet period has not
	// yet elapsed.
	PendingDebounce

	// Processing means a render is running or queued.
	Processing

	// Ready means the page for the latest parameters is available.
	Ready
)

var stateNames = map[State]string{
	Idle:            "idle",
	PendingDebounce: "pending_debounce",
	Processing:      "processing",
	Ready:           "ready",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state as its name, so it reads well in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
