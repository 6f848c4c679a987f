package profile

import (
	"encoding/json"
)

// StateKey is the cookie session key the screen state is kept under.
const StateKey = "profile"

// Encode serialises a state for the cookie session.
func Encode(s State) string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}

// Decode parses a state produced by Encode. Malformed input yields the
// zero state.
func Decode(raw string) State {
	var s State
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return State{}
	}
	return s
}

// Restore decodes raw for owner. State left behind by another user is
// discarded.
func Restore(raw, owner string) State {
	s := Decode(raw)
	if s.Owner != owner {
		return State{Owner: owner}
	}
	return s
}
