package tui

import (
	"maps"
	"strings"
)

// State tracks collected values and server provided errors keyed by dotted
// input name.
type State struct {
	prefill map[string]any
	values  map[string]any
	errors  map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	return &State{
		prefill: maps.Clone(prefill),
		values:  make(map[string]any),
		errors:  maps.Clone(errs),
	}
}

// Prefill returns the value supplied for name before prompting.
func (s *State) Prefill(name string) (any, bool) {
	value, ok := s.prefill[name]
	return value, ok
}

// Set records a collected value.
func (s *State) Set(name string, value any) {
	s.values[name] = value
}

// Values returns a copy of the collected values.
func (s *State) Values() map[string]any {
	return maps.Clone(s.values)
}

// ErrorsFor returns the trimmed, non-empty errors for name.
func (s *State) ErrorsFor(name string) []string {
	var out []string
	for _, message := range s.errors[name] {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
