//go:build !libretro

package standalone

import (
	"slices"
	"strings"
	"sync"

	"github.com/user-none/efuse/core"
)

// parseVariable splits a "Label; a|b|c" option description into its label
// and values. The first value is the default.
func parseVariable(v core.Variable) (label string, values []string) {
	label, list, ok := strings.Cut(v.Value, ";")
	if !ok {
		return strings.TrimSpace(v.Value), nil
	}
	for _, val := range strings.Split(list, "|") {
		if val = strings.TrimSpace(val); val != "" {
			values = append(values, val)
		}
	}
	return strings.TrimSpace(label), values
}

// variableValues returns the allowed values of each option definition.
func variableValues(vars []core.Variable) map[string][]string {
	out := make(map[string][]string, len(vars))
	for _, v := range vars {
		_, out[v.Key] = parseVariable(v)
	}
	return out
}

// optionStore answers the core's option queries from the config file's
// values. The Ebiten thread changes options; the emulation goroutine
// reads them.
type optionStore struct {
	mu      sync.Mutex
	labels  map[string]string
	valid   map[string][]string
	values  map[string]string
	updated bool
}

func newOptionStore(values map[string]string) *optionStore {
	s := &optionStore{
		labels: map[string]string{},
		valid:  map[string][]string{},
		values: map[string]string{},
	}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// register records the core's option definitions.
func (s *optionStore) register(vars []core.Variable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vars {
		label, values := parseVariable(v)
		s.labels[v.Key] = label
		s.valid[v.Key] = values
	}
}

// get returns the stored value, or the option's default.
func (s *optionStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v, true
	}
	if values := s.valid[key]; len(values) > 0 {
		return values[0], true
	}
	return "", false
}

// set stores a value for a registered option and flags the change.
func (s *optionStore) set(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.valid[key], value) {
		return false
	}
	s.values[key] = value
	s.updated = true
	return true
}

// cycle advances an option to its next value and returns the label and the
// new value.
func (s *optionStore) cycle(key string) (label, value string) {
	current, _ := s.get(key)

	s.mu.Lock()
	values := s.valid[key]
	label = s.labels[key]
	s.mu.Unlock()
	if len(values) == 0 {
		return label, ""
	}

	next := values[(slices.Index(values, current)+1)%len(values)]
	s.set(key, next)
	return label, next
}

// takeUpdated reports and clears the change flag.
func (s *optionStore) takeUpdated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.updated
	s.updated = false
	return u
}

// snapshot returns the values set so far, for saving.
func (s *optionStore) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
