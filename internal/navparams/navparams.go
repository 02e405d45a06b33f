// Package navparams holds the key/value navigation state that makes a search
// shareable. The store renders itself as a location string such as
// "search?search=jazz&sort_by_distance=true" and can be rebuilt from one.
package navparams

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// Path is the route prefix of every location this store produces.
const Path = "search"

// Store holds the navigation parameters. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values url.Values
}

// New returns an empty store.
func New() *Store {
	return &Store{values: url.Values{}}
}

// Parse builds a store from a location string. Anything before '?' is
// ignored so both "search?search=x" and "search=x" are accepted. Malformed
// input yields an empty store.
func Parse(location string) *Store {
	s := New()
	location = strings.TrimSpace(location)
	if i := strings.IndexByte(location, '?'); i >= 0 {
		location = location[i+1:]
	} else if !strings.Contains(location, "=") {
		return s
	}
	values, err := url.ParseQuery(location)
	if err != nil {
		return s
	}
	s.values = values
	return s
}

// GetString returns the raw value of key.
func (s *Store) GetString(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.values[key]; !ok {
		return "", false
	}
	return s.values.Get(key), true
}

// GetBool reports absent for values strconv.ParseBool rejects.
func (s *Store) GetBool(key string) (bool, bool) {
	raw, ok := s.GetString(key)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return v, true
}

// SetParameter stores value under key, formatting bools as true or false.
func (s *Store) SetParameter(key string, value any) {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case bool:
		str = strconv.FormatBool(v)
	default:
		str = fmt.Sprint(v)
	}

	s.mu.Lock()
	s.values.Set(key, str)
	s.mu.Unlock()
}

// Location renders the shareable location string.
func (s *Store) Location() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locationLocked()
}

func (s *Store) locationLocked() string {
	if len(s.values) == 0 {
		return Path
	}
	return Path + "?" + s.values.Encode()
}
