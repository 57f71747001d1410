package mdp

import "iter"

// Settings is an insertion-ordered mapping of MDP option names to values.
// The first Set of a key fixes its position; later Sets overwrite in place.
type Settings struct {
	keys   []string
	values map[string]Value
}

// NewSettings creates an empty mapping
func NewSettings() *Settings {
	return &Settings{
		values: make(map[string]Value),
	}
}

// Set stores value under key
func (s *Settings) Set(key string, value Value) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key
func (s *Settings) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present
func (s *Settings) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in insertion order
func (s *Settings) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of keys
func (s *Settings) Len() int {
	return len(s.keys)
}

// All iterates over key/value pairs in insertion order
func (s *Settings) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// Missing returns the names in required that are absent, in the order given
func (s *Settings) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Clone returns an independent copy
func (s *Settings) Clone() *Settings {
	c := &Settings{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]Value, len(s.values)),
	}
	copy(c.keys, s.keys)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}
