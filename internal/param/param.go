// Package param holds the request-parameter set that every API call
// assembles before transport. Keys are case-sensitive and unique; insertion
// order is preserved so that the encoded form is stable.
package param

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Set is an ordered collection of request parameters. Values are usually
// strings; the job endpoint carries nested structures (slices and maps)
// which survive only through the JSON encoding.
type Set struct {
	keys   []string
	values map[string]any
}

// New returns an empty parameter set.
func New() *Set {
	return &Set{values: make(map[string]any)}
}

// Add sets key to value, replacing any previous value without disturbing
// the key's original position.
func (s *Set) Add(key, value string) {
	s.set(key, value)
}

// AddAny sets key to a non-string value (nested job specifications).
func (s *Set) AddAny(key string, value any) {
	s.set(key, value)
}

func (s *Set) set(key string, value any) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the string form of the value stored under key, or "" when the
// key is absent.
func (s *Set) Get(key string) string {
	v, ok := s.values[key]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Has reports whether key is present.
func (s *Set) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.keys) }

// Keys returns the parameter names in insertion order. The returned slice
// is a copy.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// AddCommon appends the api_key/format/version triple carried by every
// request. The values come from configuration, never from the caller.
func (s *Set) AddCommon(apiKey, version, format string) {
	s.Add("api_key", apiKey)
	s.Add("format", format)
	s.Add("version", version)
}

// Encode produces the application/x-www-form-urlencoded form of the set in
// insertion order, with each key and value percent-encoded individually.
func (s *Set) Encode() string {
	var b strings.Builder
	for i, k := range s.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(Stringify(s.values[k])))
	}
	return b.String()
}

// MarshalJSON serializes the set as a JSON object. Nested values (job
// inputs/outputs) stay structured rather than being flattened.
func (s *Set) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(s.keys))
	for k, v := range s.values {
		obj[k] = v
	}
	return json.Marshal(obj)
}

// Stringify returns the canonical string form of a parameter value: strings
// pass through, anything else is its compact JSON encoding. Signing and URL
// encoding both rely on this being deterministic.
func Stringify(v any) string {
	if str, ok := v.(string); ok {
		return str
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
