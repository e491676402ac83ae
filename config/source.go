package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/kbukum/feignkit/errors"
)

// Source is a read-only view over resolved configuration keys.
//
// Getters are strict: a key that is present but cannot be converted to the
// requested type is reported as an INVALID_CONFIG error instead of being
// coerced to the zero value. Absent keys yield the supplied default.
type Source struct {
	v *viper.Viper
}

// NewSource creates a Source from a map of dotted keys to values.
func NewSource(values map[string]any) *Source {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return &Source{v: v}
}

// FromPairs creates a Source from "key=value" property strings.
func FromPairs(pairs ...string) (*Source, error) {
	values := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.InvalidConfig(pair, fmt.Errorf("expected key=value"))
		}
		values[key] = strings.TrimSpace(value)
	}
	return NewSource(values), nil
}

// Has reports whether key is set.
func (s *Source) Has(key string) bool {
	return s.v.IsSet(key)
}

// String returns the value at key as a string.
func (s *Source) String(key, def string) (string, error) {
	if !s.v.IsSet(key) {
		return def, nil
	}
	out, err := cast.ToStringE(s.v.Get(key))
	if err != nil {
		return def, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// Bool returns the value at key as a bool. Only the forms accepted by
// strconv.ParseBool are valid for string values.
func (s *Source) Bool(key string, def bool) (bool, error) {
	if !s.v.IsSet(key) {
		return def, nil
	}
	raw := s.v.Get(key)
	if str, ok := raw.(string); ok {
		str = strings.TrimSpace(str)
		if str == "" {
			return def, errors.InvalidConfig(key, fmt.Errorf("empty boolean"))
		}
		out, err := strconv.ParseBool(str)
		if err != nil {
			return def, errors.InvalidConfig(key, err)
		}
		return out, nil
	}
	out, err := cast.ToBoolE(raw)
	if err != nil {
		return def, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// Int returns the value at key as an int.
func (s *Source) Int(key string, def int) (int, error) {
	if !s.v.IsSet(key) {
		return def, nil
	}
	raw := s.v.Get(key)
	if str, ok := raw.(string); ok {
		raw = strings.TrimSpace(str)
	}
	out, err := cast.ToIntE(raw)
	if err != nil {
		return def, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// Duration returns the value at key as a time.Duration ("30s", "1m").
func (s *Source) Duration(key string, def time.Duration) (time.Duration, error) {
	if !s.v.IsSet(key) {
		return def, nil
	}
	out, err := cast.ToDurationE(s.v.Get(key))
	if err != nil {
		return def, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// StringSlice returns the value at key as a slice. A string value is split
// on commas and each element trimmed.
func (s *Source) StringSlice(key string, def []string) ([]string, error) {
	if !s.v.IsSet(key) {
		return def, nil
	}
	raw := s.v.Get(key)
	if str, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(str, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	out, err := cast.ToStringSliceE(raw)
	if err != nil {
		return def, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// StringMap returns the value at key as a map of strings.
func (s *Source) StringMap(key string) (map[string]string, error) {
	if !s.v.IsSet(key) {
		return map[string]string{}, nil
	}
	out, err := cast.ToStringMapStringE(s.v.Get(key))
	if err != nil {
		return nil, errors.InvalidConfig(key, err)
	}
	return out, nil
}

// Children returns the sorted names of the keys nested directly under key.
func (s *Source) Children(key string) []string {
	m := s.v.GetStringMap(key)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unmarshal decodes the subtree at key into out using mapstructure tags.
func (s *Source) Unmarshal(key string, out any) error {
	if err := s.v.UnmarshalKey(key, out); err != nil {
		return errors.InvalidConfig(key, err)
	}
	return nil
}
