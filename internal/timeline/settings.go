package timeline

import (
	"fmt"
	"strings"
)

// Built-in setting keys.
const (
	KeyOutDir      = "out_dir"
	KeyImageFormat = "image_format"
	KeyFrameName   = "frame_name"
	KeyResolution  = "resolution"
	KeyFileName    = "file_name"
)

// Resolution is a pixel size.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses "WxH".
func ParseResolution(s string) (Resolution, error) {
	var r Resolution
	if _, err := fmt.Sscanf(strings.ToLower(strings.TrimSpace(s)), "%dx%d", &r.Width, &r.Height); err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return Resolution{}, fmt.Errorf("invalid resolution %q", s)
	}
	return r, nil
}

// Settings is an ordered mapping of named render options. Keys keep the
// position of their first insertion; later writes replace the value.
type Settings struct {
	keys   []string
	values map[string]any
}

func NewSettings() *Settings {
	return &Settings{values: make(map[string]any)}
}

// SettingsOf builds Settings from alternating key, value pairs.
func SettingsOf(kv ...any) *Settings {
	s := NewSettings()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		s.Set(key, kv[i+1])
	}
	return s
}

func (s *Settings) Set(key string, v any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

func (s *Settings) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

func (s *Settings) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (s *Settings) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

func (s *Settings) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Update copies every entry of other into s, overriding existing values.
func (s *Settings) Update(other *Settings) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		s.Set(k, other.values[k])
	}
}

func (s *Settings) Clone() *Settings {
	c := NewSettings()
	c.Update(s)
	return c
}

// String returns the value for key formatted as a string, or "" when unset.
func (s *Settings) String(key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Resolution returns the value for key as a Resolution. Two-element int
// slices and arrays and "WxH" strings are accepted.
func (s *Settings) Resolution(key string) (Resolution, bool) {
	v, ok := s.Get(key)
	if !ok {
		return Resolution{}, false
	}
	switch r := v.(type) {
	case Resolution:
		return r, true
	case [2]int:
		return Resolution{Width: r[0], Height: r[1]}, true
	case []int:
		if len(r) == 2 {
			return Resolution{Width: r[0], Height: r[1]}, true
		}
	case string:
		res, err := ParseResolution(r)
		if err == nil {
			return res, true
		}
	}
	return Resolution{}, false
}
