package timeline

import (
	"reflect"
	"testing"
)

func TestSettingsOrder(t *testing.T) {
	s := SettingsOf("b", 1, "a", 2)
	s.Set("c", 3)
	s.Set("b", 4)

	if got := s.Keys(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Keys = %v", got)
	}
	if v, _ := s.Get("b"); v != 4 {
		t.Errorf("b = %v, want 4", v)
	}

	s.Delete("a")
	if got := s.Keys(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Keys after delete = %v", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestSettingsUpdateLaterWins(t *testing.T) {
	s := SettingsOf("x", "content", "y", "content")
	s.Update(SettingsOf("y", "timeline", "z", "timeline"))

	want := map[string]string{"x": "content", "y": "timeline", "z": "timeline"}
	for k, v := range want {
		if got := s.String(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("Keys = %v", got)
	}
}

func TestSettingsCloneIndependent(t *testing.T) {
	s := SettingsOf("k", "v")
	c := s.Clone()
	c.Set("k", "changed")
	if s.String("k") != "v" {
		t.Errorf("clone shares storage")
	}

	var nilSettings *Settings
	if nilSettings.Clone().Len() != 0 {
		t.Error("clone of nil settings should be empty")
	}
	if _, ok := nilSettings.Get("k"); ok {
		t.Error("nil settings has a key")
	}
}

func TestSettingsResolution(t *testing.T) {
	tests := []struct {
		value any
		want  Resolution
		ok    bool
	}{
		{Resolution{640, 480}, Resolution{640, 480}, true},
		{[2]int{320, 200}, Resolution{320, 200}, true},
		{[]int{100, 50}, Resolution{100, 50}, true},
		{"1280x720", Resolution{1280, 720}, true},
		{[]int{1}, Resolution{}, false},
		{"wide", Resolution{}, false},
		{3.5, Resolution{}, false},
	}
	for _, tt := range tests {
		s := SettingsOf(KeyResolution, tt.value)
		got, ok := s.Resolution(KeyResolution)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Resolution(%v) = %v, %v; want %v, %v", tt.value, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseResolution(t *testing.T) {
	if r, err := ParseResolution("544x306"); err != nil || r != (Resolution{544, 306}) {
		t.Errorf("ParseResolution = %v, %v", r, err)
	}
	if r := (Resolution{544, 306}); r.String() != "544x306" {
		t.Errorf("String = %q", r.String())
	}
	for _, bad := range []string{"", "544", "ax306", "0x10", "-5x3"} {
		if _, err := ParseResolution(bad); err == nil {
			t.Errorf("ParseResolution(%q) should fail", bad)
		}
	}
}
