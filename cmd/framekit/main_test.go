package main

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ivlev/framekit/internal/director"
)

func TestParseFrames(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"5", []int{5}, false},
		{"0,5,7", []int{0, 5, 7}, false},
		{"10-13", []int{10, 11, 12, 13}, false},
		{" 1 , 3-4 ", []int{1, 3, 4}, false},
		{"", nil, true},
		{"a", nil, true},
		{"5-3", nil, true},
		{"1-x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseFrames(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFrames(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFrames(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, opts, err := parseArgs([]string{"-fps", "24", "-segment", "2", "-hq"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.FPS != 24 || !cfg.HighQuality {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if opts.segment != 2 || opts.show != -1 {
		t.Errorf("options = %+v", opts)
	}
	if cfg.Width != 544 || cfg.Height != 306 {
		t.Errorf("default resolution = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestParseArgsConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framekit.yaml")
	data := "fps: 25\nwidth: 640\nheight: 360\nstep: 2\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := parseArgs([]string{"-config", path, "-step", "3"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.FPS != 25 || cfg.Width != 640 || cfg.Height != 360 {
		t.Errorf("config file values lost: %+v", cfg)
	}
	if cfg.Step != 3 {
		t.Errorf("flag should override file: step = %d", cfg.Step)
	}
}

func TestVideoPath(t *testing.T) {
	cfg, _, err := parseArgs([]string{"-video", "out.mp4"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	script := &director.Script{Segments: []director.SegmentSpec{{Name: "My Intro"}}}
	if got := videoPath(cfg, script); got != "out.mp4" {
		t.Errorf("videoPath = %q", got)
	}
}
