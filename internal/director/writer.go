package director

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/framekit/internal/timeline"
)

// WriteScript writes a script to a YAML file.
func WriteScript(script *Script, path string) error {
	data, err := yaml.Marshal(script)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a script from a YAML file.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if script.Version == "" {
		script.Version = ScriptVersion
	}
	return &script, nil
}

type outline struct {
	Segments  int                    `yaml:"segments"`
	Frames    int                    `yaml:"frames"`
	FrameRate float64                `yaml:"frame_rate"`
	Duration  string                 `yaml:"duration"`
	OutDir    string                 `yaml:"out_dir"`
	Items     []timeline.SegmentInfo `yaml:"outline"`
}

// WriteOutline writes the segment boundaries of tl as YAML.
func WriteOutline(w io.Writer, tl *timeline.Timeline) error {
	o := outline{
		Segments:  tl.NumSegments(),
		Frames:    tl.NumFrames(),
		FrameRate: tl.FrameRate(),
		Duration:  timeline.FormatFrameTime(tl.Duration().Seconds()),
		OutDir:    tl.OutDir(),
		Items:     tl.Outline(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return err
	}
	return enc.Close()
}
