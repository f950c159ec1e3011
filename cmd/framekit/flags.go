package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ivlev/framekit/internal/config"
)

// options are the command line settings that do not live in config.Config.
type options struct {
	configPath string
	init       bool
	outline    bool
	frames     string
	segment    int
	show       int
	verbose    bool
}

// newFlagSet binds the command line to cfg so that flags given on the
// command line override values loaded from a config file.
func newFlagSet(cfg *config.Config, opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("framekit", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.BoolVar(&opts.init, "init", false, "Write a draft script for -input into scripts/ and exit")
	fs.BoolVar(&opts.outline, "outline", false, "Print the segment outline and exit")
	fs.StringVar(&opts.frames, "frames", "", "Frames to render, e.g. 0,5,10-20")
	fs.IntVar(&opts.segment, "segment", -1, "Render only the segment with this index")
	fs.IntVar(&opts.show, "show", -1, "Display this frame instead of rendering")
	fs.BoolVar(&opts.verbose, "v", false, "Debug logging")

	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "Script path (default: latest script in scripts/)")
	fs.StringVar(&cfg.InputPath, "input", cfg.InputPath, "PDF or image directory for -init (default: latest PDF in input/pdf/)")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Frame output directory (default: a new temp directory)")
	fs.StringVar(&cfg.ImageFormat, "format", cfg.ImageFormat, "Image format: .png or .jpg")
	fs.StringVar(&cfg.FrameName, "name", cfg.FrameName, "Frame file name prefix")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Frame width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Frame height")
	fs.Float64Var(&cfg.FPS, "fps", cfg.FPS, "Frame rate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Render workers (default: logical CPUs)")
	fs.BoolVar(&cfg.HighQuality, "hq", cfg.HighQuality, "Supersampled high quality rendering")
	fs.IntVar(&cfg.Step, "step", cfg.Step, "Render every n-th frame")
	fs.Float64Var(&cfg.PageDuration, "page-duration", cfg.PageDuration, "Seconds per page in draft scripts")
	fs.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "JPEG quality")
	fs.StringVar(&cfg.OutputVideo, "video", cfg.OutputVideo, "Assemble the frames into this video; \"auto\" names it in output/")
	fs.StringVar(&cfg.VideoEncoder, "encoder", cfg.VideoEncoder, "ffmpeg video encoder or auto")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "Video quality (encoder specific)")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print timing statistics")
	fs.StringVar(&cfg.Mqtt.URL, "mqtt", cfg.Mqtt.URL, "MQTT broker URL for progress events")
	fs.StringVar(&cfg.Mqtt.Topic, "topic", cfg.Mqtt.Topic, "MQTT progress topic")
	return fs
}

// parseArgs parses args once to find -config, loads it, then parses again
// over the loaded values.
func parseArgs(args []string, output io.Writer) (*config.Config, *options, error) {
	cfg := config.Default()
	opts := &options{}
	if err := newFlagSet(cfg, opts, output).Parse(args); err != nil {
		return nil, nil, err
	}
	if opts.configPath == "" {
		return cfg, opts, nil
	}

	loaded, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	opts = &options{}
	if err := newFlagSet(loaded, opts, output).Parse(args); err != nil {
		return nil, nil, err
	}
	return loaded, opts, nil
}

// parseFrames parses a comma separated list of frame numbers and inclusive
// ranges.
func parseFrames(s string) ([]int, error) {
	var frames []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("bad frame %q", part)
		}
		if !isRange {
			frames = append(frames, first)
			continue
		}
		last, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || last < first {
			return nil, fmt.Errorf("bad frame range %q", part)
		}
		for n := first; n <= last; n++ {
			frames = append(frames, n)
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames in %q", s)
	}
	return frames, nil
}
