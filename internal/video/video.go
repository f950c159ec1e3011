// Package video assembles a rendered frame sequence into a video file with
// ffmpeg.
package video

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/ivlev/framekit/internal/system"
)

// Params describes an image sequence and the video to encode it into.
type Params struct {
	// Pattern is the printf-style frame file pattern, e.g.
	// "/tmp/out/frame%05d.png".
	Pattern     string
	StartNumber int
	FrameRate   float64
	Output      string
	// Encoder is an ffmpeg video encoder name. Empty or "auto" picks the
	// best available H.264 encoder.
	Encoder string
	Quality int
}

// Runner runs ffmpeg with the given arguments.
type Runner func(ctx context.Context, args []string) ([]byte, error)

func runFFmpeg(ctx context.Context, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, "ffmpeg", args...).CombinedOutput()
}

type FFmpegEncoder struct {
	Run Runner
}

func NewFFmpegEncoder() *FFmpegEncoder {
	return &FFmpegEncoder{Run: runFFmpeg}
}

// Assemble encodes the image sequence described by p.
func (e *FFmpegEncoder) Assemble(ctx context.Context, p Params) error {
	if p.Pattern == "" || p.Output == "" {
		return fmt.Errorf("video: pattern and output are required")
	}
	if p.FrameRate <= 0 {
		return fmt.Errorf("video: frame rate must be positive, got %g", p.FrameRate)
	}
	if p.Encoder == "" || p.Encoder == "auto" {
		p.Encoder = system.GetBestH264Encoder()
	}

	args := BuildArgs(p)
	system.Logger().Debug("ffmpeg", "args", args)

	run := e.Run
	if run == nil {
		run = runFFmpeg
	}
	if out, err := run(ctx, args); err != nil {
		return fmt.Errorf("ffmpeg error: %v, output: %s", err, string(out))
	}
	return nil
}

// BuildArgs returns the ffmpeg arguments for p. p.Encoder must be set.
func BuildArgs(p Params) []string {
	rate := strconv.FormatFloat(p.FrameRate, 'f', -1, 64)
	args := []string{
		"-y",
		"-framerate", rate,
		"-start_number", strconv.Itoa(p.StartNumber),
		"-i", p.Pattern,
		"-c:v", p.Encoder,
		"-pix_fmt", "yuv420p",
		// yuv420p needs even dimensions.
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
	}
	args = append(args, QualityArgs(p.Encoder, p.Quality)...)
	return append(args, p.Output)
}

// QualityArgs maps a 1-100 quality to the rate control flags of encoder.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// 75 -> 7.5 Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default: // libx264
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}
