// Command framekit renders the frames of a scripted animation timeline and
// optionally assembles them into a video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/ivlev/framekit/internal/config"
	"github.com/ivlev/framekit/internal/director"
	"github.com/ivlev/framekit/internal/engine"
	"github.com/ivlev/framekit/internal/render"
	"github.com/ivlev/framekit/internal/source"
	"github.com/ivlev/framekit/internal/system"
	"github.com/ivlev/framekit/internal/timeline"
	"github.com/ivlev/framekit/internal/video"
)

const (
	scriptsDir = "scripts"
	pdfDir     = "input/pdf"
	outputDir  = "output"
)

func main() {
	cfg, opts, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	system.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	system.InitResourceLimits()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	if opts.init {
		path, err := writeDraft(cfg)
		if err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		fmt.Printf("[+] Draft script: %s\n", path)
		return
	}

	script, err := loadScript(cfg)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}

	tl, err := timeline.New(cfg.TimelineOptions()...)
	if err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	prod, err := director.NewDirector().Build(script, tl)
	if err != nil {
		log.Fatalf("[-] Script error: %v", err)
	}
	defer prod.Close()

	if opts.outline {
		fmt.Println(tl)
		if err := director.WriteOutline(os.Stdout, tl); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		return
	}

	backend := render.NewGGBackend()
	backend.JPEGQuality = cfg.JPEGQuality
	project := engine.NewProject(tl, backend)

	if cfg.Mqtt.URL != "" {
		client, err := connectMQTT(cfg.Mqtt)
		if err != nil {
			log.Fatalf("[-] MQTT error: %v", err)
		}
		defer client.Disconnect(250)
		project.Progress = engine.MultiProgress{project.Progress, engine.NewMQTTProgress(client, cfg.Mqtt.Topic)}
	}

	stats := &statsProgress{}
	if cfg.ShowStats {
		project.Progress = engine.MultiProgress{project.Progress, stats}
	}

	if opts.show >= 0 {
		if err := project.ShowFrame(opts.show); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		return
	}

	fmt.Println("--- [FRAMEKIT] ---")
	fmt.Printf("[*] %v\n", tl)
	fmt.Printf("[*] Resolution: %v @ %g FPS | Workers: %d\n", tl.Resolution(), tl.FrameRate(), tl.Workers())
	fmt.Println("------------------")

	start := time.Now()
	complete := false
	switch {
	case opts.frames != "":
		frames, ferr := parseFrames(opts.frames)
		if ferr != nil {
			log.Fatalf("[-] Error: %v", ferr)
		}
		err = project.RenderFrames(frames)
	case opts.segment >= 0:
		err = project.RenderSegmentAt(opts.segment, cfg.Step)
	default:
		err = project.RenderAll(cfg.Step)
		complete = cfg.Step == 1
	}
	if cfg.ShowStats {
		elapsed := time.Since(start)
		fmt.Printf("[*] Render time: %v, %d frames (%.2f frames/s)\n", elapsed.Round(time.Millisecond),
			stats.frames, float64(stats.frames)/elapsed.Seconds())
	}
	if err != nil {
		log.Fatalf("[-] Render error: %v", err)
	}

	if cfg.OutputVideo == "" {
		return
	}
	if !complete {
		log.Printf("[!] Skipping video: only a full render with -step 1 gives a complete sequence")
		return
	}
	out := videoPath(cfg, script)
	fmt.Println("[*] Assembling video...")
	err = video.NewFFmpegEncoder().Assemble(context.Background(), video.Params{
		Pattern:     tl.FramePattern(),
		StartNumber: tl.FirstFrame(),
		FrameRate:   tl.FrameRate(),
		Output:      out,
		Encoder:     cfg.VideoEncoder,
		Quality:     cfg.Quality,
	})
	if err != nil {
		log.Fatalf("[-] Video error: %v", err)
	}
	fmt.Printf("[+++] Success! Result: %s\n", out)
}

// statsProgress counts rendered frames. Results are delivered on a single
// goroutine.
type statsProgress struct {
	frames int
}

func (s *statsProgress) Begin(engine.Batch) {}

func (s *statsProgress) Finished(r engine.Result) {
	if r.Err == nil {
		s.frames++
	}
}

func (s *statsProgress) End(engine.Batch, int) {}

// loadScript reads the configured script, or the latest one in scripts/,
// or drafts one in memory for the configured input.
func loadScript(cfg *config.Config) (*director.Script, error) {
	path := cfg.ScriptPath
	if path == "" {
		latest, err := system.FindLatestScript(scriptsDir)
		if err == nil {
			path = latest
			fmt.Printf("[*] Script: %s\n", path)
		}
	}
	if path != "" {
		return director.ReadScript(path)
	}

	input, err := resolveInput(cfg)
	if err != nil {
		return nil, fmt.Errorf("no script found in %s/ and no input: %w", scriptsDir, err)
	}
	return draft(input, cfg.PageDuration)
}

func resolveInput(cfg *config.Config) (string, error) {
	if cfg.InputPath != "" {
		return cfg.InputPath, nil
	}
	latest, err := system.FindLatestPDF(pdfDir)
	if err != nil {
		return "", err
	}
	fmt.Printf("[*] Input: %s\n", latest)
	return latest, nil
}

func draft(input string, perPage float64) (*director.Script, error) {
	src, err := source.Open(input)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return director.Draft(input, src.PageCount(), perPage), nil
}

func writeDraft(cfg *config.Config) (string, error) {
	input, err := resolveInput(cfg)
	if err != nil {
		return "", err
	}
	script, err := draft(input, cfg.PageDuration)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(scriptsDir, 0755); err != nil {
		return "", err
	}
	path := director.GenerateScriptPath(scriptsDir)
	return path, director.WriteScript(script, path)
}

func connectMQTT(c config.Mqtt) (mqtt.Client, error) {
	options := mqtt.NewClientOptions().
		AddBroker(c.URL).
		SetClientID(c.ClientID).
		SetUsername(c.Username).
		SetPassword(c.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to %s: timeout", c.URL)
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return client, nil
}

// videoPath names the video after the script's first segment and the
// current time unless a path is configured.
func videoPath(cfg *config.Config, script *director.Script) string {
	if cfg.OutputVideo != "auto" {
		return cfg.OutputVideo
	}
	name := "framekit"
	if len(script.Segments) > 0 && script.Segments[0].Name != "" {
		name = script.Segments[0].Name
	}
	name = strings.ReplaceAll(name, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	os.MkdirAll(outputDir, 0755)
	return filepath.Join(outputDir, fmt.Sprintf("%s_%s.mp4", name, timestamp))
}
