package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/ivlev/framekit/internal/system"
)

// Batch describes a render batch for progress reporting.
type Batch struct {
	Label  string `json:"label"`
	First  int    `json:"first"`
	Last   int    `json:"last"`
	Count  int    `json:"count"`
	OutDir string `json:"out_dir"`
}

// Progress observes a render batch. Finished is called from a single
// goroutine in completion order.
type Progress interface {
	Begin(b Batch)
	Finished(r Result)
	End(b Batch, failed int)
}

// LogProgress prints human readable progress lines.
type LogProgress struct {
	W io.Writer

	mu   sync.Mutex
	done int
	of   int
}

func NewLogProgress(w io.Writer) *LogProgress {
	return &LogProgress{W: w}
}

func (p *LogProgress) Begin(b Batch) {
	p.mu.Lock()
	p.done, p.of = 0, b.Count
	p.mu.Unlock()

	if b.Label != "" {
		fmt.Fprintf(p.W, "[*] Rendering %s: %d frames %d -- %d\n", b.Label, b.Count, b.First, b.Last)
	} else {
		fmt.Fprintf(p.W, "[*] Rendering %d frames %d -- %d\n", b.Count, b.First, b.Last)
	}
	fmt.Fprintf(p.W, "[*] Saving to %s\n", b.OutDir)
	system.Logger().Info("render batch started", "label", b.Label, "first", b.First, "last", b.Last, "count", b.Count)
}

func (p *LogProgress) Finished(r Result) {
	p.mu.Lock()
	p.done++
	done, of := p.done, p.of
	p.mu.Unlock()

	if r.Err != nil {
		fmt.Fprintf(p.W, "[!] %s: %v\n", r, r.Err)
		return
	}
	fmt.Fprintf(p.W, "[>] Finished %s %d/%d\n", r, done, of)
	system.Logger().Debug("frame saved", "frame", r.Index, "path", r.FileName, "elapsed", r.Elapsed)
}

func (p *LogProgress) End(b Batch, failed int) {
	if failed > 0 {
		fmt.Fprintf(p.W, "[!] %d of %d frames failed. Frames in %s\n", failed, b.Count, b.OutDir)
	} else {
		fmt.Fprintf(p.W, "[+] Finished! %d frames in %s\n", b.Count, b.OutDir)
	}
	system.Logger().Info("render batch finished", "count", b.Count, "failed", failed)
}

// MultiProgress fans every event out to several observers.
type MultiProgress []Progress

func (m MultiProgress) Begin(b Batch) {
	for _, p := range m {
		p.Begin(b)
	}
}

func (m MultiProgress) Finished(r Result) {
	for _, p := range m {
		p.Finished(r)
	}
}

func (m MultiProgress) End(b Batch, failed int) {
	for _, p := range m {
		p.End(b, failed)
	}
}

type nopProgress struct{}

func (nopProgress) Begin(Batch)     {}
func (nopProgress) Finished(Result) {}
func (nopProgress) End(Batch, int)  {}
