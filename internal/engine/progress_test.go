package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type countingProgress struct {
	begins, finished, ends int
}

func (c *countingProgress) Begin(Batch)     { c.begins++ }
func (c *countingProgress) Finished(Result) { c.finished++ }
func (c *countingProgress) End(Batch, int)  { c.ends++ }

func TestLogProgressLines(t *testing.T) {
	var out bytes.Buffer
	p := NewLogProgress(&out)
	b := Batch{First: 30, Last: 44, Count: 15, OutDir: "/tmp/out/"}

	p.Begin(b)
	p.Finished(Result{Index: 31, Segment: "B"})
	p.Finished(Result{Index: 32, Segment: "B", Err: errors.New("disk full")})
	p.End(b, 1)

	want := strings.Join([]string{
		"[*] Rendering 15 frames 30 -- 44",
		"[*] Saving to /tmp/out/",
		"[>] Finished frame 31 (B) 1/15",
		"[!] frame 32 (B): disk full",
		"[!] 1 of 15 frames failed. Frames in /tmp/out/",
		"",
	}, "\n")
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestMultiProgress(t *testing.T) {
	a, b := &countingProgress{}, &countingProgress{}
	m := MultiProgress{a, b}
	m.Begin(Batch{})
	m.Finished(Result{})
	m.Finished(Result{})
	m.End(Batch{}, 0)
	for _, c := range []*countingProgress{a, b} {
		if c.begins != 1 || c.finished != 2 || c.ends != 1 {
			t.Errorf("counts = %+v", c)
		}
	}
}
