package content

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/framekit/internal/timeline"
)

var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Slate draws a title card with the parameter shown as a timecode and a QR
// code carrying the same label, so a rendered frame can be traced back to
// its segment and time.
type Slate struct {
	Title      string
	Background colorful.Color
	Foreground colorful.Color
	// QR disables the code when false.
	QR bool
}

// NewSlate reads the options title, background, foreground and qr.
func NewSlate(opts Options) (*Slate, error) {
	bg, err := colorful.Hex(opts.String("background", "#202020"))
	if err != nil {
		return nil, fmt.Errorf("slate background: %w", err)
	}
	fg, err := colorful.Hex(opts.String("foreground", "#f0f0f0"))
	if err != nil {
		return nil, fmt.Errorf("slate foreground: %w", err)
	}
	return &Slate{
		Title:      opts.String("title", "framekit"),
		Background: bg,
		Foreground: fg,
		QR:         opts.String("qr", "true") != "false",
	}, nil
}

// Label is the text drawn for parameter t.
func (s *Slate) Label(t float64) string {
	return fmt.Sprintf("%s %s", s.Title, timeline.FormatFrameTime(t))
}

func (s *Slate) Frame(t float64) (timeline.Content, error) {
	label := s.Label(t)
	return &Drawing{
		Draw: func(dc *gg.Context, _ *timeline.Settings) error {
			return s.draw(dc, label)
		},
	}, nil
}

func (s *Slate) draw(dc *gg.Context, label string) error {
	w, h := float64(dc.Width()), float64(dc.Height())

	dc.SetColor(s.Background)
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return err
	}

	src, err := fontSource()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	dc.SetFont(src.Face(h / 10))
	dc.SetColor(s.Foreground)

	textX := w / 2
	if s.QR {
		side := int(h * 0.6)
		q, err := qrcode.New(label, qrcode.Medium)
		if err != nil {
			return fmt.Errorf("qr code: %w", err)
		}
		q.BackgroundColor = color.White
		q.ForegroundColor = color.Black
		dc.DrawImage(gg.ImageBufFromImage(q.Image(side)), w*0.05, (h-float64(side))/2)
		textX = w*0.05 + float64(side) + (w*0.95-float64(side))/2
	}
	dc.DrawStringAnchored(label, textX, h/2, 0.5, 0.5)
	return nil
}
