package render

import (
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/term"
)

// InlineCapable reports whether f is an iTerm2 terminal able to show
// inline images.
func InlineCapable(f *os.File) bool {
	return os.Getenv("TERM_PROGRAM") == "iTerm.app" && term.IsTerminal(int(f.Fd()))
}

// WriteInlineImage writes m as an iTerm2 inline image escape sequence.
func WriteInlineImage(w io.Writer, m image.Image) error {
	if _, err := w.Write([]byte("\x1b]1337;File=inline=1:")); err != nil {
		return err
	}
	enc := base64.NewEncoder(base64.StdEncoding, w)
	if err := png.Encode(enc, m); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\x07\n")); err != nil {
		return err
	}
	return nil
}
