// Package render defines the rendering backend contract and a software
// backend drawing with gogpu/gg.
package render

import (
	"errors"

	"github.com/gogpu/gg"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Scene is a drawable frame.
type Scene interface {
	Draw(dc *gg.Context) error
}

// SceneFunc adapts a function to Scene.
type SceneFunc func(dc *gg.Context) error

func (f SceneFunc) Draw(dc *gg.Context) error { return f(dc) }

// Target tells a backend where and how to persist a scene.
type Target struct {
	Path   string
	Width  int
	Height int
	// Format is the file extension with its leading dot, e.g. ".png".
	// When empty the extension of Path is used.
	Format      string
	HighQuality bool
}

// Backend turns scenes into images.
type Backend interface {
	Save(scene Scene, t Target) error
	Show(scene Scene, t Target) error
}
