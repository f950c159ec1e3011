package source

import (
	"image"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Source is an ordered set of pages that can be rasterized.
type Source interface {
	PageCount() int
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open returns a PDF source for .pdf paths and an image source otherwise.
func Open(path string) (Source, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}

type FitzPDFSource struct {
	mu   sync.Mutex
	doc  *fitz.Document
	path string
}

func NewFitzPDFSource(path string) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path}, nil
}

func (f *FitzPDFSource) PageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.NumPage()
}

// RenderPage opens its own document handle so render workers can rasterize
// pages concurrently.
func (f *FitzPDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (f *FitzPDFSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Close()
}
