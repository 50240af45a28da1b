// Package extraction converts uploaded course files into plain text for
// chunking. Extractors are selected by file extension.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor pulls plain text out of one file format.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

type Registry struct {
	byExtension map[string]Extractor
}

// NewRegistry wires the default extractors. Source-code extensions reuse the
// plain text extractor since lecture repos often ship example code.
func NewRegistry() *Registry {
	r := &Registry{byExtension: make(map[string]Extractor)}

	plain := &PlainTextExtractor{}
	for _, ext := range []string{".txt", ".md", ".py", ".java", ".cpp", ".c", ".js", ".html", ".css"} {
		r.Register(ext, plain)
	}
	r.Register(".pdf", &PDFExtractor{})
	return r
}

func (r *Registry) Register(ext string, e Extractor) {
	r.byExtension[strings.ToLower(ext)] = e
}

// Extract dispatches on the file name's extension.
func (r *Registry) Extract(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	extractor, ok := r.byExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return extractor.Extract(ctx, data)
}

// Supported reports whether a file name maps to a known extractor.
func (r *Registry) Supported(fileName string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(fileName))]
	return ok
}
