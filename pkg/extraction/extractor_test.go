package extraction

import (
	"context"
	"errors"
	"testing"
)

func TestRegistryExtractPlainText(t *testing.T) {
	r := NewRegistry()

	text, err := r.Extract(context.Background(), "notas.txt", []byte("hola mundo"))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if text != "hola mundo" {
		t.Errorf("text = %q", text)
	}
}

func TestRegistryUnsupportedFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Extract(context.Background(), "video.mp4", []byte{0x00})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRegistrySupported(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		file string
		want bool
	}{
		{"silabo.pdf", true},
		{"SILABO.PDF", true},
		{"notas.txt", true},
		{"readme.md", true},
		{"main.py", true},
		{"foto.jpg", false},
		{"sin_extension", false},
	}
	for _, tt := range tests {
		if got := r.Supported(tt.file); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.file, got, tt.want)
		}
	}
}

func TestPlainTextStripsBOM(t *testing.T) {
	e := &PlainTextExtractor{}
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("contenido")...)

	text, err := e.Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if text != "contenido" {
		t.Errorf("text = %q", text)
	}
}

func TestPlainTextLatin1Fallback(t *testing.T) {
	e := &PlainTextExtractor{}
	// "año" encoded as Latin-1: 0xF1 is invalid UTF-8 on its own.
	data := []byte{'a', 0xF1, 'o'}

	text, err := e.Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if text != "año" {
		t.Errorf("text = %q, want %q", text, "año")
	}
}
