package utils

import (
	"strings"
	"testing"
)

func TestSplitTextEmpty(t *testing.T) {
	if chunks := SplitText("", 100, 10); chunks != nil {
		t.Errorf("SplitText(\"\") = %v, want nil", chunks)
	}
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("hola mundo", 100, 10)
	if len(chunks) != 1 || chunks[0] != "hola mundo" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("palabra ", 500)
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Errorf("chunk %d has %d runes, max 100", i, len([]rune(c)))
		}
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	// Chunk starts advance by chunkSize-overlap, so the first chunk is a
	// prefix of the text and the last one reaches its end.
	text := strings.Repeat("abcdefghij", 30)
	chunks := SplitText(text, 50, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(text, chunks[0]) {
		t.Errorf("first chunk %q is not a prefix of the input", chunks[0])
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk %q is not a suffix of the input", last)
	}
}

func TestSplitTextMultibyteSafe(t *testing.T) {
	text := strings.Repeat("ñandú cóndor ", 100)
	chunks := SplitText(text, 60, 12)

	for i, c := range chunks {
		if strings.Contains(c, "�") {
			t.Errorf("chunk %d contains a broken rune", i)
		}
	}
}
