package extraction

import (
	"bytes"
	"context"
	"unicode/utf8"
)

// PlainTextExtractor reads text files. Course material predates UTF-8
// discipline, so invalid byte sequences are reinterpreted as Latin-1 rather
// than rejected.
type PlainTextExtractor struct{}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (e *PlainTextExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
