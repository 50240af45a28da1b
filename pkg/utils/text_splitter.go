package utils

import "unicode"

// SplitText slices a long string into chunks of approximately chunkSize
// characters with an overlap that preserves context across boundaries.
// Character-based on purpose: course material mixes Spanish and Quechua and
// a tokenizer tuned for either would misbehave on the other.
func SplitText(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		// Pull the cut back to the nearest space when one is close, so
		// words are not split in half. Never drops data: the overlap of
		// the next chunk covers the withheld tail.
		cut := end
		if end < len(runes) {
			for j := end; j > end-overlap/2 && j > i; j-- {
				if unicode.IsSpace(runes[j-1]) {
					cut = j
					break
				}
			}
		}

		chunks = append(chunks, string(runes[i:cut]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
