package text

import "unicode/utf8"

// Split cuts s into consecutive segments of at most limit characters.
// Length is counted in runes so multi-byte characters are never broken.
// A non-positive limit falls back to MaxMessageLength.
//
// Input that fits yields exactly one chunk (including the empty string).
// Otherwise every chunk but the last holds exactly limit runes, and
// concatenating the Text fields reproduces s.
func Split(s string, limit int) []Chunk {
	if limit <= 0 {
		limit = MaxMessageLength
	}

	n := utf8.RuneCountInString(s)
	if n <= limit {
		return []Chunk{{Text: s, Index: 1, Total: 1}}
	}

	total := (n + limit - 1) / limit
	chunks := make([]Chunk, 0, total)

	start, count := 0, 0
	for i := range s {
		if count == limit {
			chunks = append(chunks, Chunk{Text: s[start:i], Index: len(chunks) + 1, Total: total})
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, Chunk{Text: s[start:], Index: len(chunks) + 1, Total: total})

	return chunks
}

// Render returns the display form of every chunk of s, in order.
func Render(s string, limit int) []string {
	chunks := Split(s, limit)
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.String()
	}
	return out
}
