// Package text splits generated responses into segments that fit within
// Discord's message size limit.
package text

import "fmt"

// MaxMessageLength is the largest segment, in characters, sent as a single
// Discord message. Discord's hard ceiling is 2000; the margin leaves room
// for the part label.
const MaxMessageLength = 1900

// Chunk is one ordered segment of a response.
type Chunk struct {
	Text  string // Segment payload, without any label.
	Index int    // 1-based position among Total.
	Total int    // Number of chunks the response was split into.
}

// String returns the display form of the chunk: the bare payload for a
// single-chunk response, otherwise the payload followed by a "(Part i/n)"
// label on its own line.
func (c Chunk) String() string {
	if c.Total <= 1 {
		return c.Text
	}
	return fmt.Sprintf("%s\n(Part %d/%d)", c.Text, c.Index, c.Total)
}
