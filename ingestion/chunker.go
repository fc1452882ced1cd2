package ingestion

import (
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the exact overlap between consecutive chunks.
	DefaultChunkOverlap = 200
)

// Chunker splits raw text into overlapping fixed-size segments.
//
// Consecutive chunks overlap by exactly Overlap characters, chunk length
// never exceeds Size, and original text order is preserved. Removing the
// leading Overlap characters of every chunk but the first reassembles the
// original text.
type Chunker struct {
	Size    int
	Overlap int
}

var _ textsplitter.TextSplitter = Chunker{}

// NewChunker creates a Chunker with the given size and overlap.
// Returns an error unless 0 <= overlap < size.
func NewChunker(size, overlap int) (Chunker, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return Chunker{}, ErrInvalidChunking
	}
	return Chunker{Size: size, Overlap: overlap}, nil
}

// DefaultChunker returns a Chunker with the default size and overlap.
func DefaultChunker() Chunker {
	return Chunker{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// SplitText splits text into chunks. Empty text yields an empty slice,
// not an error.
func (c Chunker) SplitText(text string) ([]string, error) {
	if c.Size <= 0 || c.Overlap < 0 || c.Overlap >= c.Size {
		return nil, ErrInvalidChunking
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	step := c.Size - c.Overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
