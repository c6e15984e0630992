package utils

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// DefaultChunkSize is the maximum chunk length in characters.
const DefaultChunkSize = 1000

// separators are tried in order: paragraphs, lines, sentence ends, words.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

// ChunkText splits text on paragraph and line breaks first, then at sentence
// ends, then on words, keeping each chunk at or below chunkSize characters.
// Sentence punctuation stays with its sentence. Short text comes back as a
// single chunk.
func ChunkText(text string, chunkSize int) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if len(text) <= chunkSize {
		return []string{text}, nil
	}

	// one character is reserved for punctuation moved back from the next chunk
	splitSize := chunkSize - 1
	if splitSize < 1 {
		splitSize = 1
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(splitSize),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators(separators),
		textsplitter.WithKeepSeparator(true),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		// kept separators lead the following split, so a chunk may open with
		// the previous sentence's ". "
		if len(out) > 0 && startsWithSentenceEnd(c) {
			out[len(out)-1] += c[:1]
			c = c[1:]
		}
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func startsWithSentenceEnd(s string) bool {
	return len(s) > 1 && strings.ContainsRune(".!?", rune(s[0])) && s[1] == ' '
}
