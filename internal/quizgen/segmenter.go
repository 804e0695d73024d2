package quizgen

import (
	"errors"
	"regexp"
	"strings"
)

// Segmentation thresholds. Fragments below these lengths cannot anchor
// a question and are discarded.
const (
	MinTextLength     = 100
	minSentenceLength = 20
	minParagraphLen   = 50
)

// ErrInputTooShort is returned when the trimmed study text is below
// MinTextLength characters.
var ErrInputTooShort = errors.New("study text is too short to segment")

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

// Segments holds the sentence and paragraph units extracted from a
// study document.
type Segments struct {
	Sentences  []string
	Paragraphs []string
}

// Segment splits raw study text into sentences (delimited by '.', '!'
// or '?') and paragraphs (delimited by blank lines). It is pure and
// deterministic for identical input.
func Segment(text string) (*Segments, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinTextLength {
		return nil, ErrInputTooShort
	}

	var sentences []string
	for _, part := range strings.FieldsFunc(trimmed, isSentenceEnd) {
		s := strings.TrimSpace(part)
		if len(s) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}

	var paragraphs []string
	for _, part := range paragraphBreak.Split(trimmed, -1) {
		p := strings.TrimSpace(part)
		if len(p) > minParagraphLen {
			paragraphs = append(paragraphs, p)
		}
	}

	return &Segments{Sentences: sentences, Paragraphs: paragraphs}, nil
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
