package quizgen

// Tables holds the static vocabulary used by the distractor synthesizer
// and the true/false generator. They are passed in rather than read from
// package globals so tests can substitute fixtures.
type Tables struct {
	// Fillers are generic domain-neutral nouns used as easy-difficulty
	// distractors. Obviously-wrong options are acceptable at that level.
	Fillers []string
	// Prefixes and Suffixes are affixes attached to the correct term to
	// synthesize lexically similar distractors at higher difficulty.
	Prefixes []string
	Suffixes []string
	// Opposites maps a token to its polarity flip for negating
	// true/false statements.
	Opposites map[string]string
}

// DefaultTables returns the production vocabulary.
func DefaultTables() Tables {
	return Tables{
		Fillers: []string{
			"process", "concept", "system", "method", "structure",
			"function", "element", "factor", "theory", "principle",
		},
		Prefixes: []string{"pre", "anti", "non", "re", "de"},
		Suffixes: []string{"tion", "ment", "ism", "ity", "ance"},
		Opposites: map[string]string{
			"is":        "is not",
			"are":       "are not",
			"was":       "was not",
			"were":      "were not",
			"can":       "cannot",
			"will":      "will not",
			"has":       "lacks",
			"have":      "lack",
			"increase":  "decrease",
			"increases": "decreases",
			"increased": "decreased",
			"more":      "less",
			"most":      "least",
			"always":    "never",
			"all":       "none of the",
			"many":      "few",
			"higher":    "lower",
			"larger":    "smaller",
			"before":    "after",
			"above":     "below",
		},
	}
}
