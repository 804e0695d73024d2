package quizgen

import (
	"math/rand"
	"strings"

	"github.com/prepmind/prepmind-backend/internal/model"
)

// attemptsPerDistractor bounds the synthesis loop. When candidates keep
// colliding the synthesizer gives up and returns a short result rather
// than looping forever.
const attemptsPerDistractor = 8

// Distractors synthesizes plausible-but-wrong answer options.
type Distractors struct {
	tables Tables
	rng    *rand.Rand
}

// NewDistractors creates a synthesizer over the given vocabulary tables
// and random source.
func NewDistractors(tables Tables, rng *rand.Rand) *Distractors {
	return &Distractors{tables: tables, rng: rng}
}

// Synthesize produces up to count distractors for the correct term.
// No result equals the correct term (case-insensitively) and results
// are unique within the set. At easy difficulty candidates come from
// the filler vocabulary; otherwise they are built by affixation so the
// options look lexically close to the correct term.
func (d *Distractors) Synthesize(correct string, difficulty model.Difficulty, count int) []string {
	seen := map[string]bool{strings.ToLower(correct): true}
	out := make([]string, 0, count)

	for attempts := 0; len(out) < count && attempts < count*attemptsPerDistractor; attempts++ {
		var candidate string
		if difficulty == model.DifficultyEasy {
			candidate = d.tables.Fillers[d.rng.Intn(len(d.tables.Fillers))]
		} else {
			candidate = d.affixed(correct)
		}

		key := strings.ToLower(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate)
	}

	return out
}

func (d *Distractors) affixed(term string) string {
	if d.rng.Intn(2) == 0 {
		return d.tables.Prefixes[d.rng.Intn(len(d.tables.Prefixes))] + strings.ToLower(term)
	}
	return strings.ToLower(term) + d.tables.Suffixes[d.rng.Intn(len(d.tables.Suffixes))]
}
