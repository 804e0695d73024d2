package quizgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/prepmind/prepmind-backend/internal/model"
)

// Minimum sentence lengths per question type. Shorter sentences rarely
// carry enough context to anchor that format.
const (
	minMultipleChoiceLen = 30
	minTrueFalseLen      = 20
	minShortAnswerLen    = 30
	minFillBlankLen      = 25
)

// minKeyTermLen is the shortest token usable as a key term (tokens
// longer than 4 characters after punctuation trimming).
const minKeyTermLen = 5

const blankMarker = "_____"

// Generator produces questions from a sentence pool. All generators
// share one used set per compilation run so no sentence backs two
// questions; a nil return means the pool is exhausted for that type,
// which is expected control flow rather than an error.
type Generator struct {
	rng         *rand.Rand
	distractors *Distractors
	tables      Tables
}

// NewGenerator creates a Generator over the given vocabulary tables and
// random source.
func NewGenerator(tables Tables, rng *rand.Rand) *Generator {
	return &Generator{
		rng:         rng,
		distractors: NewDistractors(tables, rng),
		tables:      tables,
	}
}

// MultipleChoice blanks a key term from an unused sentence and offers
// the term among three synthesized distractors. CorrectAnswer is the
// shuffled position label of the true option.
func (g *Generator) MultipleChoice(pool []string, used map[string]bool, difficulty model.Difficulty) *model.Question {
	for _, sentence := range pool {
		if used[sentence] || len(sentence) <= minMultipleChoiceLen {
			continue
		}
		used[sentence] = true

		term, ok := g.pickKeyTerm(sentence)
		if !ok {
			// No anchor term; the sentence stays consumed.
			continue
		}

		texts := append([]string{term}, g.distractors.Synthesize(term, difficulty, 3)...)
		g.rng.Shuffle(len(texts), func(i, j int) {
			texts[i], texts[j] = texts[j], texts[i]
		})

		options := make([]model.Option, len(texts))
		correctLabel := ""
		for i, text := range texts {
			label := string(rune('A' + i))
			options[i] = model.Option{Label: label, Text: text}
			if strings.EqualFold(text, term) {
				correctLabel = label
			}
		}

		return &model.Question{
			ID:            uuid.New(),
			Type:          model.QuestionTypeMultipleChoice,
			Prompt:        "Fill in the blank: " + strings.Replace(sentence, term, blankMarker, 1),
			Options:       options,
			CorrectAnswer: correctLabel,
			Explanation:   fmt.Sprintf("The missing term is %q. Source sentence: %q", term, sentence),
			Difficulty:    difficulty,
			Points:        difficulty.Points(),
		}
	}
	return nil
}

// TrueFalse presents an unused sentence verbatim (answer True) or with
// a token near the midpoint polarity-flipped (answer False), with equal
// probability.
func (g *Generator) TrueFalse(pool []string, used map[string]bool, difficulty model.Difficulty) *model.Question {
	for _, sentence := range pool {
		if used[sentence] || len(sentence) <= minTrueFalseLen {
			continue
		}
		used[sentence] = true

		statement := sentence
		answer := "True"
		if g.rng.Float64() >= 0.5 {
			statement = g.negate(sentence)
			answer = "False"
		}

		return &model.Question{
			ID:            uuid.New(),
			Type:          model.QuestionTypeTrueFalse,
			Prompt:        "True or False: " + statement,
			CorrectAnswer: answer,
			Explanation:   fmt.Sprintf("The source sentence reads: %q", sentence),
			Difficulty:    difficulty,
			Points:        difficulty.Points(),
		}
	}
	return nil
}

// ShortAnswer asks the learner to explain the first key terms of an
// unused sentence. The full sentence is the canonical answer; grading
// applies the fuzzy token-overlap rule.
func (g *Generator) ShortAnswer(pool []string, used map[string]bool, difficulty model.Difficulty) *model.Question {
	for _, sentence := range pool {
		if used[sentence] || len(sentence) <= minShortAnswerLen {
			continue
		}
		used[sentence] = true

		var terms []string
		for _, tok := range strings.Fields(sentence) {
			clean := cleanToken(tok)
			if len(clean) >= minKeyTermLen {
				terms = append(terms, clean)
				if len(terms) == 3 {
					break
				}
			}
		}
		if len(terms) == 0 {
			continue
		}

		return &model.Question{
			ID:            uuid.New(),
			Type:          model.QuestionTypeShortAnswer,
			Prompt:        fmt.Sprintf("In your own words, explain what the text says about %s (200 characters or fewer).", strings.Join(terms, ", ")),
			CorrectAnswer: sentence,
			Explanation:   fmt.Sprintf("A complete answer covers: %q", sentence),
			Difficulty:    difficulty,
			Points:        difficulty.Points(),
		}
	}
	return nil
}

// FillBlank removes one random key term from an unused sentence; the
// removed token is the canonical answer.
func (g *Generator) FillBlank(pool []string, used map[string]bool, difficulty model.Difficulty) *model.Question {
	for _, sentence := range pool {
		if used[sentence] || len(sentence) <= minFillBlankLen {
			continue
		}
		used[sentence] = true

		term, ok := g.pickKeyTerm(sentence)
		if !ok {
			continue
		}

		return &model.Question{
			ID:            uuid.New(),
			Type:          model.QuestionTypeFillBlank,
			Prompt:        "Complete the sentence: " + strings.Replace(sentence, term, blankMarker, 1),
			CorrectAnswer: term,
			Explanation:   fmt.Sprintf("The missing word is %q. Source sentence: %q", term, sentence),
			Difficulty:    difficulty,
			Points:        difficulty.Points(),
		}
	}
	return nil
}

// pickKeyTerm selects uniformly at random among the sentence's
// qualifying tokens.
func (g *Generator) pickKeyTerm(sentence string) (string, bool) {
	var candidates []string
	for _, tok := range strings.Fields(sentence) {
		clean := cleanToken(tok)
		if len(clean) >= minKeyTermLen {
			candidates = append(candidates, clean)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}

// negate flips the polarity of the token nearest the sentence midpoint
// using the opposites table, falling back to prefixing "not" when no
// table entry matches.
func (g *Generator) negate(sentence string) string {
	tokens := strings.Fields(sentence)
	mid := len(tokens) / 2

	for offset := 0; offset < len(tokens); offset++ {
		for _, i := range []int{mid + offset, mid - offset} {
			if i < 0 || i >= len(tokens) {
				continue
			}
			if flip, ok := g.tables.Opposites[strings.ToLower(cleanToken(tokens[i]))]; ok {
				tokens[i] = flip
				return strings.Join(tokens, " ")
			}
		}
	}

	tokens[mid] = "not " + tokens[mid]
	return strings.Join(tokens, " ")
}

func cleanToken(tok string) string {
	return strings.Trim(tok, `.,;:!?"'()[]`)
}
