package quizgen

import (
	"errors"
	"math/rand"

	"github.com/prepmind/prepmind-backend/internal/model"
)

// ErrInsufficientMaterial is returned when not a single question could
// be produced from the document.
var ErrInsufficientMaterial = errors.New("document does not contain enough material for any questions")

// DefaultQuestionCount is used when the caller does not specify one.
const DefaultQuestionCount = 5

// CompileOptions controls assessment compilation.
type CompileOptions struct {
	QuestionCount int
	Difficulty    model.Difficulty
	QuestionTypes []model.QuestionType
}

// Compile produces a mixed-type question set from a study document.
// Each iteration picks a type uniformly at random and invokes the
// corresponding generator; a nil result is skipped, not retried, so the
// final set may be smaller than requested when the sentence pool runs
// out. The used-sentence set is scoped to this call, so generator
// invocations are sequential and race-free regardless of how concurrent
// the caller is.
func Compile(doc *model.StudyDocument, opts CompileOptions, rng *rand.Rand) ([]model.Question, error) {
	segments, err := Segment(doc.Content)
	if err != nil {
		return nil, err
	}

	count := opts.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	types := opts.QuestionTypes
	if len(types) == 0 {
		types = model.AllQuestionTypes
	}

	gen := NewGenerator(DefaultTables(), rng)
	used := make(map[string]bool, len(segments.Sentences))

	questions := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		var q *model.Question
		switch types[rng.Intn(len(types))] {
		case model.QuestionTypeMultipleChoice:
			q = gen.MultipleChoice(segments.Sentences, used, difficulty)
		case model.QuestionTypeTrueFalse:
			q = gen.TrueFalse(segments.Sentences, used, difficulty)
		case model.QuestionTypeShortAnswer:
			q = gen.ShortAnswer(segments.Sentences, used, difficulty)
		case model.QuestionTypeFillBlank:
			q = gen.FillBlank(segments.Sentences, used, difficulty)
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}

	if len(questions) == 0 {
		return nil, ErrInsufficientMaterial
	}
	return questions, nil
}

// TotalPoints sums the point values of a question set.
func TotalPoints(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
