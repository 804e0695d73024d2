package model

import "github.com/google/uuid"

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeTrueFalse      QuestionType = "true-false"
	QuestionTypeShortAnswer    QuestionType = "short-answer"
	QuestionTypeFillBlank      QuestionType = "fill-blank"
)

// AllQuestionTypes is the default type mix for compilation.
var AllQuestionTypes = []QuestionType{
	QuestionTypeMultipleChoice,
	QuestionTypeTrueFalse,
	QuestionTypeShortAnswer,
	QuestionTypeFillBlank,
}

// Difficulty enumerates question difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Points returns the point value for a difficulty level.
// Unknown values fall back to the medium weighting.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

// Option is a labeled multiple-choice option.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a single generated question. CorrectAnswer holds the
// canonical answer: an option label for multiple-choice, "True"/"False"
// for true-false, the removed token for fill-blank, and the full source
// sentence for short-answer.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    Difficulty   `json:"difficulty"`
	Points        int          `json:"points"`
}

// Sanitized returns a copy safe to hand to a learner while the
// assessment is still active (no answer key, no explanation).
func (q Question) Sanitized() Question {
	q.CorrectAnswer = ""
	q.Explanation = ""
	return q
}
