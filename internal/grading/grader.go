// Package grading scores submitted answers against the generated
// answer key and computes aggregate assessment results.
package grading

import (
	"math"
	"strings"

	"github.com/prepmind/prepmind-backend/internal/model"
)

// fuzzyMatchThreshold is the fraction of correct-answer tokens that
// must appear in the user's answer for free-form grading. Deliberately
// lenient; changing it changes grading behavior for every stored
// assessment.
const fuzzyMatchThreshold = 0.7

// Summary is the aggregate outcome of grading one assessment.
type Summary struct {
	Results      []model.GradingResult
	Score        int
	TotalPoints  int
	CorrectCount int
	Percentage   int
	Grade        string
}

// Correct reports whether an answer satisfies the question's matching
// rule. Choice-based types use case-insensitive equality; free-form
// types use the token-overlap fuzzy match. An empty answer is always
// incorrect.
func Correct(q model.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice, model.QuestionTypeTrueFalse:
		return strings.EqualFold(answer, q.CorrectAnswer)
	case model.QuestionTypeShortAnswer, model.QuestionTypeFillBlank:
		return fuzzyMatch(q.CorrectAnswer, answer)
	default:
		return false
	}
}

// fuzzyMatch tokenizes both strings (lower-cased, whitespace-split) and
// counts correct-answer tokens that contain or are contained by any
// user token. The answer passes when the ratio reaches the threshold.
func fuzzyMatch(correct, user string) bool {
	correctTokens := strings.Fields(strings.ToLower(correct))
	userTokens := strings.Fields(strings.ToLower(user))
	if len(correctTokens) == 0 || len(userTokens) == 0 {
		return false
	}

	matched := 0
	for _, ct := range correctTokens {
		for _, ut := range userTokens {
			if strings.Contains(ut, ct) || strings.Contains(ct, ut) {
				matched++
				break
			}
		}
	}

	return float64(matched)/float64(len(correctTokens)) >= fuzzyMatchThreshold
}

// GradeAll grades every question against the submitted answers.
// Questions missing from the answer map grade as incorrect with zero
// points; they are never an error.
func GradeAll(questions []model.Question, answers map[string]string) Summary {
	summary := Summary{
		Results: make([]model.GradingResult, 0, len(questions)),
	}

	for _, q := range questions {
		answer := answers[q.ID.String()]
		isCorrect := Correct(q, answer)

		awarded := 0
		if isCorrect {
			awarded = q.Points
			summary.Score += q.Points
			summary.CorrectCount++
		}
		summary.TotalPoints += q.Points

		summary.Results = append(summary.Results, model.GradingResult{
			QuestionID:    q.ID,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			PointsAwarded: awarded,
			Explanation:   q.Explanation,
		})
	}

	if summary.TotalPoints > 0 {
		summary.Percentage = int(math.Round(float64(summary.Score) / float64(summary.TotalPoints) * 100))
	}
	summary.Grade = LetterGrade(summary.Percentage)
	return summary
}

// LetterGrade maps a percentage to its grade band.
func LetterGrade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
