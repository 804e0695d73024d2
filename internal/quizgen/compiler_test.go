package quizgen

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/prepmind/prepmind-backend/internal/model"
)

const sampleContent = "The mitochondria is the powerhouse of the cell because it produces chemical energy. " +
	"Cellular respiration takes place in three distinct stages inside the cell. " +
	"Glycolysis happens in the cytoplasm and breaks glucose into pyruvate molecules. " +
	"The citric acid cycle oxidizes pyruvate inside the mitochondrial matrix. " +
	"Oxidative phosphorylation produces the bulk of the adenosine triphosphate."

func sampleDocument() *model.StudyDocument {
	return &model.StudyDocument{Content: sampleContent}
}

func TestCompileDefaults(t *testing.T) {
	questions, err := Compile(sampleDocument(), CompileOptions{}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) == 0 || len(questions) > DefaultQuestionCount {
		t.Fatalf("expected between 1 and %d questions, got %d", DefaultQuestionCount, len(questions))
	}
	for _, q := range questions {
		if q.Difficulty != model.DifficultyMedium {
			t.Errorf("default difficulty is %s, want medium", q.Difficulty)
		}
		if q.Points != 2 {
			t.Errorf("medium question worth %d points, want 2", q.Points)
		}
		if q.CorrectAnswer == "" {
			t.Errorf("question %s has no answer key", q.ID)
		}
	}
}

func TestCompileCapsAtSentencePool(t *testing.T) {
	// Five usable sentences cannot back more than five questions no
	// matter how many are requested.
	questions, err := Compile(sampleDocument(), CompileOptions{QuestionCount: 10}, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) > 5 {
		t.Fatalf("got %d questions from a 5-sentence pool", len(questions))
	}
}

func TestCompileRestrictsQuestionTypes(t *testing.T) {
	questions, err := Compile(sampleDocument(), CompileOptions{
		QuestionCount: 4,
		QuestionTypes: []model.QuestionType{model.QuestionTypeTrueFalse},
	}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, q := range questions {
		if q.Type != model.QuestionTypeTrueFalse {
			t.Errorf("unexpected question type %s", q.Type)
		}
	}
}

func TestCompileInputTooShort(t *testing.T) {
	doc := &model.StudyDocument{Content: "Not enough text."}
	_, err := Compile(doc, CompileOptions{}, rand.New(rand.NewSource(4)))
	if !errors.Is(err, ErrInputTooShort) {
		t.Fatalf("expected ErrInputTooShort, got %v", err)
	}
}

func TestCompileInsufficientMaterial(t *testing.T) {
	// Long enough to segment, but every fragment is below the sentence
	// threshold, so no generator can produce anything.
	doc := &model.StudyDocument{
		Content: strings.Repeat("one two three four. ", 6),
	}
	_, err := Compile(doc, CompileOptions{}, rand.New(rand.NewSource(5)))
	if !errors.Is(err, ErrInsufficientMaterial) {
		t.Fatalf("expected ErrInsufficientMaterial, got %v", err)
	}
}

func TestCompileDeterministicForSeed(t *testing.T) {
	first, err := Compile(sampleDocument(), CompileOptions{QuestionCount: 4}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compile(sampleDocument(), CompileOptions{QuestionCount: 4}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("question counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Prompt != second[i].Prompt {
			t.Errorf("question %d prompts differ:\n%q\n%q", i, first[i].Prompt, second[i].Prompt)
		}
		if first[i].CorrectAnswer != second[i].CorrectAnswer {
			t.Errorf("question %d answers differ: %q vs %q", i, first[i].CorrectAnswer, second[i].CorrectAnswer)
		}
	}
}

func TestTotalPoints(t *testing.T) {
	questions := []model.Question{
		{Points: 1},
		{Points: 2},
		{Points: 3},
	}
	if got := TotalPoints(questions); got != 6 {
		t.Errorf("TotalPoints = %d, want 6", got)
	}
	if got := TotalPoints(nil); got != 0 {
		t.Errorf("TotalPoints(nil) = %d, want 0", got)
	}
}
