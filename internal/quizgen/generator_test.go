package quizgen

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/prepmind/prepmind-backend/internal/model"
)

var sentencePool = []string{
	"The mitochondria is the powerhouse of the cell because it produces chemical energy",
	"Cellular respiration takes place in three distinct stages inside the cell",
	"Glycolysis happens in the cytoplasm and breaks glucose into pyruvate molecules",
	"The citric acid cycle oxidizes pyruvate inside the mitochondrial matrix",
}

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(DefaultTables(), rand.New(rand.NewSource(seed)))
}

func TestMultipleChoiceStructure(t *testing.T) {
	g := newTestGenerator(1)
	used := make(map[string]bool)

	q := g.MultipleChoice(sentencePool, used, model.DifficultyMedium)
	if q == nil {
		t.Fatal("expected a question, got nil")
	}

	if q.Type != model.QuestionTypeMultipleChoice {
		t.Errorf("wrong type: %s", q.Type)
	}
	if !strings.HasPrefix(q.Prompt, "Fill in the blank: ") {
		t.Errorf("unexpected prompt: %q", q.Prompt)
	}
	if !strings.Contains(q.Prompt, "_____") {
		t.Errorf("prompt has no blank marker: %q", q.Prompt)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.Points != 2 {
		t.Errorf("medium question worth %d points, want 2", q.Points)
	}

	// Exactly one option carries the label named by CorrectAnswer, and
	// its text is a term from the source pool.
	correctCount := 0
	for i, opt := range q.Options {
		wantLabel := string(rune('A' + i))
		if opt.Label != wantLabel {
			t.Errorf("option %d labeled %q, want %q", i, opt.Label, wantLabel)
		}
		if opt.Label == q.CorrectAnswer {
			correctCount++
			found := false
			for _, sentence := range sentencePool {
				if strings.Contains(sentence, opt.Text) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("correct option text %q not found in any source sentence", opt.Text)
			}
		}
	}
	if correctCount != 1 {
		t.Errorf("expected exactly one correct option, got %d", correctCount)
	}
}

func TestTrueFalseAnswers(t *testing.T) {
	sawTrue, sawFalse := false, false

	for seed := int64(0); seed < 30; seed++ {
		g := newTestGenerator(seed)
		used := make(map[string]bool)

		q := g.TrueFalse(sentencePool, used, model.DifficultyEasy)
		if q == nil {
			t.Fatal("expected a question, got nil")
		}
		if !strings.HasPrefix(q.Prompt, "True or False: ") {
			t.Fatalf("unexpected prompt: %q", q.Prompt)
		}
		statement := strings.TrimPrefix(q.Prompt, "True or False: ")

		switch q.CorrectAnswer {
		case "True":
			sawTrue = true
			if statement != sentencePool[0] {
				t.Errorf("verbatim statement expected, got %q", statement)
			}
		case "False":
			sawFalse = true
			if statement == sentencePool[0] {
				t.Errorf("negated statement expected, got the original sentence")
			}
		default:
			t.Fatalf("unexpected answer %q", q.CorrectAnswer)
		}

		if q.Points != 1 {
			t.Errorf("easy question worth %d points, want 1", q.Points)
		}
	}

	if !sawTrue || !sawFalse {
		t.Errorf("expected both verbatim and negated statements across seeds (true=%v false=%v)", sawTrue, sawFalse)
	}
}

func TestShortAnswerUsesFullSentenceAsKey(t *testing.T) {
	g := newTestGenerator(4)
	used := make(map[string]bool)

	q := g.ShortAnswer(sentencePool, used, model.DifficultyHard)
	if q == nil {
		t.Fatal("expected a question, got nil")
	}

	if q.CorrectAnswer != sentencePool[0] {
		t.Errorf("correct answer is %q, want the full source sentence", q.CorrectAnswer)
	}
	if !strings.Contains(q.Prompt, "mitochondria") {
		t.Errorf("prompt does not name the key terms: %q", q.Prompt)
	}
	if q.Points != 3 {
		t.Errorf("hard question worth %d points, want 3", q.Points)
	}
}

func TestFillBlankRemovesAnswerToken(t *testing.T) {
	g := newTestGenerator(5)
	used := make(map[string]bool)

	q := g.FillBlank(sentencePool, used, model.DifficultyMedium)
	if q == nil {
		t.Fatal("expected a question, got nil")
	}

	if !strings.Contains(q.Prompt, "_____") {
		t.Errorf("prompt has no blank marker: %q", q.Prompt)
	}
	if len(q.CorrectAnswer) < 5 {
		t.Errorf("blanked token %q is shorter than a key term", q.CorrectAnswer)
	}
	if !strings.Contains(sentencePool[0], q.CorrectAnswer) {
		t.Errorf("blanked token %q not part of the source sentence", q.CorrectAnswer)
	}
}

func TestGeneratorsShareUsedSet(t *testing.T) {
	g := newTestGenerator(6)
	used := make(map[string]bool)
	pool := sentencePool[:1]

	if q := g.TrueFalse(pool, used, model.DifficultyMedium); q == nil {
		t.Fatal("first generation should succeed")
	}
	if q := g.FillBlank(pool, used, model.DifficultyMedium); q != nil {
		t.Fatalf("consumed sentence was reused: %q", q.Prompt)
	}
}

func TestGeneratorsSkipShortSentences(t *testing.T) {
	g := newTestGenerator(7)
	pool := []string{"Way too short for this"}

	if q := g.MultipleChoice(pool, make(map[string]bool), model.DifficultyMedium); q != nil {
		t.Errorf("multiple choice accepted a short sentence: %q", q.Prompt)
	}
	if q := g.ShortAnswer(pool, make(map[string]bool), model.DifficultyMedium); q != nil {
		t.Errorf("short answer accepted a short sentence: %q", q.Prompt)
	}
	if q := g.FillBlank(pool, make(map[string]bool), model.DifficultyMedium); q != nil {
		t.Errorf("fill blank accepted a short sentence: %q", q.Prompt)
	}
}
