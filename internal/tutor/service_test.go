package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/llm"
)

func noteJSON(title string, correct int) llm.MockResponse {
	return llm.MockJSON(map[string]any{
		"title":          title,
		"explanation":    "A fraction names equal parts of a whole.",
		"worked_example": "1. Split the bar into 4 parts\n2. Shade 3\nAnswer: 3/4",
		"practice_question": map[string]any{
			"text":                 "Which fraction is bigger?",
			"options":              []string{"1/2", "1/3"},
			"correct_option_index": correct,
			"explanation":          "Halves are bigger than thirds.",
		},
	})
}

func gradedResult() *assessment.GradingResult {
	qs := []assessment.Question{
		{ID: "q1", ConceptTag: "fractions", CorrectOptionIndex: 0},
		{ID: "q2", ConceptTag: "decimals", CorrectOptionIndex: 0},
		{ID: "q3", ConceptTag: "algebra", CorrectOptionIndex: 0},
		{ID: "q4", ConceptTag: "geometry", CorrectOptionIndex: 0},
	}
	zero, one := 0, 1
	answers := assessment.AnswersByQuestion([]assessment.Answer{
		{QuestionID: "q1", SelectedOptionIndex: &one, TimeSpentSeconds: 30},
		{QuestionID: "q2", SelectedOptionIndex: &one, TimeSpentSeconds: 20},
		{QuestionID: "q3", SelectedOptionIndex: &zero, TimeSpentSeconds: 10},
		{QuestionID: "q4", Skipped: true},
	})
	return assessment.Grade(qs, answers)
}

func TestRemediate_OneNotePerCriticalGap(t *testing.T) {
	mock := llm.NewMockProvider(
		noteJSON("Fractions made simple", 0),
		noteJSON("Decimals and place value", 0),
		noteJSON("Angles and shapes", 0),
	)
	cfg := DefaultConfig()
	cfg.Concurrency = 1
	svc := NewService(mock, cfg)

	result := gradedResult()
	notes, err := svc.Remediate(context.Background(), "Mathematics", result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("notes = %d, want 3", len(notes))
	}

	want := []string{"fractions", "decimals", "geometry"}
	for i, n := range notes {
		if n.ConceptTag != want[i] {
			t.Errorf("notes[%d].ConceptTag = %q, want %q", i, n.ConceptTag, want[i])
		}
		if n.Tier != assessment.TierHigh {
			t.Errorf("notes[%d].Tier = %q, want high", i, n.Tier)
		}
	}
	if notes[0].Title != "Fractions made simple" {
		t.Errorf("Title = %q", notes[0].Title)
	}
	if len(notes[0].PracticeQuestion.Options) != 2 {
		t.Errorf("Options = %v", notes[0].PracticeQuestion.Options)
	}

	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
	call := mock.Calls[0]
	if call.Schema != NoteSchema {
		t.Error("remediation request should carry NoteSchema")
	}
	msg := call.Messages[0].Content
	if !strings.Contains(msg, "Subject: Mathematics") || !strings.Contains(msg, "Concept: fractions") {
		t.Errorf("prompt missing context:\n%s", msg)
	}
	if !strings.Contains(msg, "already handles well: algebra") {
		t.Errorf("prompt missing strong concepts:\n%s", msg)
	}
}

func TestRemediate_PartialFailure(t *testing.T) {
	mock := llm.NewMockProvider(
		noteJSON("Fractions", 0),
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		noteJSON("Geometry", 5), // answer index outside options
	)
	cfg := DefaultConfig()
	cfg.Concurrency = 1
	svc := NewService(mock, cfg)

	notes, err := svc.Remediate(context.Background(), "Mathematics", gradedResult())
	if err == nil {
		t.Fatal("expected joined error")
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected ErrProviderUnavailable in %v", err)
	}
	if !strings.Contains(err.Error(), "geometry") {
		t.Errorf("error should name the failing concept: %v", err)
	}
	if len(notes) != 1 || notes[0].ConceptTag != "fractions" {
		t.Fatalf("notes = %+v, want only fractions", notes)
	}
}

func TestRemediate_Concurrent(t *testing.T) {
	mock := llm.NewMockProvider(noteJSON("a", 0), noteJSON("b", 0), noteJSON("c", 0))
	svc := NewService(mock, DefaultConfig())

	notes, err := svc.Remediate(context.Background(), "Mathematics", gradedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 3 || notes[2].ConceptTag != "geometry" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestRemediate_MaxNotes(t *testing.T) {
	mock := llm.NewMockProvider(noteJSON("a", 0), noteJSON("b", 0), noteJSON("c", 0))
	cfg := DefaultConfig()
	cfg.MaxNotes = 2
	svc := NewService(mock, cfg)

	notes, err := svc.Remediate(context.Background(), "Mathematics", gradedResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 || mock.CallCount() != 2 {
		t.Fatalf("notes = %d, calls = %d, want 2/2", len(notes), mock.CallCount())
	}
}

func TestRemediate_NoGaps(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig())

	for _, r := range []*assessment.GradingResult{nil, assessment.Grade(nil, nil)} {
		notes, err := svc.Remediate(context.Background(), "Science", r)
		if err != nil || notes == nil || len(notes) != 0 {
			t.Errorf("Remediate = %v, %v; want empty, nil", notes, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
}

func TestAsk(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("  Because halves are larger pieces.  "))
	svc := NewService(mock, DefaultConfig())

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "What is a fraction?"},
		{Role: llm.RoleAssistant, Content: "Part of a whole."},
	}
	answer, err := svc.Ask(context.Background(), history, "Why is 1/2 > 1/3?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Because halves are larger pieces." {
		t.Errorf("answer = %q", answer)
	}

	call := mock.Calls[0]
	if call.Schema != nil {
		t.Error("chat should be free text")
	}
	if len(call.Messages) != 3 || call.Messages[2].Content != "Why is 1/2 > 1/3?" {
		t.Errorf("messages = %+v", call.Messages)
	}
	if len(history) != 2 {
		t.Error("history must not be mutated")
	}
}

func TestAsk_Empty(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())
	if _, err := svc.Ask(context.Background(), nil, "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("err = %v, want ErrEmptyQuestion", err)
	}
}
