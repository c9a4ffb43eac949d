package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/llm"
)

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// Service writes remediation notes and answers tutor chat questions.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a tutor service.
func NewService(provider llm.Provider, cfg Config) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Service{provider: provider, cfg: cfg}
}

type noteOutput struct {
	Title            string                 `json:"title"`
	Explanation      string                 `json:"explanation"`
	WorkedExample    string                 `json:"worked_example"`
	PracticeQuestion practiceQuestionOutput `json:"practice_question"`
}

type practiceQuestionOutput struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        string   `json:"explanation"`
}

// Remediate writes one note per critical gap, at most MaxNotes, in
// learning-path order. Notes that fail are left out and their errors joined;
// the notes that succeeded are returned alongside.
func (s *Service) Remediate(ctx context.Context, subject string, result *assessment.GradingResult) ([]Note, error) {
	if result == nil || len(result.CriticalGaps) == 0 {
		return []Note{}, nil
	}

	gaps := result.CriticalGaps
	if s.cfg.MaxNotes > 0 && len(gaps) > s.cfg.MaxNotes {
		gaps = gaps[:s.cfg.MaxNotes]
	}

	notes := make([]*Note, len(gaps))
	errs := make([]error, len(gaps))

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i, cp := range gaps {
		g.Go(func() error {
			note, err := s.note(ctx, subject, cp, result)
			if err != nil {
				errs[i] = fmt.Errorf("note for %s: %w", cp.ConceptTag, err)
				return nil
			}
			notes[i] = note
			return nil
		})
	}
	g.Wait()

	out := make([]Note, 0, len(gaps))
	for _, n := range notes {
		if n != nil {
			out = append(out, *n)
		}
	}
	return out, errors.Join(errs...)
}

func (s *Service) note(ctx context.Context, subject string, cp assessment.ConceptPerformance, result *assessment.GradingResult) (*Note, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeRemediation)

	req := llm.Request{
		System: noteSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildNoteUserMessage(subject, cp, result)},
		},
		Schema:      NoteSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("remediation generation: %w", err)
	}

	var out noteOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse remediation response: %w", err)
	}
	pq := out.PracticeQuestion
	if pq.CorrectOptionIndex < 0 || pq.CorrectOptionIndex >= len(pq.Options) {
		return nil, fmt.Errorf("practice answer %d outside %d options", pq.CorrectOptionIndex, len(pq.Options))
	}

	return &Note{
		ConceptTag:      cp.ConceptTag,
		Tier:            cp.Tier,
		AccuracyPercent: cp.AccuracyPercent,
		Title:           out.Title,
		Explanation:     out.Explanation,
		WorkedExample:   out.WorkedExample,
		PracticeQuestion: PracticeQuestion{
			Text:               pq.Text,
			Options:            pq.Options,
			CorrectOptionIndex: pq.CorrectOptionIndex,
			Explanation:        pq.Explanation,
		},
	}, nil
}

// Ask answers a free-text question given the prior conversation.
func (s *Service) Ask(ctx context.Context, history []llm.Message, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: question})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    msgs,
		MaxTokens:   s.cfg.ChatMaxTokens,
		Temperature: s.cfg.ChatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("tutor chat: %w", err)
	}
	answer, err := resp.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
