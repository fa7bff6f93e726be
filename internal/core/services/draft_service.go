package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type DraftService struct {
	generator ports.QuestionGenerator
	logger    *slog.Logger
}

func NewDraftService(generator ports.QuestionGenerator, logger *slog.Logger) *DraftService {
	return &DraftService{
		generator: generator,
		logger:    resolveLogger(logger),
	}
}

// Draft asks the generator for questions about topic and keeps only the ones
// a poll can be created from.
func (s *DraftService) Draft(ctx context.Context, topic string) ([]domain.QuestionDraft, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrValidation)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", domain.ErrGenerator)
	}

	raw, err := s.generator.GenerateQuestions(ctx, topic)
	if err != nil {
		return nil, err
	}

	drafts := make([]domain.QuestionDraft, 0, domain.MaxQuestions)
	for _, q := range raw {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			continue
		}
		var choices []string
		for _, c := range q.Choices {
			if c = strings.TrimSpace(c); c != "" {
				choices = append(choices, c)
			}
		}
		if len(choices) > domain.MaxChoices {
			choices = choices[:domain.MaxChoices]
		}
		if len(choices) < domain.MinChoices {
			continue
		}
		drafts = append(drafts, domain.QuestionDraft{Text: text, Choices: choices})
		if len(drafts) == domain.MaxQuestions {
			break
		}
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no usable questions for %q", domain.ErrGenerator, topic)
	}

	s.logger.Info("questions drafted", "topic", topic, "questions", len(drafts))
	return drafts, nil
}
