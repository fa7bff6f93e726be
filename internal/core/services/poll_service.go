package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type pollService struct {
	repo            ports.PollRepository
	participants    ports.ParticipantRegistry
	lifecycle       *Lifecycle
	defaultDeadline time.Duration
	logger          *slog.Logger
}

func NewPollService(repo ports.PollRepository, participants ports.ParticipantRegistry, lifecycle *Lifecycle, defaultDeadline time.Duration, logger *slog.Logger) ports.PollService {
	if defaultDeadline <= 0 {
		defaultDeadline = domain.DefaultDeadline
	}
	return &pollService{
		repo:            repo,
		participants:    participants,
		lifecycle:       lifecycle,
		defaultDeadline: defaultDeadline,
		logger:          resolveLogger(logger),
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (domain.Poll, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Poll{}, domain.ErrEmptyTitle
	}
	if s.participants.Count() < domain.MinParticipants {
		return domain.Poll{}, domain.ErrNotEnoughParticipants
	}
	if _, ok := s.repo.Active(); ok {
		return domain.Poll{}, domain.ErrActivePollExists
	}
	if err := domain.ValidateDrafts(input.Questions); err != nil {
		return domain.Poll{}, err
	}
	if input.Deadline < 0 {
		return domain.Poll{}, domain.ErrInvalidDeadline
	}

	deadline := input.Deadline
	if deadline == 0 {
		deadline = s.defaultDeadline
	}

	now := s.lifecycle.clock.Now()
	poll, err := s.repo.Create(ports.NewPoll{
		Title:     strings.TrimSpace(input.Title),
		CreatorID: input.CreatorID,
		Questions: input.Questions,
		CreatedAt: now,
		ExpiresAt: now.Add(deadline),
	})
	if err != nil {
		return domain.Poll{}, err
	}

	s.lifecycle.Arm(poll.ID, deadline)

	s.logger.Info("poll created",
		"poll_id", poll.ID,
		"creator_id", poll.CreatorID,
		"questions", len(poll.Questions),
		"expires_at", now.Add(deadline),
	)
	return poll, nil
}

func (s *pollService) GetPoll(ctx context.Context, id int64) (domain.Poll, error) {
	return s.repo.GetByID(id)
}

func (s *pollService) ActivePoll(ctx context.Context) (domain.Poll, bool) {
	return s.repo.Active()
}

func (s *pollService) Close(ctx context.Context, id int64) error {
	_, err := s.lifecycle.Close(ctx, id)
	return err
}
