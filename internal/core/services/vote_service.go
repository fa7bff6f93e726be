package services

import (
	"context"
	"log/slog"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type voteService struct {
	pollRepo     ports.PollRepository
	participants ports.ParticipantRegistry
	lifecycle    *Lifecycle
	logger       *slog.Logger
}

func NewVoteService(pollRepo ports.PollRepository, participants ports.ParticipantRegistry, lifecycle *Lifecycle, logger *slog.Logger) ports.VoteService {
	return &voteService{
		pollRepo:     pollRepo,
		participants: participants,
		lifecycle:    lifecycle,
		logger:       resolveLogger(logger),
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (domain.Answer, error) {
	answer, err := s.record(input)
	if err != nil {
		s.logger.Info("vote rejected", "channel_id", input.ChannelID, "data", input.Data, "reason", err)
		return domain.Answer{}, err
	}

	s.logger.Debug("vote recorded",
		"answer_id", answer.ID,
		"poll_id", answer.PollID,
		"question_id", answer.QuestionID,
		"voter_id", answer.VoterID,
	)

	s.lifecycle.NotifyVote(ctx, answer.PollID)
	return answer, nil
}

func (s *voteService) record(input ports.VoteInput) (domain.Answer, error) {
	ref, err := domain.ParseVoteRef(input.Data)
	if err != nil {
		return domain.Answer{}, err
	}

	poll, err := s.pollRepo.GetByID(ref.PollID)
	if err != nil {
		return domain.Answer{}, err
	}
	if !poll.IsActive() {
		return domain.Answer{}, domain.ErrPollNotActive
	}

	voter, ok := s.participants.GetByChannelID(input.ChannelID)
	if !ok {
		return domain.Answer{}, domain.ErrUnregisteredVoter
	}

	question, ok := poll.Question(ref.QuestionID)
	if !ok || !question.HasChoice(ref.ChoiceID) {
		return domain.Answer{}, domain.ErrUnknownChoice
	}

	return s.pollRepo.AppendAnswer(domain.Answer{
		PollID:     ref.PollID,
		QuestionID: ref.QuestionID,
		ChoiceID:   ref.ChoiceID,
		VoterID:    voter.ID,
		AnsweredAt: s.lifecycle.clock.Now(),
	})
}
