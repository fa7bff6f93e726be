package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type participantService struct {
	registry ports.ParticipantRegistry
	logger   *slog.Logger
}

func NewParticipantService(registry ports.ParticipantRegistry, logger *slog.Logger) ports.ParticipantService {
	return &participantService{
		registry: registry,
		logger:   resolveLogger(logger),
	}
}

func (s *participantService) Register(ctx context.Context, input ports.RegisterInput) ports.Registration {
	p, created := s.registry.RegisterIfAbsent(input.ChannelID, strings.TrimSpace(input.DisplayName))
	size := s.registry.Count()
	if created {
		s.logger.Info("participant registered",
			"participant_id", p.ID,
			"channel_id", p.ChannelID,
			"display_name", p.DisplayName,
			"community_size", size,
		)
	}
	return ports.Registration{
		Participant:   p,
		Created:       created,
		CommunitySize: size,
	}
}

func (s *participantService) List(ctx context.Context) []domain.Participant {
	return s.registry.All()
}
