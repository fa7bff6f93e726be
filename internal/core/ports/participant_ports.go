package ports

import (
	"context"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

type ParticipantRegistry interface {
	// RegisterIfAbsent returns the existing participant for channelID, or
	// stores a new one. created reports whether a new participant was stored.
	RegisterIfAbsent(channelID int64, displayName string) (p domain.Participant, created bool)
	GetByChannelID(channelID int64) (domain.Participant, bool)
	Count() int
	All() []domain.Participant
}

type RegisterInput struct {
	ChannelID   int64
	DisplayName string
}

type Registration struct {
	Participant   domain.Participant
	Created       bool
	CommunitySize int
}

type ParticipantService interface {
	Register(ctx context.Context, input RegisterInput) Registration
	List(ctx context.Context) []domain.Participant
}
