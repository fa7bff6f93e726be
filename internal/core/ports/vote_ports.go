package ports

import (
	"context"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

type VoteInput struct {
	// Data is the wire vote reference, "vote:<poll>:<question>:<choice>".
	Data      string
	ChannelID int64
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (domain.Answer, error)
}
