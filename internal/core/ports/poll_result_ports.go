package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

type ResultsService interface {
	Compute(ctx context.Context, pollID int64) (domain.PollResults, error)
}

type ArchivedPoll struct {
	ID       uuid.UUID
	PollID   int64
	Title    string
	ClosedAt time.Time
	Results  domain.PollResults
}

// ResultArchive stores final results of closed polls outside the process.
type ResultArchive interface {
	Save(ctx context.Context, archived *ArchivedPoll) error
	List(ctx context.Context, limit int) ([]*ArchivedPoll, error)
}
