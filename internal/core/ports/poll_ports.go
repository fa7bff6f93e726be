package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

// PollRepository owns polls and their answer ledgers.
type PollRepository interface {
	// Create assigns ids, stores the poll as active and initializes its
	// ledger, failing with domain.ErrActivePollExists if another poll is
	// active. The check and the insert are one critical section.
	Create(input NewPoll) (domain.Poll, error)
	GetByID(id int64) (domain.Poll, error)
	Active() (domain.Poll, bool)
	// MarkClosed flips the poll from active to closed. It returns true only
	// for the single caller that performed the transition.
	MarkClosed(id int64) (domain.Poll, bool, error)
	// AppendAnswer atomically rejects a second answer for the same
	// (poll, question, voter) with domain.ErrDuplicateVote.
	AppendAnswer(answer domain.Answer) (domain.Answer, error)
	Answers(pollID int64) ([]domain.Answer, error)
}

type NewPoll struct {
	Title     string
	CreatorID int64
	Questions []domain.QuestionDraft
	CreatedAt time.Time
	ExpiresAt time.Time
}

type CreatePollInput struct {
	Title     string
	CreatorID int64
	Questions []domain.QuestionDraft
	// Deadline is the time until the poll auto-closes. Zero means the default.
	Deadline time.Duration
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (domain.Poll, error)
	GetPoll(ctx context.Context, id int64) (domain.Poll, error)
	ActivePoll(ctx context.Context) (domain.Poll, bool)
	Close(ctx context.Context, id int64) error
}

// PollCloseListener is notified once per poll when it transitions to closed.
// Implementations should return quickly or hand off to their own goroutine.
type PollCloseListener interface {
	OnPollClosed(poll domain.Poll)
}

type PollCloseListenerFunc func(poll domain.Poll)

func (f PollCloseListenerFunc) OnPollClosed(poll domain.Poll) {
	f(poll)
}

type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic string) ([]domain.QuestionDraft, error)
}
