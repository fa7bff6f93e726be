package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

// armedPoll is the scheduling state of one active poll: its deadline timer
// and the worker that re-evaluates completion after votes.
type armedPoll struct {
	timer  ports.Timer
	signal chan struct{}
	done   chan struct{}
}

// Lifecycle closes polls when their deadline elapses or when every registered
// participant has answered every question, whichever comes first. Both
// triggers go through Close, which notifies the close listener once per poll.
type Lifecycle struct {
	polls        ports.PollRepository
	participants ports.ParticipantRegistry
	clock        ports.Clock
	logger       *slog.Logger

	mu       sync.Mutex
	listener ports.PollCloseListener
	armed    map[int64]*armedPoll
}

func NewLifecycle(polls ports.PollRepository, participants ports.ParticipantRegistry, clock ports.Clock, logger *slog.Logger) *Lifecycle {
	if clock == nil {
		clock = SystemClock()
	}
	return &Lifecycle{
		polls:        polls,
		participants: participants,
		clock:        clock,
		logger:       resolveLogger(logger),
		armed:        make(map[int64]*armedPoll),
	}
}

// SetCloseListener fills the single listener slot, replacing any previous one.
func (l *Lifecycle) SetCloseListener(listener ports.PollCloseListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listener = listener
}

// Arm starts the deadline timer and completion worker for an active poll.
func (l *Lifecycle) Arm(pollID int64, deadline time.Duration) {
	l.mu.Lock()
	if _, ok := l.armed[pollID]; ok {
		l.mu.Unlock()
		return
	}
	a := &armedPoll{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	a.timer = l.clock.AfterFunc(deadline, func() { l.onDeadline(pollID) })
	l.armed[pollID] = a
	l.mu.Unlock()

	go l.watchCompletion(pollID, a)

	// The poll may have closed before it was armed.
	if p, err := l.polls.GetByID(pollID); err == nil && !p.IsActive() {
		l.disarm(pollID)
	}

	l.logger.Debug("poll armed", "poll_id", pollID, "deadline", deadline)
}

// NotifyVote schedules a completion check for pollID without waiting for it.
// Signals coalesce: a pending check reads the ledger after this vote landed.
func (l *Lifecycle) NotifyVote(ctx context.Context, pollID int64) {
	l.mu.Lock()
	a, ok := l.armed[pollID]
	l.mu.Unlock()

	if !ok {
		if _, err := l.CheckCompletion(ctx, pollID); err != nil {
			l.logger.Warn("completion check failed", "poll_id", pollID, "error", err)
		}
		return
	}

	select {
	case a.signal <- struct{}{}:
	default:
	}
}

// CheckCompletion closes the poll if the number of voters who answered every
// question reaches the current participant count. Participants who register
// mid-poll raise the bar.
func (l *Lifecycle) CheckCompletion(ctx context.Context, pollID int64) (bool, error) {
	poll, err := l.polls.GetByID(pollID)
	if err != nil {
		return false, err
	}
	if !poll.IsActive() {
		return false, nil
	}

	totalParticipants := l.participants.Count()
	totalQuestions := len(poll.Questions)
	if totalParticipants == 0 || totalQuestions == 0 {
		return false, nil
	}

	answers, err := l.polls.Answers(pollID)
	if err != nil {
		return false, err
	}

	answered := make(map[int64]map[int64]struct{})
	for _, a := range answers {
		qs, ok := answered[a.VoterID]
		if !ok {
			qs = make(map[int64]struct{}, totalQuestions)
			answered[a.VoterID] = qs
		}
		qs[a.QuestionID] = struct{}{}
	}

	complete := 0
	for _, qs := range answered {
		if len(qs) >= totalQuestions {
			complete++
		}
	}

	if complete < totalParticipants {
		return false, nil
	}

	l.logger.Info("all participants answered", "poll_id", pollID, "participants", totalParticipants)
	return l.Close(ctx, pollID)
}

// Close flips the poll to closed. Only the caller that performs the
// transition stops the scheduling state and notifies the listener; every
// other call is a no-op reporting false.
func (l *Lifecycle) Close(ctx context.Context, pollID int64) (bool, error) {
	poll, closed, err := l.polls.MarkClosed(pollID)
	if err != nil {
		return false, err
	}
	if !closed {
		return false, nil
	}

	l.disarm(pollID)
	l.logger.Info("poll closed", "poll_id", pollID, "title", poll.Title)

	l.mu.Lock()
	listener := l.listener
	l.mu.Unlock()

	if listener != nil {
		l.notify(listener, poll)
	}
	return true, nil
}

// Shutdown stops every pending timer and completion worker.
func (l *Lifecycle) Shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, a := range l.armed {
		a.timer.Stop()
		close(a.done)
		delete(l.armed, id)
	}
}

func (l *Lifecycle) disarm(pollID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.armed[pollID]
	if !ok {
		return
	}
	a.timer.Stop()
	close(a.done)
	delete(l.armed, pollID)
}

func (l *Lifecycle) watchCompletion(pollID int64, a *armedPoll) {
	for {
		select {
		case <-a.done:
			return
		case <-a.signal:
			if _, err := l.CheckCompletion(context.Background(), pollID); err != nil {
				l.logger.Warn("completion check failed", "poll_id", pollID, "error", err)
			}
		}
	}
}

func (l *Lifecycle) onDeadline(pollID int64) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("deadline handler panicked", "poll_id", pollID, "panic", r)
		}
	}()

	l.logger.Info("poll deadline elapsed", "poll_id", pollID)
	if _, err := l.Close(context.Background(), pollID); err != nil {
		l.logger.Error("deadline close failed", "poll_id", pollID, "error", err)
	}
}

// notify runs the listener; a panic there does not undo the close.
func (l *Lifecycle) notify(listener ports.PollCloseListener, poll domain.Poll) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("poll close listener panicked", "poll_id", poll.ID, "panic", r)
		}
	}()
	listener.OnPollClosed(poll)
}
