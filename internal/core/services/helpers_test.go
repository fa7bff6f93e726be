package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollbot/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
	"github.com/vncsmyrnk/pollbot/internal/core/services"
)

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock fires timers only when Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type harness struct {
	clock        *fakeClock
	participants ports.ParticipantRegistry
	polls        ports.PollRepository
	lifecycle    *services.Lifecycle
	pollSvc      ports.PollService
	voteSvc      ports.VoteService
	results      ports.ResultsService
	closed       chan domain.Poll
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		clock:        newFakeClock(),
		participants: memory.NewParticipantRegistry(),
		polls:        memory.NewPollStore(),
		closed:       make(chan domain.Poll, 16),
	}
	h.lifecycle = services.NewLifecycle(h.polls, h.participants, h.clock, nil)
	h.lifecycle.SetCloseListener(ports.PollCloseListenerFunc(func(p domain.Poll) {
		h.closed <- p
	}))
	h.pollSvc = services.NewPollService(h.polls, h.participants, h.lifecycle, 0, nil)
	h.voteSvc = services.NewVoteService(h.polls, h.participants, h.lifecycle, nil)
	h.results = services.NewResultsService(h.polls)

	t.Cleanup(h.lifecycle.Shutdown)
	return h
}

// register adds n participants with channel ids 101, 102, ...
func (h *harness) register(n int) []int64 {
	channels := make([]int64, 0, n)
	start := int64(h.participants.Count()) + 101
	for i := int64(0); i < int64(n); i++ {
		h.participants.RegisterIfAbsent(start+i, "voter")
		channels = append(channels, start+i)
	}
	return channels
}

func (h *harness) createPoll(t *testing.T, questions ...domain.QuestionDraft) domain.Poll {
	t.Helper()
	if len(questions) == 0 {
		questions = []domain.QuestionDraft{{Text: "Best editor?", Choices: []string{"vim", "emacs"}}}
	}
	poll, err := h.pollSvc.Create(context.Background(), ports.CreatePollInput{
		Title:     "Survey",
		CreatorID: 1,
		Questions: questions,
		Deadline:  5 * time.Minute,
	})
	require.NoError(t, err)
	return poll
}

func (h *harness) vote(poll domain.Poll, qIdx, cIdx int, channelID int64) error {
	q := poll.Questions[qIdx]
	ref := domain.VoteRef{PollID: poll.ID, QuestionID: q.ID, ChoiceID: q.Choices[cIdx].ID}
	_, err := h.voteSvc.Vote(context.Background(), ports.VoteInput{Data: ref.String(), ChannelID: channelID})
	return err
}

func (h *harness) waitClosed(t *testing.T) domain.Poll {
	t.Helper()
	select {
	case p := <-h.closed:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("poll was not closed")
		return domain.Poll{}
	}
}

func (h *harness) assertNoMoreCloses(t *testing.T) {
	t.Helper()
	select {
	case p := <-h.closed:
		t.Fatalf("unexpected extra close notification for poll %d", p.ID)
	case <-time.After(50 * time.Millisecond):
	}
}
