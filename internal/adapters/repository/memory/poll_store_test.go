package memory

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

func newPollInput() ports.NewPoll {
	now := time.Now()
	return ports.NewPoll{
		Title:     "Team lunch",
		CreatorID: 1,
		Questions: []domain.QuestionDraft{
			{Text: "Where?", Choices: []string{"Pizza", "Sushi"}},
			{Text: "When?", Choices: []string{"12:00", "13:00", "14:00"}},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestCreateAssignsIdsInAuthoringOrder(t *testing.T) {
	s := NewPollStore()

	poll, err := s.Create(newPollInput())
	require.NoError(t, err)

	assert.Equal(t, int64(1), poll.ID)
	assert.Equal(t, domain.PollStatusActive, poll.Status)
	require.NotNil(t, poll.ExpiresAt)
	require.Len(t, poll.Questions, 2)

	assert.Equal(t, int64(1), poll.Questions[0].ID)
	assert.Equal(t, 1, poll.Questions[0].Order)
	assert.Equal(t, int64(2), poll.Questions[1].ID)
	assert.Equal(t, 2, poll.Questions[1].Order)

	var choiceIDs []int64
	for _, q := range poll.Questions {
		for _, c := range q.Choices {
			assert.Equal(t, q.ID, c.QuestionID)
			choiceIDs = append(choiceIDs, c.ID)
		}
	}
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, choiceIDs)

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, poll.ID, active.ID)

	answers, err := s.Answers(poll.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestCreateRejectsSecondActivePoll(t *testing.T) {
	s := NewPollStore()

	first, err := s.Create(newPollInput())
	require.NoError(t, err)

	_, err = s.Create(newPollInput())
	assert.ErrorIs(t, err, domain.ErrActivePollExists)

	_, closed, err := s.MarkClosed(first.ID)
	require.NoError(t, err)
	require.True(t, closed)

	_, ok := s.Active()
	assert.False(t, ok)

	second, err := s.Create(newPollInput())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(3), second.Questions[0].ID)
}

func TestConcurrentCreateAllowsOnlyOne(t *testing.T) {
	s := NewPollStore()

	var wg sync.WaitGroup
	var ok, rejected atomic.Int32
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(newPollInput())
			if err == nil {
				ok.Add(1)
				return
			}
			if assert.ErrorIs(t, err, domain.ErrActivePollExists) {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(31), rejected.Load())
}

func TestMarkClosedOnlyOnce(t *testing.T) {
	s := NewPollStore()
	poll, err := s.Create(newPollInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	var winners atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, closed, err := s.MarkClosed(poll.ID)
			assert.NoError(t, err)
			if closed {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())

	got, err := s.GetByID(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PollStatusClosed, got.Status)

	_, _, err = s.MarkClosed(999)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestAppendAnswerUniquePerQuestionAndVoter(t *testing.T) {
	s := NewPollStore()
	poll, err := s.Create(newPollInput())
	require.NoError(t, err)
	q1, q2 := poll.Questions[0], poll.Questions[1]

	a, err := s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q1.ID, ChoiceID: q1.Choices[0].ID, VoterID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	_, err = s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q1.ID, ChoiceID: q1.Choices[1].ID, VoterID: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicateVote)

	b, err := s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q2.ID, ChoiceID: q2.Choices[0].ID, VoterID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.ID)

	c, err := s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q1.ID, ChoiceID: q1.Choices[0].ID, VoterID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)

	answers, err := s.Answers(poll.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 3)

	_, err = s.AppendAnswer(domain.Answer{PollID: 999, QuestionID: 1, ChoiceID: 1, VoterID: 1})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestConcurrentDuplicateAnswers(t *testing.T) {
	s := NewPollStore()
	poll, err := s.Create(newPollInput())
	require.NoError(t, err)
	q := poll.Questions[0]

	const attempts = 64
	var wg sync.WaitGroup
	var accepted, duplicates atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AppendAnswer(domain.Answer{
				PollID:     poll.ID,
				QuestionID: q.ID,
				ChoiceID:   q.Choices[i%2].ID,
				VoterID:    7,
			})
			switch {
			case err == nil:
				accepted.Add(1)
			case assert.ErrorIs(t, err, domain.ErrDuplicateVote):
				duplicates.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, int32(attempts-1), duplicates.Load())

	answers, err := s.Answers(poll.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func TestAppendAnswerAfterCloseIsRejected(t *testing.T) {
	s := NewPollStore()
	poll, err := s.Create(newPollInput())
	require.NoError(t, err)

	_, _, err = s.MarkClosed(poll.ID)
	require.NoError(t, err)

	q := poll.Questions[0]
	_, err = s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID, VoterID: 1})
	assert.ErrorIs(t, err, domain.ErrPollNotActive)
}

func TestAnswersReturnsSnapshot(t *testing.T) {
	s := NewPollStore()
	poll, err := s.Create(newPollInput())
	require.NoError(t, err)
	q := poll.Questions[0]

	_, err = s.AppendAnswer(domain.Answer{PollID: poll.ID, QuestionID: q.ID, ChoiceID: q.Choices[0].ID, VoterID: 1})
	require.NoError(t, err)

	snapshot, err := s.Answers(poll.ID)
	require.NoError(t, err)
	snapshot[0].ChoiceID = 999

	again, err := s.Answers(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Choices[0].ID, again[0].ChoiceID)

	_, err = s.Answers(999)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}
