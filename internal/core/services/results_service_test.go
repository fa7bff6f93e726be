package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
)

func TestComputeOrdersByCountWithStableTies(t *testing.T) {
	h := newHarness(t)
	voters := h.register(6)
	poll := h.createPoll(t,
		domain.QuestionDraft{Text: "Colour?", Choices: []string{"red", "green", "blue", "black"}},
		domain.QuestionDraft{Text: "Unanswered?", Choices: []string{"yes", "no"}},
	)

	// blue 3, green 1, black 1, red 0 (6th voter abstains)
	for i, c := range []int{2, 2, 2, 1, 3} {
		require.NoError(t, h.vote(poll, 0, c, voters[i]))
	}

	results, err := h.results.Compute(context.Background(), poll.ID)
	require.NoError(t, err)
	assert.Equal(t, poll.ID, results.PollID)
	assert.Equal(t, domain.PollStatusActive, results.Status)
	require.Len(t, results.Questions, 2)

	first := results.Questions[0]
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, int64(5), first.TotalAnswers)

	var texts []string
	var sum float64
	for _, c := range first.Choices {
		texts = append(texts, c.Text)
		sum += c.Percentage
	}
	assert.Equal(t, []string{"blue", "green", "black", "red"}, texts)
	assert.InDelta(t, 100.0, sum, 0.0001)
	assert.InDelta(t, 60.0, first.Choices[0].Percentage, 0.0001)
	assert.InDelta(t, 20.0, first.Choices[1].Percentage, 0.0001)
	assert.Equal(t, int64(0), first.Choices[3].Count)

	second := results.Questions[1]
	assert.Equal(t, 2, second.Order)
	assert.Equal(t, int64(0), second.TotalAnswers)
	require.Len(t, second.Choices, 2)
	for i, c := range second.Choices {
		assert.Equal(t, poll.Questions[1].Choices[i].Text, c.Text)
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percentage)
	}
}

func TestComputeUnknownPoll(t *testing.T) {
	h := newHarness(t)
	_, err := h.results.Compute(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestComputeDoesNotMutateLedger(t *testing.T) {
	h := newHarness(t)
	voters := h.register(3)
	poll := h.createPoll(t)
	require.NoError(t, h.vote(poll, 0, 1, voters[0]))

	before, err := h.polls.Answers(poll.ID)
	require.NoError(t, err)
	_, err = h.results.Compute(context.Background(), poll.ID)
	require.NoError(t, err)
	after, err := h.polls.Answers(poll.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
