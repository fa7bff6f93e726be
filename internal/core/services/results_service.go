package services

import (
	"context"
	"sort"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type resultsService struct {
	pollRepo ports.PollRepository
}

func NewResultsService(pollRepo ports.PollRepository) ports.ResultsService {
	return &resultsService{
		pollRepo: pollRepo,
	}
}

// Compute tallies the ledger of a poll, active or closed. Every choice is
// listed, zero-vote ones included, ordered by descending count with ties in
// authoring order.
func (s *resultsService) Compute(ctx context.Context, pollID int64) (domain.PollResults, error) {
	poll, err := s.pollRepo.GetByID(pollID)
	if err != nil {
		return domain.PollResults{}, err
	}
	answers, err := s.pollRepo.Answers(pollID)
	if err != nil {
		return domain.PollResults{}, err
	}

	counts := make(map[int64]int64, len(answers))
	totals := make(map[int64]int64, len(poll.Questions))
	for _, a := range answers {
		counts[a.ChoiceID]++
		totals[a.QuestionID]++
	}

	results := domain.PollResults{
		PollID:    poll.ID,
		Title:     poll.Title,
		Status:    poll.Status,
		Questions: make([]domain.QuestionResult, 0, len(poll.Questions)),
	}

	for _, q := range poll.Questions {
		total := totals[q.ID]
		choices := make([]domain.ChoiceResult, 0, len(q.Choices))
		for _, c := range q.Choices {
			count := counts[c.ID]
			percentage := 0.0
			if total > 0 {
				percentage = float64(count) * 100.0 / float64(total)
			}
			choices = append(choices, domain.ChoiceResult{
				ChoiceID:   c.ID,
				Text:       c.Text,
				Count:      count,
				Percentage: percentage,
			})
		}

		sort.SliceStable(choices, func(i, j int) bool {
			return choices[i].Count > choices[j].Count
		})

		results.Questions = append(results.Questions, domain.QuestionResult{
			QuestionID:   q.ID,
			Text:         q.Text,
			Order:        q.Order,
			TotalAnswers: total,
			Choices:      choices,
		})
	}

	return results, nil
}
