package domain

type ChoiceResult struct {
	ChoiceID   int64   `json:"choice_id"`
	Text       string  `json:"choice_text"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type QuestionResult struct {
	QuestionID   int64          `json:"question_id"`
	Text         string         `json:"text"`
	Order        int            `json:"order"`
	TotalAnswers int64          `json:"total_answers"`
	Choices      []ChoiceResult `json:"choices"`
}

// PollResults holds per-question tallies in authoring order.
type PollResults struct {
	PollID    int64            `json:"poll_id"`
	Title     string           `json:"title"`
	Status    PollStatus       `json:"status"`
	Questions []QuestionResult `json:"questions"`
}

func (r PollResults) ByQuestion() map[int64][]ChoiceResult {
	out := make(map[int64][]ChoiceResult, len(r.Questions))
	for _, q := range r.Questions {
		out[q.QuestionID] = q.Choices
	}
	return out
}
