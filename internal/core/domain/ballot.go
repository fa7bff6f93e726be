package domain

type BallotChoice struct {
	Text    string `json:"text"`
	VoteRef string `json:"vote_ref"`
}

type BallotQuestion struct {
	QuestionID int64          `json:"question_id"`
	Text       string         `json:"text"`
	Choices    []BallotChoice `json:"choices"`
}

// Ballot is what the messaging transport renders for each participant.
type Ballot struct {
	PollID    int64            `json:"poll_id"`
	Title     string           `json:"title"`
	Questions []BallotQuestion `json:"questions"`
}

func (p Poll) Ballot() Ballot {
	b := Ballot{PollID: p.ID, Title: p.Title, Questions: make([]BallotQuestion, 0, len(p.Questions))}
	for _, q := range p.Questions {
		bq := BallotQuestion{QuestionID: q.ID, Text: q.Text, Choices: make([]BallotChoice, 0, len(q.Choices))}
		for _, c := range q.Choices {
			ref := VoteRef{PollID: p.ID, QuestionID: q.ID, ChoiceID: c.ID}
			bq.Choices = append(bq.Choices, BallotChoice{Text: c.Text, VoteRef: ref.String()})
		}
		b.Questions = append(b.Questions, bq)
	}
	return b
}
