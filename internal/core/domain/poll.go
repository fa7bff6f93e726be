package domain

import (
	"math"
	"time"
)

const (
	MinParticipants = 3
	MinQuestions    = 1
	MaxQuestions    = 3
	MinChoices      = 2
	MaxChoices      = 4

	DefaultDeadline = 5 * time.Minute

	// MaxDeadlineMinutes is the largest minute count a time.Duration holds.
	MaxDeadlineMinutes = math.MaxInt64 / int64(time.Minute)
)

type PollStatus string

const (
	PollStatusActive PollStatus = "ACTIVE"
	PollStatusClosed PollStatus = "CLOSED"
)

type Poll struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	CreatorID int64      `json:"creator_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Status    PollStatus `json:"status"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID      int64    `json:"id"`
	PollID  int64    `json:"poll_id"`
	Text    string   `json:"text"`
	Order   int      `json:"order"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}

// QuestionDraft is authoring input: a question with its choices, before
// any ids are assigned.
type QuestionDraft struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

func (p Poll) IsActive() bool {
	return p.Status == PollStatusActive
}

// Question returns the question with the given id, if it belongs to the poll.
func (p Poll) Question(id int64) (Question, bool) {
	for _, q := range p.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (q Question) HasChoice(id int64) bool {
	for _, c := range q.Choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers never share slices with the store.
func (p Poll) Clone() Poll {
	c := p
	if p.ExpiresAt != nil {
		exp := *p.ExpiresAt
		c.ExpiresAt = &exp
	}
	c.Questions = make([]Question, len(p.Questions))
	for i, q := range p.Questions {
		q.Choices = append([]Choice(nil), q.Choices...)
		c.Questions[i] = q
	}
	return c
}

// ValidateDrafts checks the question/choice shape rules for poll authoring.
func ValidateDrafts(questions []QuestionDraft) error {
	if len(questions) < MinQuestions || len(questions) > MaxQuestions {
		return ErrInvalidQuestionCount
	}
	for _, q := range questions {
		if len(q.Choices) < MinChoices || len(q.Choices) > MaxChoices {
			return ErrInvalidChoiceCount
		}
	}
	return nil
}
