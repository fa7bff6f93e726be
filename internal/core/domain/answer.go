package domain

import "time"

// Answer is one recorded vote. (PollID, QuestionID, VoterID) is unique.
type Answer struct {
	ID         int64     `json:"id"`
	PollID     int64     `json:"poll_id"`
	QuestionID int64     `json:"question_id"`
	ChoiceID   int64     `json:"choice_id"`
	VoterID    int64     `json:"voter_id"`
	AnsweredAt time.Time `json:"answered_at"`
}
