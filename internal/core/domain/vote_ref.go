package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const voteRefTag = "vote"

// VoteRef identifies a choice on the wire as "vote:<poll>:<question>:<choice>".
type VoteRef struct {
	PollID     int64
	QuestionID int64
	ChoiceID   int64
}

func (r VoteRef) String() string {
	return fmt.Sprintf("%s:%d:%d:%d", voteRefTag, r.PollID, r.QuestionID, r.ChoiceID)
}

func ParseVoteRef(s string) (VoteRef, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 || parts[0] != voteRefTag {
		return VoteRef{}, fmt.Errorf("%w: %q", ErrMalformedVote, s)
	}

	var ids [3]int64
	for i, p := range parts[1:] {
		id, err := parsePositiveID(p)
		if err != nil {
			return VoteRef{}, fmt.Errorf("%w: %q", ErrMalformedVote, s)
		}
		ids[i] = id
	}

	return VoteRef{PollID: ids[0], QuestionID: ids[1], ChoiceID: ids[2]}, nil
}

func parsePositiveID(s string) (int64, error) {
	// ParseInt accepts a leading sign; the wire format does not.
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, strconv.ErrSyntax
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
