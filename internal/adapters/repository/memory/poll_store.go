package memory

import (
	"sync"
	"sync/atomic"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type answerKey struct {
	questionID int64
	voterID    int64
}

// ledger is the append-only answer list of one poll. claimed holds the
// (question, voter) keys already taken, so the duplicate check for one key
// never waits on another key.
type ledger struct {
	claimed sync.Map

	mu      sync.RWMutex
	answers []domain.Answer
}

type pollEntry struct {
	poll   domain.Poll
	ledger *ledger
}

// pollStore keeps every poll of the process lifetime. mu guards the poll
// table, the active slot and each poll's status; answer appends hold it
// for reading so a close cannot interleave with an in-flight append.
type pollStore struct {
	mu       sync.RWMutex
	polls    map[int64]*pollEntry
	activeID int64

	nextPollID     atomic.Int64
	nextQuestionID atomic.Int64
	nextChoiceID   atomic.Int64
	nextAnswerID   atomic.Int64
}

func NewPollStore() ports.PollRepository {
	return &pollStore{
		polls: make(map[int64]*pollEntry),
	}
}

func (s *pollStore) Create(input ports.NewPoll) (domain.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID != 0 {
		return domain.Poll{}, domain.ErrActivePollExists
	}

	expiresAt := input.ExpiresAt
	poll := domain.Poll{
		ID:        s.nextPollID.Add(1),
		Title:     input.Title,
		CreatorID: input.CreatorID,
		CreatedAt: input.CreatedAt,
		ExpiresAt: &expiresAt,
		Status:    domain.PollStatusActive,
		Questions: make([]domain.Question, 0, len(input.Questions)),
	}

	for i, draft := range input.Questions {
		q := domain.Question{
			ID:      s.nextQuestionID.Add(1),
			PollID:  poll.ID,
			Text:    draft.Text,
			Order:   i + 1,
			Choices: make([]domain.Choice, 0, len(draft.Choices)),
		}
		for _, text := range draft.Choices {
			q.Choices = append(q.Choices, domain.Choice{
				ID:         s.nextChoiceID.Add(1),
				QuestionID: q.ID,
				Text:       text,
			})
		}
		poll.Questions = append(poll.Questions, q)
	}

	s.polls[poll.ID] = &pollEntry{poll: poll, ledger: &ledger{}}
	s.activeID = poll.ID

	return poll.Clone(), nil
}

func (s *pollStore) GetByID(id int64) (domain.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.polls[id]
	if !ok {
		return domain.Poll{}, domain.ErrPollNotFound
	}
	return e.poll.Clone(), nil
}

func (s *pollStore) Active() (domain.Poll, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeID == 0 {
		return domain.Poll{}, false
	}
	return s.polls[s.activeID].poll.Clone(), true
}

func (s *pollStore) MarkClosed(id int64) (domain.Poll, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.polls[id]
	if !ok {
		return domain.Poll{}, false, domain.ErrPollNotFound
	}
	if e.poll.Status != domain.PollStatusActive {
		return e.poll.Clone(), false, nil
	}

	e.poll.Status = domain.PollStatusClosed
	if s.activeID == id {
		s.activeID = 0
	}
	return e.poll.Clone(), true, nil
}

func (s *pollStore) AppendAnswer(answer domain.Answer) (domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.polls[answer.PollID]
	if !ok {
		return domain.Answer{}, domain.ErrPollNotFound
	}
	if e.poll.Status != domain.PollStatusActive {
		return domain.Answer{}, domain.ErrPollNotActive
	}

	key := answerKey{questionID: answer.QuestionID, voterID: answer.VoterID}
	if _, taken := e.ledger.claimed.LoadOrStore(key, struct{}{}); taken {
		return domain.Answer{}, domain.ErrDuplicateVote
	}

	e.ledger.mu.Lock()
	answer.ID = s.nextAnswerID.Add(1)
	e.ledger.answers = append(e.ledger.answers, answer)
	e.ledger.mu.Unlock()

	return answer, nil
}

func (s *pollStore) Answers(pollID int64) ([]domain.Answer, error) {
	s.mu.RLock()
	e, ok := s.polls[pollID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrPollNotFound
	}

	e.ledger.mu.RLock()
	defer e.ledger.mu.RUnlock()
	return append([]domain.Answer(nil), e.ledger.answers...), nil
}
