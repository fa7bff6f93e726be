package memory

import (
	"sync"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type participantRegistry struct {
	mu     sync.RWMutex
	byChan map[int64]domain.Participant
	nextID int64
	now    func() time.Time
}

func NewParticipantRegistry() ports.ParticipantRegistry {
	return &participantRegistry{
		byChan: make(map[int64]domain.Participant),
		now:    time.Now,
	}
}

func (r *participantRegistry) RegisterIfAbsent(channelID int64, displayName string) (domain.Participant, bool) {
	if p, ok := r.GetByChannelID(channelID); ok {
		return p, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.byChan[channelID]; ok {
		return p, false
	}

	r.nextID++
	p := domain.Participant{
		ID:          r.nextID,
		ChannelID:   channelID,
		DisplayName: displayName,
		JoinedAt:    r.now(),
	}
	r.byChan[channelID] = p
	return p, true
}

func (r *participantRegistry) GetByChannelID(channelID int64) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byChan[channelID]
	return p, ok
}

func (r *participantRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byChan)
}

func (r *participantRegistry) All() []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Participant, 0, len(r.byChan))
	for _, p := range r.byChan {
		out = append(out, p)
	}
	return out
}
