package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

const archiveTimeout = 10 * time.Second

// ArchiveService is the poll close listener: it computes final results on its
// own goroutine and, when an archive is configured, stores them.
type ArchiveService struct {
	results ports.ResultsService
	archive ports.ResultArchive
	clock   ports.Clock
	logger  *slog.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewArchiveService builds the listener. archive may be nil, in which case
// final results are only logged.
func NewArchiveService(results ports.ResultsService, archive ports.ResultArchive, clock ports.Clock, logger *slog.Logger) *ArchiveService {
	if clock == nil {
		clock = SystemClock()
	}
	return &ArchiveService{
		results: results,
		archive: archive,
		clock:   clock,
		logger:  resolveLogger(logger),
	}
}

func (s *ArchiveService) OnPollClosed(poll domain.Poll) {
	closedAt := s.clock.Now()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.logger.Warn("archiver stopped, dropping closed poll", "poll_id", poll.ID)
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := s.archivePoll(ctx, poll, closedAt); err != nil {
			s.logger.Error("failed to archive poll results", "poll_id", poll.ID, "error", err)
		}
	}()
}

// Wait stops accepting closed polls and blocks until every pending archive
// job has finished. Polls closed afterwards, for instance by a deadline timer
// already firing during shutdown, are logged and dropped.
func (s *ArchiveService) Wait() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *ArchiveService) archivePoll(ctx context.Context, poll domain.Poll, closedAt time.Time) error {
	results, err := s.results.Compute(ctx, poll.ID)
	if err != nil {
		return fmt.Errorf("failed to compute results: %w", err)
	}

	for _, q := range results.Questions {
		attrs := []any{"poll_id", poll.ID, "question_id", q.QuestionID, "total_answers", q.TotalAnswers}
		if len(q.Choices) > 0 && q.TotalAnswers > 0 {
			attrs = append(attrs, "leading_choice", q.Choices[0].Text, "leading_percentage", q.Choices[0].Percentage)
		}
		s.logger.Info("final results", attrs...)
	}

	if s.archive == nil {
		return nil
	}

	archived := &ports.ArchivedPoll{
		ID:       uuid.New(),
		PollID:   poll.ID,
		Title:    poll.Title,
		ClosedAt: closedAt,
		Results:  results,
	}
	if err := s.archive.Save(ctx, archived); err != nil {
		return fmt.Errorf("failed to save archive %s: %w", archived.ID, err)
	}

	s.logger.Info("poll results archived", "poll_id", poll.ID, "archive_id", archived.ID)
	return nil
}
