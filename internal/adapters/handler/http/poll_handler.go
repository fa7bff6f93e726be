package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

// Drafter produces poll questions for a topic.
type Drafter interface {
	Draft(ctx context.Context, topic string) ([]domain.QuestionDraft, error)
}

type PollHandler struct {
	service ports.PollService
	results ports.ResultsService
	drafter Drafter
}

func NewPollHandler(service ports.PollService, results ports.ResultsService, drafter Drafter) *PollHandler {
	return &PollHandler{
		service: service,
		results: results,
		drafter: drafter,
	}
}

type createPollRequest struct {
	Title           string                 `json:"title"`
	CreatorID       int64                  `json:"creator_id"`
	Questions       []domain.QuestionDraft `json:"questions"`
	DeadlineMinutes *int                   `json:"deadline_minutes,omitempty"`
}

type draftRequest struct {
	Topic string `json:"topic"`
}

// CreatePoll godoc
// @Summary      Creates the active poll
// @Description  Fails with 400 on invalid content or too few participants and 409 while another poll is active.
// @Tags         polls
// @Accept       json
// @Success      201
// @Router       /api/polls [post]
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreatePollInput{
		Title:     req.Title,
		CreatorID: req.CreatorID,
		Questions: req.Questions,
	}
	if req.DeadlineMinutes != nil {
		if *req.DeadlineMinutes <= 0 || int64(*req.DeadlineMinutes) > domain.MaxDeadlineMinutes {
			writeError(w, domain.ErrInvalidDeadline)
			return
		}
		input.Deadline = time.Duration(*req.DeadlineMinutes) * time.Minute
	}

	poll, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, poll)
}

// GetActivePoll godoc
// @Summary      Returns the active poll
// @Tags         polls
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /api/polls/active [get]
func (h *PollHandler) GetActivePoll(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.service.ActivePoll(r.Context())
	if !ok {
		http.Error(w, "no active poll", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

// GetActiveBallot godoc
// @Summary      Returns the active poll with a vote reference per choice
// @Description  Used by the messaging transport to render one button per choice.
// @Tags         polls
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /api/polls/active/ballot [get]
func (h *PollHandler) GetActiveBallot(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.service.ActivePoll(r.Context())
	if !ok {
		http.Error(w, "no active poll", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, poll.Ballot())
}

// GetPoll godoc
// @Summary      Returns a poll by id
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200
// @Failure      400,404
// @Router       /api/polls/{id} [get]
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	poll, err := h.service.GetPoll(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

// GetResults godoc
// @Summary      Computes per-choice counts and percentages of a poll
// @Tags         polls
// @Produce      json
// @Param        id   path      int  true  "Poll ID"
// @Success      200
// @Failure      400,404
// @Router       /api/polls/{id}/results [get]
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	results, err := h.results.Compute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ClosePoll godoc
// @Summary      Closes a poll before its deadline
// @Description  Closing an already closed poll is a no-op.
// @Tags         polls
// @Param        id   path      int  true  "Poll ID"
// @Success      204
// @Failure      400,404
// @Router       /api/polls/{id}/close [post]
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	id, ok := pollIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Close(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DraftQuestions godoc
// @Summary      Drafts poll questions for a topic using the text generator
// @Tags         polls
// @Accept       json
// @Success      200
// @Failure      502
// @Router       /api/polls/draft [post]
func (h *PollHandler) DraftQuestions(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	drafts, err := h.drafter.Draft(r.Context(), req.Topic)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": drafts})
}

func pollIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid poll id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
