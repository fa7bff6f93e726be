package http

import (
	"encoding/json"
	"net/http"

	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Data      string `json:"data"`
	ChannelID int64  `json:"channel_id"`
}

type voteResponse struct {
	AnswerID int64  `json:"answer_id"`
	Message  string `json:"message"`
}

// Vote godoc
// @Summary      Records a button press relayed by the messaging transport
// @Description  Body carries the vote reference ("vote:<poll>:<question>:<choice>") and the voter's channel id.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400,403,404,409
// @Router       /api/votes [post]
func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.service.Vote(r.Context(), ports.VoteInput{
		Data:      req.Data,
		ChannelID: req.ChannelID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voteResponse{
		AnswerID: answer.ID,
		Message:  "Vote recorded. Thank you!",
	})
}
