package http

import (
	"encoding/json"
	"net/http"

	"github.com/vncsmyrnk/pollbot/internal/core/domain"
	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		service: service,
	}
}

type registerRequest struct {
	ChannelID   int64  `json:"channel_id"`
	DisplayName string `json:"display_name"`
}

type registerResponse struct {
	Participant   domain.Participant `json:"participant"`
	Created       bool               `json:"created"`
	CommunitySize int                `json:"community_size"`
}

type listParticipantsResponse struct {
	Count        int                  `json:"count"`
	Participants []domain.Participant `json:"participants"`
}

// Register godoc
// @Summary      Registers a participant on first contact
// @Description  Returns 201 for a new participant and 200 when the channel was already registered.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Success      200,201
// @Failure      400
// @Router       /api/participants [post]
func (h *ParticipantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ChannelID == 0 {
		http.Error(w, "missing channel id", http.StatusBadRequest)
		return
	}

	reg := h.service.Register(r.Context(), ports.RegisterInput{
		ChannelID:   req.ChannelID,
		DisplayName: req.DisplayName,
	})

	status := http.StatusOK
	if reg.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, registerResponse{
		Participant:   reg.Participant,
		Created:       reg.Created,
		CommunitySize: reg.CommunitySize,
	})
}

// List godoc
// @Summary      Lists registered participants
// @Tags         participants
// @Produce      json
// @Success      200
// @Router       /api/participants [get]
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants := h.service.List(r.Context())
	writeJSON(w, http.StatusOK, listParticipantsResponse{
		Count:        len(participants),
		Participants: participants,
	})
}
