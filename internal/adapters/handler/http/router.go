package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, participantHandler *ParticipantHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/polls", func(r chi.Router) {
			r.Post("/", pollHandler.CreatePoll)
			r.Post("/draft", pollHandler.DraftQuestions)
			r.Get("/active", pollHandler.GetActivePoll)
			r.Get("/active/ballot", pollHandler.GetActiveBallot)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Get("/{id}/results", pollHandler.GetResults)
			r.Post("/{id}/close", pollHandler.ClosePoll)
		})

		r.Post("/votes", voteHandler.Vote)

		r.Route("/participants", func(r chi.Router) {
			r.Get("/", participantHandler.List)
			r.Post("/", participantHandler.Register)
		})
	})

	return r
}
