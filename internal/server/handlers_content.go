package server

import (
	"net/http"

	"github.com/marcus/studyplan/internal/content"
	"github.com/marcus/studyplan/internal/plan"
)

// ---------------------------------------------------------------------
// Content Handlers
// ---------------------------------------------------------------------

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.market.Fetch(r.Context()))
}

func (s *Server) handleCodingProblems(w http.ResponseWriter, r *http.Request) {
	// Unknown difficulty values fall back to the full set.
	difficulty := r.URL.Query().Get("difficulty")
	if !plan.ValidDifficulty(difficulty) {
		difficulty = string(plan.DifficultyAll)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"difficulty": difficulty,
		"problems":   content.CodingProblems(difficulty),
	})
}
