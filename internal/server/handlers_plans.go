package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/marcus/studyplan/internal/server/middleware"
	"github.com/marcus/studyplan/internal/types"
)

// ---------------------------------------------------------------------
// Plan Handlers
// ---------------------------------------------------------------------

// authedPlanID extracts the authenticated user ID and the {id} path value.
// Writes the error response and returns false when either is missing.
func (s *Server) authedPlanID(w http.ResponseWriter, r *http.Request) (planID, userID uuid.UUID, ok bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	planID, err = uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid plan ID")
		return uuid.Nil, uuid.Nil, false
	}
	return planID, userID, true
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	plans, err := s.planService.List(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if plans == nil {
		plans = []*types.PlanView{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	view, err := s.planService.Get(r.Context(), planID, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	email := ""
	if req.SendEmail {
		user, err := s.db.GetUser(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if user != nil {
			email = user.Email
		}
	}

	resp, err := s.planService.Generate(r.Context(), userID, email, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) handleMarkMonth(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	var req types.MarkMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	view, err := s.planService.MarkMonth(r.Context(), planID, userID, req.Month, completed)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	var req types.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	view, err := s.planService.UpdateDifficulty(r.Context(), planID, userID, req.CodingDifficulty)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleAppendResources(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	var req types.AppendResourcesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	view, err := s.planService.AppendResources(r.Context(), planID, userID, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) handleUpdateCodingProgress(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	var req types.CodingProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	view, err := s.planService.UpdateCodingProgress(r.Context(), planID, userID, &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"progress": view})
}

func (s *Server) handleCodingProgress(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	views, err := s.planService.CodingProgress(r.Context(), planID, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if views == nil {
		views = []*types.CodingProgressView{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"progress": views})
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, userID, ok := s.authedPlanID(w, r)
	if !ok {
		return
	}

	if err := s.planService.Delete(r.Context(), planID, userID); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Plan deleted"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := s.planService.Stats(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}
