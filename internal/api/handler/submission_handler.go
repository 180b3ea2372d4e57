package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"codearena/internal/app/service"
	"codearena/internal/common"
)

type SubmissionHandler struct {
	contestService *service.ContestService
}

func NewSubmissionHandler(cs *service.ContestService) *SubmissionHandler {
	return &SubmissionHandler{contestService: cs}
}

// RegisterRoutes wires both contest request kinds: /execute runs for
// feedback only, /submissions persists a graded attempt.
func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/execute", h.execute)
	r.Post("/submissions", h.submit)
	r.Get("/submissions", h.listSubmissions)
	r.Get("/submissions/{submissionID}", h.getSubmission)
}

func (h *SubmissionHandler) decodeContestRequest(w http.ResponseWriter, r *http.Request) (service.ContestRequest, bool) {
	var req service.ContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	defer r.Body.Close()

	if req.ProblemID == "" || req.UserID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "problemId and userId are required")
		return req, false
	}
	return req, true
}

func (h *SubmissionHandler) execute(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContestRequest(w, r)
	if !ok {
		return
	}
	result, err := h.contestService.Run(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeContestRequest(w, r)
	if !ok {
		return
	}
	outcome, err := h.contestService.Submit(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, outcome)
}

func (h *SubmissionHandler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	contestID := r.URL.Query().Get("contestId")
	if contestID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "contestId is required")
		return
	}
	userID := r.URL.Query().Get("userId")

	subs, err := h.contestService.ListSubmissions(r.Context(), contestID, userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := h.contestService.GetSubmission(r.Context(), chi.URLParam(r, "submissionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, sub)
}
