package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"codearena/internal/app/service"
	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type ProblemHandler struct {
	problemService *service.ProblemService
}

func NewProblemHandler(ps *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: ps}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{problemID}", h.getProblem)
	r.Get("/{problemID}/testcases", h.getTestCases)
	r.Post("/{problemID}/starter", h.resolveStarter)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	problem, err := h.problemService.GetProblem(r.Context(), chi.URLParam(r, "problemID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) getTestCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.problemService.GetTestCases(r.Context(), chi.URLParam(r, "problemID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"testCases": cases})
}

type starterRequest struct {
	Language string `json:"language"`
	Buffer   string `json:"buffer"`
}

type starterResponse struct {
	Code    string `json:"code"`
	Applied bool   `json:"applied"`
}

// resolveStarter decides what the editor buffer should hold after a problem
// loads: starter code replaces the buffer only while it is still the
// built-in default template.
func (h *ProblemHandler) resolveStarter(w http.ResponseWriter, r *http.Request) {
	var req starterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	lang, ok := model.ParseLanguage(req.Language)
	if !ok {
		common.RespondWithError(w, http.StatusBadRequest, "Unknown language: "+req.Language)
		return
	}

	problem, err := h.problemService.GetProblem(r.Context(), chi.URLParam(r, "problemID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	code, applied := service.ResolveStarter(problem, lang, req.Buffer)
	common.RespondWithJSON(w, http.StatusOK, starterResponse{Code: code, Applied: applied})
}
