package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"codearena/internal/app/service"
	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/judge/normalize"
)

type RunHandler struct {
	runService *service.RunService
}

func NewRunHandler(rs *service.RunService) *RunHandler {
	return &RunHandler{runService: rs}
}

func (h *RunHandler) RegisterRoutes(r chi.Router) {
	r.Post("/run", h.run)
	r.Get("/scratch/{session}", h.getScratch)
	r.Put("/scratch/{session}", h.putScratch)
}

type runRequest struct {
	SessionID        string `json:"sessionId"`
	Language         string `json:"language"`
	Code             string `json:"code"`
	Input            string `json:"input"`
	Expected         string `json:"expected"`
	IgnoreWhitespace *bool  `json:"ignoreWhitespace,omitempty"`
	IgnoreCase       bool   `json:"ignoreCase,omitempty"`
}

func (h *RunHandler) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
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
	if req.SessionID == "" {
		common.RespondWithError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	// Whitespace-insensitive comparison is the default; sandbox stdout
	// usually carries a trailing newline the expected text lacks.
	opts := normalize.Options{IgnoreWhitespace: true, IgnoreCase: req.IgnoreCase}
	if req.IgnoreWhitespace != nil {
		opts.IgnoreWhitespace = *req.IgnoreWhitespace
	}

	result, err := h.runService.Run(r.Context(), service.RunRequest{
		SessionID: req.SessionID,
		Language:  lang,
		Code:      req.Code,
		Input:     req.Input,
		Expected:  req.Expected,
		Opts:      opts,
	})
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *RunHandler) getScratch(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")
	pad, err := h.runService.LoadScratch(r.Context(), session)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, pad)
}

func (h *RunHandler) putScratch(w http.ResponseWriter, r *http.Request) {
	session := chi.URLParam(r, "session")

	var pad service.Scratchpad
	if err := json.NewDecoder(r.Body).Decode(&pad); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.runService.SaveScratch(r.Context(), session, pad); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "saved"})
}
