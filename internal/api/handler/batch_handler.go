package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"codearena/internal/app/service"
	"codearena/internal/common"
	"codearena/internal/domain/model"
	"codearena/internal/judge/normalize"
)

type BatchHandler struct {
	batchService *service.BatchService
}

func NewBatchHandler(bs *service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: bs}
}

func (h *BatchHandler) RegisterRoutes(r chi.Router) {
	r.Post("/run/batch", h.runBatch)
	r.Post("/testcases/import", h.importTestCases)
	r.Post("/testcases/export", h.exportTestCases)
}

type batchRequest struct {
	SessionID        string           `json:"sessionId"`
	Language         string           `json:"language"`
	Code             string           `json:"code"`
	TestCases        []model.TestCase `json:"testcases"`
	IgnoreWhitespace *bool            `json:"ignoreWhitespace,omitempty"`
	IgnoreCase       bool             `json:"ignoreCase,omitempty"`
}

func (h *BatchHandler) runBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
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

	opts := normalize.Options{IgnoreWhitespace: true, IgnoreCase: req.IgnoreCase}
	if req.IgnoreWhitespace != nil {
		opts.IgnoreWhitespace = *req.IgnoreWhitespace
	}

	outcome, err := h.batchService.Run(r.Context(), service.BatchRequest{
		SessionID: req.SessionID,
		Language:  lang,
		Code:      req.Code,
		Cases:     req.TestCases,
		Opts:      opts,
	}, nil)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, outcome)
}

// importTestCases validates an uploaded document and returns the parsed
// sequence. A malformed document is rejected without touching any existing
// sequence on the client.
func (h *BatchHandler) importTestCases(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}
	defer r.Body.Close()

	cases, err := model.ImportTestCases(data)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTestCaseFile) {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid test case file format")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"testcases": cases})
}

type exportRequest struct {
	ProblemID *string          `json:"problemId"`
	TestCases []model.TestCase `json:"testcases"`
}

func (h *BatchHandler) exportTestCases(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	doc, err := model.ExportTestCases(req.ProblemID, req.TestCases, time.Now())
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to serialize test cases")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename(req.ProblemID)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
