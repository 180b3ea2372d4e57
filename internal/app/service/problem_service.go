package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

// Problem is the slice of external problem metadata this service consumes:
// starter code per language and the codecoin reward for a first solve.
type Problem struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	StarterCode    map[string]string `json:"starterCode,omitempty"`
	CodecoinReward *int              `json:"codecoinReward,omitempty"`
}

// ProblemService reads problem metadata from the external problems API.
// Unlike the sandbox call, this generic CRUD transport does carry a timeout.
type ProblemService struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewProblemService(baseURL string, log *zap.Logger) *ProblemService {
	return &ProblemService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

func (s *ProblemService) GetProblem(ctx context.Context, id string) (*Problem, error) {
	var problem Problem
	if err := s.getJSON(ctx, "/api/problems/"+id, &problem); err != nil {
		return nil, err
	}
	if problem.ID == "" {
		problem.ID = id
	}
	return &problem, nil
}

// GetTestCases fetches the problem's judging cases. The collaborator's
// field name is expectedOutput; it maps onto the editor's expected field.
func (s *ProblemService) GetTestCases(ctx context.Context, id string) ([]model.TestCase, error) {
	var payload struct {
		TestCases []struct {
			Input          string `json:"input"`
			ExpectedOutput string `json:"expectedOutput"`
		} `json:"testCases"`
	}
	if err := s.getJSON(ctx, "/api/problems/"+id+"/testcases", &payload); err != nil {
		return nil, err
	}

	cases := make([]model.TestCase, len(payload.TestCases))
	for i, tc := range payload.TestCases {
		cases[i] = model.TestCase{Input: tc.Input, Expected: tc.ExpectedOutput}
	}
	return cases, nil
}

func (s *ProblemService) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return common.Errorf("failed to build problems request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("problems API unreachable", zap.String("path", path), zap.Error(err))
		return common.Errorf("problems API unreachable: %w", common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return common.Errorf("problem metadata %s: %w", path, common.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return common.Errorf("problems API returned status %d: %w", resp.StatusCode, common.ErrServiceUnavailable)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return common.Errorf("failed to decode problems response: %w", err)
	}
	return nil
}

// StarterFor resolves the problem's starter code for a language through the
// case-insensitive alias table (cpp/c++, python/py, javascript/js/node).
func (p *Problem) StarterFor(lang model.SourceLanguage) (string, bool) {
	for key, code := range p.StarterCode {
		if alias, ok := model.ParseLanguage(key); ok && alias == lang {
			return code, true
		}
	}
	return "", false
}

// ResolveStarter returns the code the editor buffer should hold after
// loading a problem. Problem starter code is applied only while the buffer
// is still the unmodified built-in template; user edits are never
// overwritten.
func ResolveStarter(p *Problem, lang model.SourceLanguage, buffer string) (code string, applied bool) {
	if !model.IsDefaultTemplate(lang, buffer) {
		return buffer, false
	}
	starter, ok := p.StarterFor(lang)
	if !ok {
		return buffer, false
	}
	return starter, true
}
