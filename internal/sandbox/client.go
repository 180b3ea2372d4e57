// Package sandbox is the HTTP client for the external compile-and-run
// service. The sandbox is an opaque collaborator: one POST per execution,
// no retries. Retry policy, where it exists, belongs to the generic CRUD
// transport, not to this call.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"codearena/internal/domain/model"
)

// Request is one compile-and-run payload.
type Request struct {
	Code  string               `json:"code"`
	Input string               `json:"input"`
	Lang  model.SourceLanguage `json:"lang"`
}

// Result is the structured outcome of one execution. Output is the
// authoritative combined text; Stdout and Stderr are best-effort splits
// used only by the diagnostic log view. Nil ExitCode means the run never
// produced one (transport failure).
type Result struct {
	Output    string `json:"output"`
	Stdout    *string `json:"stdout,omitempty"`
	Stderr    *string `json:"stderr,omitempty"`
	ExitCode  *int    `json:"exitCode,omitempty"`
	RuntimeMs *int    `json:"runtimeMs,omitempty"`
	MemoryKb  *int    `json:"memoryKb,omitempty"`
}

// Client talks to the sandbox endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient builds a sandbox client. baseURL may be empty for same-origin
// deployments. The shared http.Client carries no timeout: a hung sandbox
// call blocks its case until the caller's context ends.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// Execute runs one compile-and-run request. On transport failure it returns
// a synthetic Result whose output is the error message with nil exit code,
// runtime and memory, together with the error so callers can force the pass
// state to false. Java source is auto-wrapped before every request.
func (c *Client) Execute(ctx context.Context, req Request) (Result, error) {
	if req.Lang == model.LangJava {
		req.Code = WrapJavaSource(req.Code)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Result{Output: err.Error()}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compile", bytes.NewReader(body))
	if err != nil {
		return Result{Output: err.Error()}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn("sandbox request failed", zap.Error(err))
		return Result{Output: err.Error()}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("sandbox response unreadable", zap.Error(err))
		return Result{Output: err.Error()}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("sandbox returned status %d", resp.StatusCode)
		c.log.Warn("sandbox request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("lang", string(req.Lang)))
		return Result{Output: err.Error()}, err
	}

	return decodeResult(raw), nil
}

// decodeResult parses the sandbox response leniently: anything that is not
// JSON shaped like {"output": string} has its raw body used as the output
// text instead of failing the run.
func decodeResult(raw []byte) Result {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Result{Output: string(raw)}
	}
	var output string
	if field, ok := probe["output"]; !ok || json.Unmarshal(field, &output) != nil {
		return Result{Output: string(raw)}
	}

	res := Result{Output: output}
	var s string
	if field, ok := probe["stdout"]; ok && json.Unmarshal(field, &s) == nil {
		stdout := s
		res.Stdout = &stdout
	}
	if field, ok := probe["stderr"]; ok && json.Unmarshal(field, &s) == nil {
		stderr := s
		res.Stderr = &stderr
	}
	var n int
	if field, ok := probe["exitCode"]; ok && json.Unmarshal(field, &n) == nil {
		code := n
		res.ExitCode = &code
	}
	if field, ok := probe["runtimeMs"]; ok && json.Unmarshal(field, &n) == nil {
		ms := n
		res.RuntimeMs = &ms
	}
	if field, ok := probe["memoryKb"]; ok && json.Unmarshal(field, &n) == nil {
		kb := n
		res.MemoryKb = &kb
	}
	return res
}
