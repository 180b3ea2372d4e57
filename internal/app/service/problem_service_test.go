package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

func newProblemService(t *testing.T, handler http.HandlerFunc) *ProblemService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProblemService(srv.URL, zap.NewNop())
}

func TestGetProblem(t *testing.T) {
	svc := newProblemService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/problems/two-sum" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"id":"two-sum","title":"Two Sum","codecoinReward":50}`)
	})

	p, err := svc.GetProblem(context.Background(), "two-sum")
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if p.Title != "Two Sum" {
		t.Errorf("title = %q", p.Title)
	}
	if p.CodecoinReward == nil || *p.CodecoinReward != 50 {
		t.Errorf("codecoinReward = %v, want 50", p.CodecoinReward)
	}
}

func TestGetProblemNotFound(t *testing.T) {
	svc := newProblemService(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	_, err := svc.GetProblem(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProblemUpstreamFailure(t *testing.T) {
	svc := newProblemService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	_, err := svc.GetProblem(context.Background(), "p")
	if !errors.Is(err, common.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGetTestCasesMapsExpectedOutput(t *testing.T) {
	svc := newProblemService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/problems/sum/testcases" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"testCases":[{"input":"2 3","expectedOutput":"5"},{"input":"1 1","expectedOutput":"2"}]}`)
	})

	cases, err := svc.GetTestCases(context.Background(), "sum")
	if err != nil {
		t.Fatalf("GetTestCases: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	if cases[0].Input != "2 3" || cases[0].Expected != "5" {
		t.Errorf("case 0 = %+v", cases[0])
	}
}

func TestStarterForResolvesAliases(t *testing.T) {
	p := &Problem{StarterCode: map[string]string{
		"c++":  "// cpp starter",
		"JS":   "// js starter",
		"py":   "# py starter",
	}}

	cases := []struct {
		lang model.SourceLanguage
		want string
		ok   bool
	}{
		{model.LangCpp, "// cpp starter", true},
		{model.LangJavaScript, "// js starter", true},
		{model.LangPython, "# py starter", true},
		{model.LangJava, "", false},
	}
	for _, c := range cases {
		got, ok := p.StarterFor(c.lang)
		if got != c.want || ok != c.ok {
			t.Errorf("StarterFor(%s) = %q, %v; want %q, %v", c.lang, got, ok, c.want, c.ok)
		}
	}
}

func TestResolveStarterOnlyReplacesDefaultTemplate(t *testing.T) {
	p := &Problem{StarterCode: map[string]string{"python": "# starter"}}

	// Unmodified built-in template is replaced.
	code, applied := ResolveStarter(p, model.LangPython, model.DefaultTemplate(model.LangPython))
	if !applied || code != "# starter" {
		t.Errorf("default buffer must take the starter, got %q applied=%v", code, applied)
	}

	// Edited buffers are left alone.
	edited := "print('my work in progress')"
	code, applied = ResolveStarter(p, model.LangPython, edited)
	if applied || code != edited {
		t.Errorf("edited buffer must never be overwritten, got %q applied=%v", code, applied)
	}

	// No starter for the language keeps the template.
	tmpl := model.DefaultTemplate(model.LangJava)
	code, applied = ResolveStarter(p, model.LangJava, tmpl)
	if applied || code != tmpl {
		t.Errorf("missing starter must keep the buffer, got %q applied=%v", code, applied)
	}
}
