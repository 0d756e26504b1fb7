package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/joestump/gator-probe/internal/api"
	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/llm"
	"github.com/joestump/gator-probe/internal/prompt"
	"github.com/joestump/gator-probe/internal/testutil"
)

// fakeGenerator records the last request and replies with a fixed response or error.
type fakeGenerator struct {
	mu    sync.Mutex
	last  llm.Request
	calls int
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{
		ID:           "msg_1",
		Content:      "Show me the money.",
		Model:        "claude-test",
		Usage:        llm.Usage{InputTokens: 12, OutputTokens: 4},
		FinishReason: "end_turn",
	}, nil
}

// testEnv holds the router and collaborators used by API tests.
type testEnv struct {
	Router    http.Handler
	Dir       string
	Catalog   *catalog.Loader
	Generator *fakeGenerator
}

// newTestEnv builds a catalog in a temp dir and wires the API router over it
// with a real assembler and a fake generator.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := testutil.NewCatalogDir(t)

	cat := catalog.New(dir)
	gen := &fakeGenerator{}
	router := api.NewAPIRouter(api.Deps{
		Assembler:      prompt.New(cat),
		Generator:      gen,
		Catalog:        cat,
		MaxInputLength: 40,
	})
	return &testEnv{Router: router, Dir: dir, Catalog: cat, Generator: gen}
}

// envelope is the decoded shape shared by success and error responses.
type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details map[string]any  `json:"details"`
	Data    json.RawMessage `json:"data"`
}

func (env *testEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var out envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec, out
}
