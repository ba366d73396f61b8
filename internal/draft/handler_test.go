package draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/internal/guide"
	"scribe/pkg/llm"
)

// fakeProvider records the last conversation and returns a scripted
// reply.
type fakeProvider struct {
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeProvider) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

type fixedPages []guide.Page

func (p fixedPages) Crawl(ctx context.Context) ([]guide.Page, error) {
	return []guide.Page(p), nil
}

func newTestRouter(provider llm.Provider, cache *guide.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/v1"), NewHandler(provider, guide.NewBuilder(cache, nil), cache, nil))
	return router
}

func disabledCache() *guide.Cache {
	return guide.NewCache(guide.CacheConfig{Enabled: false})
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleTitle(t *testing.T) {
	provider := &fakeProvider{reply: "  Password reset request \n"}
	router := newTestRouter(provider, disabledCache())

	w := postJSON(t, router, "/v1/title", `{"text":"I cannot log in to my account anymore"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp TitleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Title != "Password reset request" {
		t.Errorf("title = %q, want cleaned single line", resp.Title)
	}
	if len(provider.messages) != 2 || provider.messages[0].Role != "system" {
		t.Fatalf("unexpected conversation: %+v", provider.messages)
	}
	if !strings.Contains(provider.messages[1].Content, "cannot log in") {
		t.Errorf("user message missing inquiry text: %q", provider.messages[1].Content)
	}
}

func TestHandleTitleValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing text", `{}`},
		{"blank text", `{"text":"   \n "}`},
		{"too long", `{"text":"` + strings.Repeat("x", maxTitleInputRunes+1) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{reply: "unused"}
			router := newTestRouter(provider, disabledCache())
			w := postJSON(t, router, "/v1/title", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if provider.messages != nil {
				t.Error("provider should not be called for invalid input")
			}
		})
	}
}

func TestHandleTitleProviderFailure(t *testing.T) {
	router := newTestRouter(&fakeProvider{err: errors.New("upstream boom")}, disabledCache())
	w := postJSON(t, router, "/v1/title", `{"text":"hello there"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHandleTitleEmptyReply(t *testing.T) {
	router := newTestRouter(&fakeProvider{reply: "   "}, disabledCache())
	w := postJSON(t, router, "/v1/title", `{"text":"hello there"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHandleDraft(t *testing.T) {
	cache := guide.NewCache(guide.CacheConfig{
		Runner: fixedPages{{
			URL:   "https://help.example.com/guide/password.html",
			Title: "Password reset guide",
			Text:  "open settings and choose reset password to receive a mail",
		}},
		Enabled: true,
		TTL:     time.Hour,
		RootURL: "https://help.example.com/guide/index.html",
	})
	provider := &fakeProvider{reply: "Dear customer,\r\nplease reset your password.\n\n\n\nRegards"}
	router := newTestRouter(provider, cache)

	body := `{
		"question": "How do I reset my password?",
		"template": "Dear customer,\n{body}\nRegards",
		"candidates": [{"question": "password forgotten", "answer": "use the reset link"}]
	}`
	w := postJSON(t, router, "/v1/draft", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp DraftResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if strings.Contains(resp.Answer, "\r") || strings.Contains(resp.Answer, "\n\n\n") {
		t.Errorf("answer not normalized: %q", resp.Answer)
	}

	prompt := provider.messages[1].Content
	for _, want := range []string{
		"How do I reset my password?",
		"Reply template",
		"Dear customer,",
		"Similar past answers",
		"use the reset link",
		"Help guide excerpts",
		"Password reset guide",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestHandleDraftWithoutGuide(t *testing.T) {
	provider := &fakeProvider{reply: "an answer"}
	router := newTestRouter(provider, disabledCache())

	w := postJSON(t, router, "/v1/draft", `{"question":"anything to report?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(provider.messages[1].Content, "Help guide excerpts") {
		t.Error("prompt should omit the guide section when nothing is cached")
	}
}

func TestHandleDraftValidation(t *testing.T) {
	for name, body := range map[string]string{
		"invalid json":   `{"question":`,
		"empty question": `{"question":"  "}`,
	} {
		t.Run(name, func(t *testing.T) {
			router := newTestRouter(&fakeProvider{reply: "x"}, disabledCache())
			if w := postJSON(t, router, "/v1/draft", body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestHandleDraftProviderFailure(t *testing.T) {
	router := newTestRouter(&fakeProvider{err: errors.New("down")}, disabledCache())
	if w := postJSON(t, router, "/v1/draft", `{"question":"hello?"}`); w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestHandleGuideStatus(t *testing.T) {
	router := newTestRouter(&fakeProvider{}, disabledCache())

	req := httptest.NewRequest(http.MethodGet, "/v1/guide/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var status guide.Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.Enabled {
		t.Error("expected enabled=false for disabled guide")
	}
	if status.CachedPages != 0 {
		t.Errorf("expected no cached pages, got %d", status.CachedPages)
	}
}
