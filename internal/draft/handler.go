// Package draft exposes the HTTP API: one-line title generation for
// inquiries and support reply drafting grounded in past answers and
// crawled help-guide context.
package draft

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"scribe/internal/guide"
	"scribe/pkg/llm"
	"scribe/pkg/logging"
)

const (
	maxTitleInputRunes = 4000
	maxQuestionRunes   = 8000
	maxCandidates      = 8
)

// Handler serves the drafting endpoints.
type Handler struct {
	provider llm.Provider
	builder  *guide.Builder
	cache    *guide.Cache
	logger   logging.Logger
}

// NewHandler wires the drafting endpoints to an LLM provider and the
// guide context builder.
func NewHandler(provider llm.Provider, builder *guide.Builder, cache *guide.Cache, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Handler{provider: provider, builder: builder, cache: cache, logger: logger}
}

// RegisterRoutes mounts the drafting endpoints on the given route group.
func RegisterRoutes(routes gin.IRoutes, h *Handler) {
	routes.POST("/title", h.HandleTitle)
	routes.POST("/draft", h.HandleDraft)
	routes.GET("/guide/status", h.HandleGuideStatus)
}

// TitleRequest is the body of POST /v1/title.
type TitleRequest struct {
	Text string `json:"text"`
}

// TitleResponse is the reply of POST /v1/title.
type TitleResponse struct {
	Title string `json:"title"`
}

// DraftCandidate is one past question/answer pair supplied by the caller.
type DraftCandidate struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DraftRequest is the body of POST /v1/draft.
type DraftRequest struct {
	Question   string           `json:"question"`
	Template   string           `json:"template"`
	Candidates []DraftCandidate `json:"candidates"`
}

// DraftResponse is the reply of POST /v1/draft.
type DraftResponse struct {
	Answer string `json:"answer"`
}

// HandleTitle generates a one-line title for an inquiry text.
func (h *Handler) HandleTitle(c *gin.Context) {
	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	text := guide.CleanInline(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}
	if utf8.RuneCountInString(text) > maxTitleInputRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is too long"})
		return
	}

	reply, err := h.provider.Complete(c.Request.Context(), []llm.Message{
		{Role: "system", Content: titleSystemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		h.logger.WithError(err).Error("Title generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Title generation failed"})
		return
	}

	title := guide.CleanInline(reply)
	if title == "" {
		h.logger.Warn("Title generation returned empty output")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Title generation failed"})
		return
	}
	c.JSON(http.StatusOK, TitleResponse{Title: title})
}

// HandleDraft drafts a support reply for a question, grounded in the
// caller's similar past answers and the crawled help-guide context.
func (h *Handler) HandleDraft(c *gin.Context) {
	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	question := guide.NormalizeMultiline(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is too long"})
		return
	}

	template := guide.NormalizeMultiline(req.Template)
	candidates := make([]guide.Candidate, 0, len(req.Candidates))
	for _, cand := range req.Candidates {
		if len(candidates) >= maxCandidates {
			break
		}
		q := guide.NormalizeMultiline(cand.Question)
		a := guide.NormalizeMultiline(cand.Answer)
		if q == "" && a == "" {
			continue
		}
		candidates = append(candidates, guide.Candidate{Question: q, Answer: a})
	}

	contextBlock := h.builder.Build(c.Request.Context(), guide.ContextRequest{
		Question:   question,
		Candidates: candidates,
	})

	reply, err := h.provider.Complete(c.Request.Context(), []llm.Message{
		{Role: "system", Content: draftSystemPrompt},
		{Role: "user", Content: buildDraftPrompt(question, template, candidates, contextBlock)},
	})
	if err != nil {
		h.logger.WithError(err).Error("Draft generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Draft generation failed"})
		return
	}

	answer := guide.NormalizeMultiline(reply)
	if answer == "" {
		h.logger.Warn("Draft generation returned empty output")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Draft generation failed"})
		return
	}
	c.JSON(http.StatusOK, DraftResponse{Answer: answer})
}

// HandleGuideStatus reports the guide cache state. It never triggers a
// crawl.
func (h *Handler) HandleGuideStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.cache.Status())
}
