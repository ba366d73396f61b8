package guide

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"scribe/pkg/logging"
)

const (
	maxSeedTokens = 24

	titleHitScore = 3
	bodyHitScore  = 1

	maxContextPages      = 4
	fallbackContextPages = 2

	snippetLimit = 540
	snippetLead  = 220

	blockSeparator = "\n\n---\n\n"
)

// Candidate is a past question/answer pair supplied with a draft
// request. Its text contributes seed tokens for relevance scoring.
type Candidate struct {
	Question string
	Answer   string
}

// ContextRequest carries everything the builder scores pages against.
type ContextRequest struct {
	Question   string
	Candidates []Candidate
}

// Builder assembles a help-guide excerpt block for a draft request by
// scoring cached pages against the request's seed tokens.
type Builder struct {
	cache  *Cache
	logger logging.Logger
}

// NewBuilder wires a Builder to the guide cache.
func NewBuilder(cache *Cache, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogger()
	}
	return &Builder{cache: cache, logger: logger}
}

// Build returns a plain-text context block of the most relevant cached
// pages, or an empty string when the guide is disabled or nothing is
// cached. When no page matches the seed tokens, the first pages in
// crawl order are used so the prompt still carries site context.
func (b *Builder) Build(ctx context.Context, req ContextRequest) string {
	pages, stale := b.cache.Get(ctx)
	if len(pages) == 0 {
		contextBuildsTotal.WithLabelValues("empty").Inc()
		return ""
	}

	seeds := seedTokens(req)
	selected := selectPages(pages, seeds)
	if len(selected) == 0 {
		contextBuildsTotal.WithLabelValues("empty").Inc()
		return ""
	}

	blocks := make([]string, 0, len(selected))
	for i, page := range selected {
		snippet := pickSnippet(page.Text, seeds)
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s\n%s", i+1, page.Title, page.URL, snippet))
	}

	contextBuildsTotal.WithLabelValues("built").Inc()
	b.logger.WithFields(logging.Fields{
		"pages": len(selected),
		"seeds": len(seeds),
		"stale": stale,
	}).Debug("Guide context built")
	return strings.Join(blocks, blockSeparator)
}

// seedTokens tokenizes the question plus all candidate text and caps
// the result so one long request cannot dominate scoring cost.
func seedTokens(req ContextRequest) []string {
	var sb strings.Builder
	sb.WriteString(req.Question)
	for _, cand := range req.Candidates {
		sb.WriteString("\n")
		sb.WriteString(cand.Question)
		sb.WriteString("\n")
		sb.WriteString(cand.Answer)
	}

	tokens := Tokenize(sb.String())
	if len(tokens) > maxSeedTokens {
		tokens = tokens[:maxSeedTokens]
	}
	return tokens
}

type scoredPage struct {
	page  Page
	score int
}

// scorePage counts seed token hits: a token found in the title scores
// higher than one found only in the body.
func scorePage(page Page, tokens []string) int {
	title := strings.ToLower(page.Title)
	body := strings.ToLower(page.Text)

	score := 0
	for _, tok := range tokens {
		switch {
		case strings.Contains(title, tok):
			score += titleHitScore
		case strings.Contains(body, tok):
			score += bodyHitScore
		}
	}
	return score
}

// selectPages returns up to maxContextPages pages with a positive
// score, best first, ties broken by crawl order. When nothing scores,
// it falls back to the first fallbackContextPages pages in crawl order.
func selectPages(pages []Page, tokens []string) []Page {
	scored := make([]scoredPage, len(pages))
	for i, p := range pages {
		scored[i] = scoredPage{page: p, score: scorePage(p, tokens)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if scored[0].score > 0 {
		var selected []Page
		for _, sp := range scored {
			if sp.score <= 0 || len(selected) >= maxContextPages {
				break
			}
			selected = append(selected, sp.page)
		}
		return selected
	}

	n := fallbackContextPages
	if n > len(pages) {
		n = len(pages)
	}
	return pages[:n]
}

// pickSnippet cuts a bounded excerpt from the page text. The window is
// anchored just before the earliest seed token hit and snapped to line
// boundaries; with no hit it is simply the head of the text.
func pickSnippet(text string, tokens []string) string {
	text = NormalizeMultiline(text)
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}

	lower := strings.ToLower(text)
	hit := -1
	for _, tok := range tokens {
		if i := strings.Index(lower, tok); i >= 0 && (hit < 0 || i < hit) {
			hit = i
		}
	}
	if hit < 0 {
		return strings.TrimSpace(string(runes[:snippetLimit]))
	}

	hitRune := utf8.RuneCountInString(lower[:hit])
	start := hitRune - snippetLead
	if start < 0 {
		start = 0
	}
	end := start + snippetLimit
	if end > len(runes) {
		end = len(runes)
	}

	// Snap the window to whole lines: the start moves back to just
	// after the preceding newline, the end drops a trailing partial
	// line as long as the hit itself survives.
	for i := start - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			start = i + 1
			break
		}
		if i == 0 {
			start = 0
		}
	}
	if end < len(runes) {
		for i := end - 1; i > hitRune; i-- {
			if runes[i] == '\n' {
				end = i
				break
			}
		}
	}

	return strings.TrimSpace(string(runes[start:end]))
}
