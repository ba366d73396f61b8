// Package guide gathers context from an external HTML help site: a
// same-origin breadth-first crawler, an HTML-to-text extractor, a TTL
// cache with stale-on-error fallback, and a token-overlap relevance
// scorer that assembles excerpt blocks for draft prompts.
package guide

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	inlineSpaceRun = regexp.MustCompile(`\s+`)
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
	leadingSpace   = regexp.MustCompile(`(?m)^[ \t]+`)
	spaceRun       = regexp.MustCompile(`[ \t]{2,}`)

	scriptBlock   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlock    = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	lineBreakTag  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseTag = regexp.MustCompile(`(?i)</(?:p|div|section|article|li|h[1-6]|tr)\s*>`)
	anyTag        = regexp.MustCompile(`<[^>]*>`)

	entityRef = regexp.MustCompile(`&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// namedEntities is the fixed decode table; anything else passes through.
var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// CleanInline collapses all whitespace runs to single spaces and trims.
// Used for single-line fields such as titles.
func CleanInline(s string) string {
	return strings.TrimSpace(inlineSpaceRun.ReplaceAllString(s, " "))
}

// NormalizeMultiline normalizes line endings to LF, strips trailing
// whitespace from each line, collapses runs of blank lines down to a
// single blank line, and trims the result.
func NormalizeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// DecodeEntities decodes numeric character references and a small fixed
// set of named entities. Unknown named entities are left as-is.
func DecodeEntities(s string) string {
	return entityRef.ReplaceAllStringFunc(s, func(match string) string {
		ref := match[1 : len(match)-1]
		if strings.HasPrefix(ref, "#") {
			digits := ref[1:]
			base := 10
			if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
				digits = digits[1:]
				base = 16
			}
			n, err := strconv.ParseInt(digits, base, 32)
			if err != nil || n <= 0 {
				return match
			}
			return string(rune(n))
		}
		if decoded, ok := namedEntities[ref]; ok {
			return decoded
		}
		return match
	})
}

// StripHTML converts an HTML document into plain text: script and style
// blocks are dropped with their content, <br> and closing block-level
// tags become newlines, all remaining markup is removed, and entities
// are decoded. The output contains no tags and no raw entity references.
func StripHTML(html string) string {
	text := scriptBlock.ReplaceAllString(html, "")
	text = styleBlock.ReplaceAllString(text, "")
	text = lineBreakTag.ReplaceAllString(text, "\n")
	text = blockCloseTag.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = DecodeEntities(text)
	text = spaceRun.ReplaceAllString(text, " ")
	text = NormalizeMultiline(text)
	return leadingSpace.ReplaceAllString(text, "")
}
