package guide

import (
	"regexp"
	"strings"
)

// tokenPattern matches the token shapes used for relevance scoring:
// lowercase ASCII alphanumeric runs of length two or more (dots,
// underscores and hyphens allowed inside), and same-script runs of two
// or more CJK characters. Splitting CJK runs per script keeps katakana
// loanwords and kanji compounds as separate tokens and sheds most
// single-character particles. The long vowel mark U+30FC is listed
// with katakana explicitly because its Unicode script is Common.
var tokenPattern = regexp.MustCompile(`[0-9a-z][0-9a-z._-]*[0-9a-z]|[\p{Katakana}ー]{2,}|\p{Han}{2,}|\p{Hiragana}{2,}`)

// stopTokens are tokens too common to carry relevance signal: Japanese
// function words, greetings, and generic support vocabulary.
var stopTokens = map[string]struct{}{
	"について": {}, "ください": {}, "します": {}, "できます": {}, "あります": {},
	"ました": {}, "ません": {}, "という": {}, "ため": {}, "こと": {},
	"もの": {}, "これ": {}, "それ": {}, "この": {}, "その": {},
	"どう": {}, "よう": {}, "から": {}, "まで": {}, "など": {},
	"です": {}, "ます": {}, "する": {}, "いる": {}, "なる": {},
	"いたします": {}, "よろしく": {}, "ございます": {}, "しまいます": {},
	"質問": {}, "回答": {}, "方法": {}, "場合": {}, "確認": {}, "世話": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "have": {}, "not": {}, "you": {}, "your": {}, "are": {},
	"can": {}, "how": {}, "what": {}, "when": {}, "please": {},
	"thanks": {}, "hello": {}, "help": {},
}

// Tokenize lowercases the input, extracts scoring tokens, drops stop
// tokens, and removes duplicates while preserving first-seen order.
func Tokenize(s string) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(s), -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, stop := stopTokens[m]; stop {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		tokens = append(tokens, m)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
