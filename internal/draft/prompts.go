package draft

import (
	"fmt"
	"strings"

	"scribe/internal/guide"
)

const titleSystemPrompt = `You title support tickets. Given the text of an inquiry, respond with a single short line that summarizes it. Output only the title itself: no quotes, no numbering, no trailing punctuation, and never more than one line.`

const draftSystemPrompt = `You draft replies for a customer support team. Write a complete, polite reply to the customer's question in the same language the question is written in. When a reply template is provided, follow its structure and tone. Use the similar past answers and the help guide excerpts as factual grounding; do not invent product behavior they do not support. Output only the reply text.`

// buildDraftPrompt assembles the user message for a draft request. The
// sections are labeled so the model can tell the question apart from
// the supporting material.
func buildDraftPrompt(question, template string, candidates []guide.Candidate, contextBlock string) string {
	var sb strings.Builder

	sb.WriteString("## Customer question\n\n")
	sb.WriteString(question)

	if template != "" {
		sb.WriteString("\n\n## Reply template\n\n")
		sb.WriteString(template)
	}

	if len(candidates) > 0 {
		sb.WriteString("\n\n## Similar past answers\n")
		for i, cand := range candidates {
			fmt.Fprintf(&sb, "\n[%d] Q: %s\nA: %s\n", i+1, cand.Question, cand.Answer)
		}
	}

	if contextBlock != "" {
		sb.WriteString("\n\n## Help guide excerpts\n\n")
		sb.WriteString(contextBlock)
	}

	return sb.String()
}
