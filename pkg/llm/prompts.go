package llm

import (
	"fmt"
	"strings"
)

// buildSummaryPrompt creates the professional summary prompt.
func buildSummaryPrompt(req SummaryRequest) (prompt string) {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert resume writer. Write a professional summary for the candidate below.

CANDIDATE:
Name: %s
Target role: %s
`, req.Name, req.Role)

	if len(req.Experience) > 0 {
		b.WriteString("\nEXPERIENCE:\n")
		writeBullets(&b, req.Experience)
	}

	if len(req.Skills) > 0 {
		fmt.Fprintf(&b, "\nSKILLS: %s\n", strings.Join(req.Skills, ", "))
	}

	if req.JobDescription != "" {
		fmt.Fprintf(&b, "\nTARGET JOB DESCRIPTION:\n%s\n", req.JobDescription)
	}

	b.WriteString(`
RULES:
- 2 to 4 sentences, third person implied (no "I")
- Use only facts stated above; do not invent employers, metrics or credentials
- Plain text only: no markdown, no headings, no quotes

Return ONLY the summary text.`)

	prompt = b.String()
	return prompt
}

// buildDescriptionPrompt creates the description rewrite prompt.
func buildDescriptionPrompt(req DescriptionRequest) (prompt string) {
	var b strings.Builder

	b.WriteString("You are an expert resume writer. Rewrite the description below so it is concise, specific and achievement oriented.\n\n")

	fmt.Fprintf(&b, "TITLE: %s\n", req.Title)
	if req.Company != "" {
		fmt.Fprintf(&b, "COMPANY: %s\n", req.Company)
	}

	fmt.Fprintf(&b, "\nCURRENT DESCRIPTION:\n%s\n", req.Description)

	if req.Context != "" {
		fmt.Fprintf(&b, "\nADDITIONAL CONTEXT:\n%s\n", req.Context)
	}

	b.WriteString(`
RULES:
- Keep every fact; do not add numbers, tools or outcomes that are not stated
- Start sentences with strong verbs
- Plain text only, at most 3 sentences

Return ONLY the rewritten description.`)

	prompt = b.String()
	return prompt
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteByte('\n')
	}
}
