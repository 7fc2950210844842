package recommend

import "fmt"

const (
	expanderSystemPrompt    = "You are a knowledgeable librarian who writes engaging and informative book summaries."
	synthesizerSystemPrompt = "You are a creative librarian who creates fictional book recommendations."

	expanderMaxTokens      = 600
	expanderTemperature    = 0.7
	synthesizerMaxTokens   = 700
	synthesizerTemperature = 0.8
)

const expandPromptTemplate = `The following is a short summary of the book '%s':

%s

Please expand this short summary into a comprehensive, four-paragraph summary. Ensure the summary includes the main plot points, key characters, major themes, and the book's significance. Use a professional and engaging tone.

Expanded Summary:`

const authorPromptTemplate = `Write a comprehensive, four-paragraph summary of the book '%s'. Ensure the summary covers:
- The main plot points and story arc.
- The key characters and their development.
- The major themes and messages.
- The book's historical, cultural, or literary significance.

Summary:`

const synthesizePromptTemplate = `Based on the following user request: "%s"

Create a fictional book recommendation that would perfectly match this request. Please provide:
1. A compelling and realistic book title
2. A comprehensive four-paragraph summary

Format your response as:
` + TitleLabel + ` [Book Title]

` + SummaryLabel + `
[Four-paragraph summary]`

func buildExpandPrompt(title, shortSummary string) string {
	return fmt.Sprintf(expandPromptTemplate, title, shortSummary)
}

func buildAuthorPrompt(title string) string {
	return fmt.Sprintf(authorPromptTemplate, title)
}

func buildSynthesizePrompt(query string) string {
	return fmt.Sprintf(synthesizePromptTemplate, query)
}
