package quizgen

import (
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
)

const promptTemplate = `You are an expert educational content creator.

Analyze the given Wikipedia article and produce a detailed quiz dataset in strict JSON format matching the following JSON Schema:
%s

Guidelines:
- Provide a concise 2-3 sentence "summary" of the article.
- Under "key_entities", extract 2-5 key people, organizations, and locations.
- List 3-6 key "sections" from the article (like headings).
- Generate %d-%d multiple-choice questions under "quiz". Each should include:
  * question
  * exactly %d options
  * answer (copied verbatim from one of the options)
  * difficulty (%s)
  * explanation (why the answer is correct)
- Provide 3-6 "related_topics", concise keywords related to the article.

Output a single JSON object and nothing else. Do not wrap it in markdown and do not include any text outside the JSON.

Title: %s
URL: %s

Article:
%s
`

// BuildPrompt renders the generation prompt for one article.
func BuildPrompt(title, body, sourceURL string) string {
	labels := make([]string, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		labels[i] = string(d)
	}
	return fmt.Sprintf(promptTemplate,
		SchemaText(),
		domain.MinQuestions, domain.MaxQuestions,
		domain.OptionsPerQuestion,
		strings.Join(labels, "/"),
		title, sourceURL, body)
}
