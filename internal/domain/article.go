package domain

// ArticleDocument is the cleaned title and text extracted from a source page.
// Body holds the non-empty paragraphs separated by a blank line.
type ArticleDocument struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// ParagraphSeparator joins paragraphs inside ArticleDocument.Body.
const ParagraphSeparator = "\n\n"
