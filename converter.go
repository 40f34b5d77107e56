package pageindex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is an HTML fragment, such as the body of one section.
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
