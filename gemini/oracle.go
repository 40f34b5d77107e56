package gemini

import (
	"context"

	"github.com/fwojciec/pageindex"
	"google.golang.org/genai"
)

// Ensure Oracle implements pageindex.Oracle at compile time.
var _ pageindex.Oracle = (*Oracle)(nil)

// Oracle implements pageindex.Oracle using Google Gemini.
type Oracle struct {
	client *genai.Client
	model  string
}

// NewOracle creates a new Oracle. An empty model uses DefaultModel.
func NewOracle(client *genai.Client, model string) *Oracle {
	return &Oracle{client: client, model: model}
}

// Judge asks the model for the next navigation decision. Replies that do
// not parse into a valid decision return EORACLE.
func (o *Oracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
	prompt := pageindex.FormatNavigationPrompt(query, node, nav)
	config := BuildOracleConfig(nav.Metadata[pageindex.MetadataDocumentType])

	text, err := generate(ctx, o.client, o.model, prompt, config)
	if err != nil {
		return pageindex.Decision{}, err
	}
	return pageindex.ParseDecision(text)
}

// BuildOracleConfig returns the GenerateContentConfig for navigation
// calls on a document of the given type.
func BuildOracleConfig(docType string) *genai.GenerateContentConfig {
	return buildConfig(pageindex.NavigatorInstructionFor(docType), 0.1)
}
