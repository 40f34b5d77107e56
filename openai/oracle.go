package openai

import (
	"context"

	"github.com/fwojciec/pageindex"
	"github.com/sashabaranov/go-openai"
)

var _ pageindex.Oracle = (*Oracle)(nil)

// Oracle implements pageindex.Oracle with chat completions.
type Oracle struct {
	client *openai.Client
	model  string
}

// NewOracle creates a new Oracle. An empty model uses DefaultModel.
func NewOracle(client *openai.Client, model string) *Oracle {
	return &Oracle{client: client, model: model}
}

// Judge asks the model for the next navigation decision.
func (o *Oracle) Judge(ctx context.Context, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) (pageindex.Decision, error) {
	req := BuildOracleRequest(o.model, query, node, nav)
	text, err := complete(ctx, o.client, req)
	if err != nil {
		return pageindex.Decision{}, err
	}
	return pageindex.ParseDecision(text)
}

// BuildOracleRequest returns the chat request for one navigation step.
func BuildOracleRequest(model, query string, node pageindex.NodeDescriptor, nav pageindex.NavigationContext) openai.ChatCompletionRequest {
	return buildRequest(model,
		pageindex.NavigatorInstructionFor(nav.Metadata[pageindex.MetadataDocumentType]),
		pageindex.FormatNavigationPrompt(query, node, nav),
		0.1,
	)
}
