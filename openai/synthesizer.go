package openai

import (
	"context"

	"github.com/fwojciec/pageindex"
	"github.com/sashabaranov/go-openai"
)

var _ pageindex.Synthesizer = (*Synthesizer)(nil)

// Synthesizer implements pageindex.Synthesizer with chat completions.
type Synthesizer struct {
	client *openai.Client
	model  string

	// DocumentType tailors the instruction.
	DocumentType string
}

// NewSynthesizer creates a new Synthesizer. An empty model uses
// DefaultModel.
func NewSynthesizer(client *openai.Client, model string) *Synthesizer {
	return &Synthesizer{client: client, model: model}
}

// Synthesize answers query from the fragments alone.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, fragments []pageindex.Fragment) (*pageindex.Synthesis, error) {
	if len(fragments) == 0 {
		return nil, pageindex.Errorf(pageindex.EINVALID, "fragments required")
	}

	text, err := complete(ctx, s.client, BuildSynthesizerRequest(s.model, s.DocumentType, query, fragments))
	if err != nil {
		return nil, err
	}
	return pageindex.ParseSynthesis(text)
}

// BuildSynthesizerRequest returns the chat request for answer synthesis.
func BuildSynthesizerRequest(model, docType, query string, fragments []pageindex.Fragment) openai.ChatCompletionRequest {
	return buildRequest(model,
		pageindex.SynthesizerInstructionFor(docType),
		pageindex.FormatSynthesisPrompt(query, fragments),
		0.2,
	)
}
