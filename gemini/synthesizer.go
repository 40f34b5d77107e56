package gemini

import (
	"context"

	"github.com/fwojciec/pageindex"
	"google.golang.org/genai"
)

// Ensure Synthesizer implements pageindex.Synthesizer at compile time.
var _ pageindex.Synthesizer = (*Synthesizer)(nil)

// Synthesizer implements pageindex.Synthesizer using Google Gemini.
type Synthesizer struct {
	client *genai.Client
	model  string

	// DocumentType tailors the instruction, as for NavigatorInstructionFor.
	DocumentType string
}

// NewSynthesizer creates a new Synthesizer. An empty model uses
// DefaultModel.
func NewSynthesizer(client *genai.Client, model string) *Synthesizer {
	return &Synthesizer{client: client, model: model}
}

// Synthesize answers query from the fragments alone.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, fragments []pageindex.Fragment) (*pageindex.Synthesis, error) {
	if len(fragments) == 0 {
		return nil, pageindex.Errorf(pageindex.EINVALID, "fragments required")
	}

	prompt := pageindex.FormatSynthesisPrompt(query, fragments)
	text, err := generate(ctx, s.client, s.model, prompt, BuildSynthesizerConfig(s.DocumentType))
	if err != nil {
		return nil, err
	}
	return pageindex.ParseSynthesis(text)
}

// BuildSynthesizerConfig returns the GenerateContentConfig for synthesis
// calls on a document of the given type.
func BuildSynthesizerConfig(docType string) *genai.GenerateContentConfig {
	return buildConfig(pageindex.SynthesizerInstructionFor(docType), 0.2)
}
