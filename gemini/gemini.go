// Package gemini implements the navigation oracle and answer synthesizer
// with Google Gemini models.
package gemini

import (
	"context"

	"github.com/fwojciec/pageindex"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

func generate(ctx context.Context, client *genai.Client, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if client == nil {
		return "", pageindex.Errorf(pageindex.EINVALID, "gemini client required")
	}
	if model == "" {
		model = DefaultModel
	}

	result, err := client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", pageindex.Errorf(pageindex.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func buildConfig(instruction string, temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		},
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
}
