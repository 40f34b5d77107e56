// Package openai implements the navigation oracle and answer synthesizer
// with OpenAI-compatible chat completion APIs.
package openai

import (
	"context"

	"github.com/fwojciec/pageindex"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = openai.GPT4oMini

// NewClient returns a client for apiKey. A non-empty baseURL points it at
// an OpenAI-compatible server, such as a local model gateway.
func NewClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

func complete(ctx context.Context, client *openai.Client, req openai.ChatCompletionRequest) (string, error) {
	if client == nil {
		return "", pageindex.Errorf(pageindex.EINVALID, "openai client required")
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", pageindex.Errorf(pageindex.EORACLE, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildRequest(model, instruction, prompt string, temperature float32) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}
