package ai

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const providerGroq = "groq"

type groqClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewGroq creates a Groq client. baseURL is Groq's OpenAI-compatible API
// root; httpClient may be nil.
func NewGroq(apiKey, baseURL, model string, httpClient *http.Client, log *slog.Logger) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("groq API key is required")
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}

	return &groqClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		log:    log.With("component", "groq_client"),
	}, nil
}

func (c *groqClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.log.DebugContext(ctx, "Generating completion", "model", c.model, "prompt_length", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Groq API call failed", "error", err)
		return "", &Error{Provider: providerGroq, Reason: ReasonRequest, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &Error{Provider: providerGroq, Reason: ReasonEmpty}
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", &Error{Provider: providerGroq, Reason: ReasonBlocked, Err: errors.New("content filter")}
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", &Error{Provider: providerGroq, Reason: ReasonEmpty}
	}
	return choice.Message.Content, nil
}
