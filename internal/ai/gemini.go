package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

const providerGemini = "gemini"

// contentGenerator is the part of *genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiClient struct {
	models contentGenerator
	model  string
	log    *slog.Logger
}

// NewGemini creates a Gemini client for model using apiKey.
func NewGemini(ctx context.Context, apiKey, model string, log *slog.Logger) (Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return newGeminiClient(gi.Models, model, log), nil
}

func newGeminiClient(models contentGenerator, model string, log *slog.Logger) *geminiClient {
	return &geminiClient{
		models: models,
		model:  model,
		log:    log.With("component", "gemini_client"),
	}
}

func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.log.DebugContext(ctx, "Generating completion", "model", c.model, "prompt_length", len(prompt))

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", &Error{Provider: providerGemini, Reason: ReasonRequest, Err: err}
	}

	return c.extractText(ctx, resp)
}

func (c *geminiClient) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", &Error{Provider: providerGemini, Reason: ReasonEmpty}
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.WarnContext(ctx, "Gemini request blocked", "reason", reason)
		return "", &Error{Provider: providerGemini, Reason: ReasonBlocked, Err: errors.New(reason)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		if len(resp.Candidates) > 0 {
			finish := resp.Candidates[0].FinishReason
			if finish == genai.FinishReasonSafety || finish == genai.FinishReasonProhibitedContent || finish == genai.FinishReasonBlocklist {
				return "", &Error{Provider: providerGemini, Reason: ReasonBlocked, Err: fmt.Errorf("finish reason %s", finish)}
			}
			if finish != genai.FinishReasonUnspecified && finish != genai.FinishReasonStop {
				return "", &Error{Provider: providerGemini, Reason: ReasonEmpty, Err: fmt.Errorf("finish reason %s", finish)}
			}
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content")
		return "", &Error{Provider: providerGemini, Reason: ReasonEmpty}
	}

	out := resp.Text()
	if strings.TrimSpace(out) == "" {
		return "", &Error{Provider: providerGemini, Reason: ReasonEmpty}
	}
	return out, nil
}
