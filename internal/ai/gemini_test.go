package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	calls    int
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(s, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestGeminiComplete(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{resp: textResponse("hi there")}
	c := newGeminiClient(gen, "gemini-1.5-flash", discardLogger())

	out, err := c.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "gemini-1.5-flash", gen.model)
	require.Len(t, gen.contents, 1, "only a single user turn is sent")
	assert.Equal(t, "user", string(gen.contents[0].Role))
	require.Len(t, gen.contents[0].Parts, 1)
	assert.Equal(t, "hello", gen.contents[0].Parts[0].Text)
}

func TestGeminiComplete_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		gen    *fakeGenerator
		reason Reason
	}{
		{
			name:   "api error",
			gen:    &fakeGenerator{err: &genai.APIError{Code: 500, Message: "boom"}},
			reason: ReasonRequest,
		},
		{
			name:   "nil response",
			gen:    &fakeGenerator{},
			reason: ReasonEmpty,
		},
		{
			name:   "no candidates",
			gen:    &fakeGenerator{resp: &genai.GenerateContentResponse{}},
			reason: ReasonEmpty,
		},
		{
			name: "prompt blocked",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
					BlockReason:        genai.BlockedReasonSafety,
					BlockReasonMessage: "unsafe prompt",
				},
			}},
			reason: ReasonBlocked,
		},
		{
			name: "candidate stopped for safety",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}},
			reason: ReasonBlocked,
		},
		{
			name: "max tokens without content",
			gen: &fakeGenerator{resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
			}},
			reason: ReasonEmpty,
		},
		{
			name:   "whitespace only",
			gen:    &fakeGenerator{resp: textResponse("   \n")},
			reason: ReasonEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newGeminiClient(tt.gen, "m", discardLogger())
			out, err := c.Complete(context.Background(), "prompt")
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Equal(t, tt.reason, ReasonOf(err))
			assert.Contains(t, err.Error(), "gemini")
		})
	}
}

func TestGeminiComplete_WrapsAPIError(t *testing.T) {
	t.Parallel()

	apiErr := &genai.APIError{Code: 503, Message: "overloaded"}
	c := newGeminiClient(&fakeGenerator{err: apiErr}, "m", discardLogger())

	_, err := c.Complete(context.Background(), "prompt")

	var target *genai.APIError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 503, target.Code)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGemini(context.Background(), "", "m", discardLogger())
	assert.Error(t, err)
}
