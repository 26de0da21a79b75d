package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/foxseedlab/ytsummary/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"
)

type GeminiClient struct {
	apiKey string
	model  string
	opts   []option.ClientOption
}

func NewGeminiClient(apiKey, model string, opts ...option.ClientOption) llm.Client {
	return &GeminiClient{apiKey: apiKey, model: model, opts: opts}
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(c.apiKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	resp, err := client.GenerativeModel(c.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return "", fmt.Errorf("gemini %s: %s", st.Code(), st.Message())
		}
		return "", err
	}
	return geminiResponseText(resp)
}

func geminiResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", fmt.Errorf("gemini returned an empty candidate (finish reason %s)", cand.FinishReason)
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
