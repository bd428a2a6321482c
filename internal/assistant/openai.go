package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/xaenox/mindmate/internal/apperrors"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAIClient(apiKey string, model string, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	apiMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		apiMessages = append(apiMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:     c.model,
			Messages:  apiMessages,
			MaxTokens: maxTokens,
		},
	)

	if err != nil {
		c.logger.Error("Chat completion request failed", zap.Error(err))
		return "", categorize(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.Unknown(fmt.Errorf("chat completion returned no choices"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// categorize maps an OpenAI client error to the upstream error taxonomy by
// HTTP status. Anything without a recognized status propagates unchanged.
func categorize(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	} else if errors.As(err, &reqErr) {
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == 429:
		return &apperrors.UpstreamError{
			Kind: apperrors.UpstreamQuotaExceeded,
			Hint: "AI service quota exceeded. Please check your plan and billing details.",
			Err:  err,
		}
	case status == 401:
		return &apperrors.UpstreamError{
			Kind: apperrors.UpstreamUnauthorized,
			Hint: "Invalid or missing AI service API key. Please check backend configuration.",
			Err:  err,
		}
	case status == 403:
		return &apperrors.UpstreamError{
			Kind: apperrors.UpstreamForbidden,
			Hint: "AI service access forbidden. Please verify your API key and permissions.",
			Err:  err,
		}
	case status == 500 || status == 502 || status == 503:
		return &apperrors.UpstreamError{
			Kind: apperrors.UpstreamUnavailable,
			Hint: "AI service temporarily unavailable. Please try again in a moment.",
			Err:  err,
		}
	}

	return err
}
