package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Client relays prompts to an OpenAI-compatible chat completions endpoint
// (Groq by default).
type Client struct {
	client openai.Client
	model  string
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewClient(opts Options) *Client {
	return &Client{
		client: openai.NewClient(
			option.WithBaseURL(opts.BaseURL),
			option.WithAPIKey(opts.APIKey),
			// One attempt per request; the caller sees the first failure.
			option.WithMaxRetries(0),
		),
		model: opts.Model,
	}
}

// Complete sends prompt as a single user message and returns the trimmed
// text of the first choice.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
	})
	if err != nil {
		return "", &AIError{Message: "AI request failed", Detail: providerMessage(err), Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &AIError{Message: "AI returned empty response"}
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}

	return content, nil
}

func providerMessage(err error) string {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// AIError represents an AI service error. Detail carries the provider's own
// description of the failure when there is one.
type AIError struct {
	Message string
	Detail  string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AIError) Unwrap() error { return e.Cause }
