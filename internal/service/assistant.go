package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"ecocart.dev/ecocart/api/pkg/ai"
	"ecocart.dev/ecocart/api/pkg/global"
)

// AssistantService proxies shopper questions to the completion provider.
type AssistantService struct {
	completer Completer
	log       *slog.Logger
}

func NewAssistantService(completer Completer, log *slog.Logger) *AssistantService {
	return &AssistantService{completer: completer, log: log}
}

func (s *AssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", global.NewValidationError("Empty prompt provided.",
			global.ValidationError{Field: "prompt", Message: "prompt is required", Code: "required"})
	}

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("AI request failed", slog.Any("err", err))
		return "", global.NewUpstreamError("AI request failed: "+upstreamDetail(err), err)
	}
	return reply, nil
}

func upstreamDetail(err error) string {
	var aiErr *ai.AIError
	if errors.As(err, &aiErr) {
		if aiErr.Detail != "" {
			return aiErr.Detail
		}
		return aiErr.Message
	}
	return err.Error()
}
