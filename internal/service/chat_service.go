package service

import (
	"context"
	"strings"

	"github.com/onurcolak/emergency-alert-service/internal/domain"
)

type textGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatService relays a prompt to the generative text provider.
type ChatService struct {
	generator textGenerator
}

func NewChatService(generator textGenerator) *ChatService {
	return &ChatService{generator: generator}
}

func (s *ChatService) Respond(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", domain.NewValidationError("message", "Message is required")
	}

	return s.generator.Generate(ctx, prompt)
}
