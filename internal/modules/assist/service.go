// README: Free-text AI advice for individual to-do tasks.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tripwise/internal/ai"
	"tripwise/internal/config"
)

const taskSystem = "You are a concise travel assistant. Give practical, actionable advice for the traveler's task in a short paragraph. Plain text only."

// ErrUpstream means the advice call failed; the caller may retry.
var ErrUpstream = errors.New("assist request failed")

// Service answers free-text task-help requests. Unlike the planning
// pipeline, replies here are prose for direct display, so no JSON
// extraction runs on them.
type Service struct {
	provider ai.Provider
	cfg      config.AIConfig
}

func NewService(provider ai.Provider, cfg config.AIConfig) *Service {
	return &Service{provider: provider, cfg: cfg}
}

func (s *Service) TaskHelp(ctx context.Context, task string) (string, error) {
	reply, err := s.provider.Complete(ctx, ai.Request{
		System:      taskSystem,
		Prompt:      fmt.Sprintf("Help me with this trip task: %s", task),
		Model:       s.cfg.Model,
		Temperature: float32(s.cfg.Temperature),
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUpstream)
	}
	return reply, nil
}
