package ai

import "context"

// Request carries one text-completion call to a provider. The model identifier
// comes from configuration; callers must not assume any particular model.
type Request struct {
	// System is the role instruction sent alongside the user prompt.
	System string
	// Prompt is the user-facing content.
	Prompt string
	// Model overrides the provider's configured model when non-empty.
	Model string
	// Temperature in [0,2]; providers clamp as needed.
	Temperature float32
	// MaxTokens bounds the completion length. 0 means provider default.
	MaxTokens int
}

// Provider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.).
type Provider interface {
	// Complete sends the request and returns the raw response text. The text
	// may contain prose or markdown fences around any JSON payload; callers
	// run it through the extract package before interpreting it.
	Complete(ctx context.Context, req Request) (string, error)
}
