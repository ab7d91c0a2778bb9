// README: Generation pipeline: prompt -> LLM -> extract -> normalize.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tripwise/internal/ai"
	"tripwise/internal/config"
	"tripwise/internal/extract"
)

// ErrGeneration means the LLM call failed or returned nothing usable. The
// caller may retry; a partial or empty result is never presented as success.
var ErrGeneration = errors.New("itinerary generation failed")

// Service turns trip requests into canonical itineraries through the
// configured LLM provider.
type Service struct {
	provider ai.Provider
	cfg      config.AIConfig
}

func NewService(provider ai.Provider, cfg config.AIConfig) *Service {
	return &Service{provider: provider, cfg: cfg}
}

func (s *Service) request(system, prompt string) ai.Request {
	return ai.Request{
		System:      system,
		Prompt:      prompt,
		Model:       s.cfg.Model,
		Temperature: float32(s.cfg.Temperature),
		MaxTokens:   s.cfg.MaxTokens,
	}
}

// Generate plans a full trip from the natural-language request plus
// structured constraints. Sequential integer IDs are assigned, matching a
// wholesale (re)generation.
func (s *Service) Generate(ctx context.Context, naturalInput string, params TripParameters) (Itinerary, error) {
	raw, err := s.provider.Complete(ctx, s.request(generateSystem, generatePrompt(naturalInput, params)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	parsed, err := extract.JSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	it := Normalize(parsed, SequentialIDs())
	if len(it) == 0 {
		log.Printf("itinerary: generation produced no days; raw response: %s", raw)
		return nil, fmt.Errorf("%w: response did not contain an itinerary", ErrGeneration)
	}
	return it, nil
}

// Compile builds an itinerary from an already-synthesized description, used
// when suggestion selections are turned into a committed schedule.
func (s *Service) Compile(ctx context.Context, description string, params TripParameters) (Itinerary, error) {
	return s.Generate(ctx, description, params)
}

// Reschedule asks the model to adjust a window of activities after a
// disruption. The window belongs to a single day; fallbackLocation is that
// day's location for entries the model leaves unlocated.
func (s *Service) Reschedule(ctx context.Context, details string, window []Activity, fallbackLocation string) ([]Activity, error) {
	raw, err := s.provider.Complete(ctx, s.request(rescheduleSystem, reschedulePrompt(details, window)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	parsed, err := extract.JSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	replacements := NormalizeActivities(parsed, fallbackLocation, RandomIDs())
	if len(replacements) == 0 {
		log.Printf("itinerary: reschedule produced no activities; raw response: %s", raw)
		return nil, fmt.Errorf("%w: response did not contain activities", ErrGeneration)
	}
	return replacements, nil
}
