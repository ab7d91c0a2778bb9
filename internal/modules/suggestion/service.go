// README: Suggestion engine: grouped activity options with reject/replace flow.
package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/samber/lo"

	"tripwise/internal/ai"
	"tripwise/internal/config"
	"tripwise/internal/extract"
	"tripwise/internal/modules/itinerary"
)

var (
	// ErrGeneration means the LLM call failed or returned unusable content.
	ErrGeneration = errors.New("suggestion generation failed")
	// ErrDuplicate means the proposed substitute repeats an already-seen title.
	ErrDuplicate = errors.New("duplicate suggestion")
	// ErrWrongLocation means the substitute is not placed at the trip's destination.
	ErrWrongLocation = errors.New("suggestion outside destination")
)

// Service generates and reconciles pre-commitment activity options.
type Service struct {
	provider ai.Provider
	cfg      config.AIConfig
	ids      itinerary.IDFunc
}

func NewService(provider ai.Provider, cfg config.AIConfig) *Service {
	return &Service{provider: provider, cfg: cfg, ids: itinerary.RandomIDs()}
}

func (s *Service) request(prompt string) ai.Request {
	return ai.Request{
		System:      generateSystem,
		Prompt:      prompt,
		Model:       s.cfg.Model,
		Temperature: float32(s.cfg.Temperature),
		MaxTokens:   s.cfg.MaxTokens,
	}
}

// Generate produces category/time-slot options sized to twice the trip's day
// count, each carrying exactly one alternative.
func (s *Service) Generate(ctx context.Context, naturalInput string, params itinerary.TripParameters, dayCount int) ([]Option, error) {
	count := 2 * dayCount
	if count < 2 {
		count = 2
	}

	raw, err := s.provider.Complete(ctx, s.request(generatePrompt(count, naturalInput, params)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	parsed, err := extract.JSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	options := s.normalizeList(parsed)
	if len(options) == 0 {
		log.Printf("suggestion: generation produced no options; raw response: %s", raw)
		return nil, fmt.Errorf("%w: response did not contain options", ErrGeneration)
	}
	if len(options) > count {
		options = options[:count]
	}
	return options, nil
}

// Alternative requests one substitute for a rejected option. The substitute
// must not repeat any previously seen title and must sit at the trip's
// destination; violations are recoverable errors, not accepted output.
func (s *Service) Alternative(ctx context.Context, rejected Rejected, previousTitles []string, params itinerary.TripParameters) (*Option, error) {
	raw, err := s.provider.Complete(ctx, s.request(alternativePrompt(rejected, previousTitles, params)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	parsed, err := extract.JSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	m, ok := parsed.(map[string]any)
	if !ok {
		log.Printf("suggestion: alternative is not an object; raw response: %s", raw)
		return nil, fmt.Errorf("%w: response did not contain an option", ErrGeneration)
	}

	opt := s.normalizeOne(m)
	if opt.Title == "" {
		return nil, fmt.Errorf("%w: substitute has no title", ErrGeneration)
	}

	seen := append([]string{rejected.Title}, previousTitles...)
	if lo.SomeBy(seen, func(t string) bool { return t == opt.Title }) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicate, opt.Title)
	}
	if params.EndLocation != "" &&
		!strings.Contains(strings.ToLower(opt.Location), strings.ToLower(params.EndLocation)) {
		return nil, fmt.Errorf("%w: %q is not in %s", ErrWrongLocation, opt.Location, params.EndLocation)
	}
	return &opt, nil
}

func (s *Service) normalizeList(parsed any) []Option {
	entries, ok := parsed.([]any)
	if !ok {
		if m, isMap := parsed.(map[string]any); isMap {
			entries, ok = m["suggestions"].([]any)
		}
		if !ok {
			return nil
		}
	}
	var out []Option
	for _, entry := range entries {
		m, isMap := entry.(map[string]any)
		if !isMap {
			continue
		}
		opt := s.normalizeOne(m)
		if opt.Title == "" {
			continue
		}
		if alt, isMap := m["alternative"].(map[string]any); isMap {
			a := s.normalizeOne(alt)
			if a.Title != "" {
				opt.Alternative = &a
			}
		}
		out = append(out, opt)
	}
	return out
}

func (s *Service) normalizeOne(m map[string]any) Option {
	return Option{
		ID:          s.ids(),
		Title:       asString(m["title"]),
		Description: asString(m["description"]),
		Duration:    asString(m["duration"]),
		Cost:        asNumber(m["cost"]),
		Category:    asString(m["category"]),
		Location:    asString(m["location"]),
		BestTime:    asString(m["best_time"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%f", &f); err == nil && f > 0 {
			return f
		}
	}
	return 0
}
