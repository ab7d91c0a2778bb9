// README: Pulls a JSON payload out of unstructured LLM response text.
package extract

import (
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
)

// ErrNoResult means no parseable JSON could be recovered from the text.
// Distinct from an empty-but-valid payload.
var ErrNoResult = errors.New("no JSON found in response")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// JSON recovers a parsed JSON value (object or array) from raw model output.
// Candidate selection order: fenced code block, first balanced top-level
// {...} span, then the whole text. A failed strict parse gets one repair
// pass (single quotes to double quotes) before giving up. Never panics;
// a hopeless input yields ErrNoResult with the raw text logged.
func JSON(raw string) (any, error) {
	candidate := candidateFrom(raw)

	v, err := parse(candidate)
	if err == nil {
		return v, nil
	}

	// Repair pass: models occasionally single-quote their JSON. This is a
	// naive swap and will mangle apostrophes inside strings, so it only runs
	// after strict parsing has already failed.
	repaired := strings.ReplaceAll(candidate, "'", "\"")
	if v, rerr := parse(repaired); rerr == nil {
		return v, nil
	}

	log.Printf("extract: JSON parse failed: %v; raw response: %s", err, raw)
	return nil, ErrNoResult
}

func candidateFrom(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if span, ok := braceSpan(raw); ok {
		return span
	}
	return strings.TrimSpace(raw)
}

func parse(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	}
	return nil, errors.New("payload is not an object or array")
}

// braceSpan returns the first balanced top-level {...} span. It tracks
// string literals and escapes so braces inside string values do not skew
// the depth count; an unbalanced tail reports no span rather than a
// truncated one.
func braceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
