// Package scoring grades free-text recall input against the names that were
// presented. Everything here is a pure function of its arguments.
package scoring

import (
	"strings"
	"unicode"

	"github.com/phrazzld/recall-sprint/internal/domain"
)

// Outcome is the graded partition of a recall attempt.
type Outcome struct {
	// Parsed holds the normalized, deduplicated answers in first-seen order.
	Parsed []string
	// Correct holds presented names (original spelling) that were recalled.
	Correct []string
	// Incorrect holds normalized answers that match no presented name.
	Incorrect []string
	// Missed holds presented names that were not recalled, in presented order.
	Missed []string
	Score  int
	Status domain.Status
}

// Normalize trims and lowercases a single token.
func Normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// ParseAnswers splits raw recall text on runs of whitespace and commas,
// normalizes every token and drops duplicates while keeping first-seen order.
// The result is never nil.
func ParseAnswers(raw string) []string {
	tokens := strings.FieldsFunc(raw, isSeparator)
	parsed := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		norm := Normalize(token)
		if norm == "" {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		parsed = append(parsed, norm)
	}
	return parsed
}

// Score grades raw against presented.
//
// An answer matching a presented name counts once toward Correct; an answer
// that matches a name already claimed is dropped rather than counted as
// incorrect. When two presented names share a normalized form the later one
// is the one an answer claims.
func Score(raw string, presented []string) Outcome {
	parsed := ParseAnswers(raw)

	reference := make(map[string]string, len(presented))
	for _, name := range presented {
		reference[Normalize(name)] = name
	}

	correct := make([]string, 0, len(parsed))
	incorrect := make([]string, 0)
	claimed := make(map[string]struct{}, len(parsed))
	for _, answer := range parsed {
		original, ok := reference[answer]
		if !ok {
			incorrect = append(incorrect, answer)
			continue
		}
		if _, done := claimed[original]; done {
			continue
		}
		claimed[original] = struct{}{}
		correct = append(correct, original)
	}

	missed := make([]string, 0, len(presented)-len(correct))
	for _, name := range presented {
		if _, ok := claimed[name]; !ok {
			missed = append(missed, name)
		}
	}

	score := len(correct)
	return Outcome{
		Parsed:    parsed,
		Correct:   correct,
		Incorrect: incorrect,
		Missed:    missed,
		Score:     score,
		Status:    domain.StatusForScore(score),
	}
}
