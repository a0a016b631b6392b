// Package interpreter provides the application layer for intent
// interpretation: turning free-form meal descriptions into the typed
// constraint model via a text-completion capability.
package interpreter

import (
	"context"
	"strings"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

// Completion call settings: near-deterministic sampling and a bounded
// output budget, since the expected answer is a small JSON object.
const (
	extractionTemperature = 0.1
	extractionMaxTokens   = 500
)

// Interpreter converts natural language meal queries into criteria.
// It holds no state between calls; the completion handle is injected at
// construction so tests can substitute a deterministic fake and the
// unconfigured state is explicit (a nil handle).
type Interpreter struct {
	completion outbound.CompletionService
	logger     *zap.Logger
}

// New creates an interpreter. completion may be nil when no capability
// is configured; Interpret then fails with a capability error that the
// caller converts into its fallback path.
func New(completion outbound.CompletionService, logger *zap.Logger) *Interpreter {
	return &Interpreter{
		completion: completion,
		logger:     logger.Named("interpreter"),
	}
}

// Interpret extracts a constraint model from user text.
//
// Empty input fails with an invalid-input error. A missing or failing
// capability fails with a capability error. Output that cannot be
// parsed as a structured object fails with a parse error carrying the
// raw text; it is never silently coerced into an empty model — the
// caller owns the decision to degrade.
func (i *Interpreter) Interpret(ctx context.Context, userText string) (*query.Criteria, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, errors.NewInvalidInputError("query text must be a non-empty string")
	}

	if i.completion == nil {
		return nil, errors.NewCapabilityUnavailableError("none", nil)
	}

	raw, err := i.completion.Complete(ctx, systemPrompt, buildPrompt(userText), outbound.CompletionOptions{
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	})
	if err != nil {
		if errors.Is(err, errors.CodeCapabilityUnavailable) {
			return nil, err
		}
		return nil, errors.NewCapabilityUnavailableError("completion", err)
	}

	criteria, err := parseCriteria(raw)
	if err != nil {
		i.logger.Warn("Completion output was not a structured object",
			zap.String("raw", truncate(raw, 500)),
			zap.Error(err))
		return nil, errors.NewInterpretationParseError(raw, err)
	}

	i.logger.Debug("Interpreted query",
		zap.Int("range_constraints", len(criteria.Ranges)),
		zap.Int("text_constraints", len(criteria.Texts)),
		zap.Strings("ignored_attributes", criteria.Ignored))

	return criteria, nil
}

// parseCriteria locates the JSON object in the raw response and decodes
// it. Models sometimes wrap the object in extra prose; everything
// outside the outermost braces is discarded before decoding.
func parseCriteria(raw string) (*query.Criteria, error) {
	trimmed := strings.TrimSpace(raw)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return nil, errNoObject
	}

	return query.Decode([]byte(trimmed[start : end+1]))
}

var errNoObject = errors.NewAppError(errors.CodeInterpretationParse, "no JSON object in response", "")

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
