package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

const (
	suggestionTemperature = 0.7
	suggestionMaxTokens   = 800
)

const suggestionSystemPrompt = "You are a food recommendation expert for a fast food delivery app. " +
	"Respond only with valid JSON, no markdown and no commentary."

// llmSuggestion is one raw suggestion from the language model before it
// is resolved against the catalog.
type llmSuggestion struct {
	Restaurant   string   `json:"restaurant"`
	ItemKeywords []string `json:"itemKeywords"`
	Reason       string   `json:"reason"`
	Type         string   `json:"type"`
}

// LLMSuggester asks a language model for personalized picks and
// resolves them to real catalog items.
type LLMSuggester struct {
	completion outbound.CompletionService
	items      outbound.ItemRepository
	rng        *rand.Rand
	logger     *zap.Logger
}

// NewLLMSuggester creates the suggester. completion may be nil when no
// provider is configured, in which case Suggest reports the capability
// as unavailable.
func NewLLMSuggester(completion outbound.CompletionService, items outbound.ItemRepository, rng *rand.Rand, logger *zap.Logger) *LLMSuggester {
	return &LLMSuggester{completion: completion, items: items, rng: rng, logger: logger.Named("llm-suggester")}
}

// Suggest generates up to limit recommendations from the model. Every
// suggestion must resolve to a real catalog item; unresolvable ones are
// dropped.
func (s *LLMSuggester) Suggest(ctx context.Context, profile *Profile, limit int) ([]inbound.Recommendation, error) {
	if s.completion == nil {
		return nil, errors.NewCapabilityUnavailableError("none", nil)
	}
	if profile == nil || limit <= 0 {
		return nil, nil
	}

	raw, err := s.completion.Complete(ctx, suggestionSystemPrompt, suggestionPrompt(profile, limit), outbound.CompletionOptions{
		Temperature: suggestionTemperature,
		MaxTokens:   suggestionMaxTokens,
	})
	if err != nil {
		return nil, errors.NewCapabilityUnavailableError("completion", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}

	recs := make([]inbound.Recommendation, 0, limit)
	for _, sg := range suggestions {
		if len(recs) >= limit {
			break
		}
		item, err := s.resolve(ctx, sg)
		if err != nil {
			return nil, err
		}
		if item == nil {
			s.logger.Debug("Suggestion did not resolve to a catalog item",
				zap.String("restaurant", sg.Restaurant),
				zap.Strings("keywords", sg.ItemKeywords))
			continue
		}
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(*item),
			Reason:     sg.Reason,
			Type:       suggestionType(sg.Type),
			Confidence: 85,
		})
	}
	return recs, nil
}

// resolve matches a suggestion to the catalog by venue plus keyword
// containment. A suggestion with no keywords picks randomly among the
// venue's first few items so repeated calls do not pin one item.
func (s *LLMSuggester) resolve(ctx context.Context, sg llmSuggestion) (*menu.Item, error) {
	venue := strings.TrimSpace(sg.Restaurant)
	if venue == "" {
		return nil, nil
	}

	keywords := make([]string, 0, len(sg.ItemKeywords))
	for _, kw := range sg.ItemKeywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	if len(keywords) > 0 {
		pred := query.Predicate{
			query.FieldCompany: {Contains: []string{venue}},
			query.FieldItem:    {Contains: keywords},
		}
		item, err := s.items.FindOne(ctx, pred, outbound.FindOptions{})
		if err != nil || item != nil {
			return item, err
		}
	}

	// No keywords, or nothing matched them. Pick from the venue's
	// first few items instead of failing the suggestion outright.
	pool, err := s.items.Find(ctx,
		query.Predicate{query.FieldCompany: {Contains: []string{venue}}},
		outbound.FindOptions{Limit: 5})
	if err != nil || len(pool) == 0 {
		return nil, err
	}
	pick := pool[s.rng.Intn(len(pool))]
	return &pick, nil
}

func suggestionType(t string) inbound.RecommendationType {
	switch inbound.RecommendationType(t) {
	case inbound.TypeFrequent, inbound.TypeSimilar, inbound.TypeExplore, inbound.TypeTimeBased, inbound.TypeHealthyAlt:
		return inbound.RecommendationType(t)
	default:
		return inbound.TypeSimilar
	}
}

// parseSuggestions extracts a JSON array from the raw model output.
func parseSuggestions(raw string) ([]llmSuggestion, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, errors.NewInterpretationParseError(raw, fmt.Errorf("no JSON array in response"))
	}
	var suggestions []llmSuggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &suggestions); err != nil {
		return nil, errors.NewInterpretationParseError(raw, err)
	}
	return suggestions, nil
}

func suggestionPrompt(profile *Profile, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d fast food items for a user with this ordering profile:\n", limit)
	fmt.Fprintf(&b, "- Average calories per item: %.0f\n", profile.AvgCalories)
	fmt.Fprintf(&b, "- Average protein per item: %.0fg\n", profile.AvgProtein)
	fmt.Fprintf(&b, "- Dietary pattern: %s\n", profile.DietaryPattern)
	if len(profile.FavoriteVenues) > 0 {
		fmt.Fprintf(&b, "- Favorite restaurants: %s\n", strings.Join(profile.FavoriteVenueNames(), ", "))
	}
	if len(profile.FrequentItems) > 0 {
		names := make([]string, 0, len(profile.FrequentItems))
		for _, it := range profile.FrequentItems {
			names = append(names, fmt.Sprintf("%s (%s)", it.Name, it.Company))
		}
		fmt.Fprintf(&b, "- Frequently ordered: %s\n", strings.Join(names, ", "))
	}
	b.WriteString("\nAvailable restaurants: McDonald's, Burger King, Wendy's, KFC, Taco Bell, Pizza Hut.\n")
	b.WriteString("\nRespond with a JSON array only. Each element must have:\n")
	b.WriteString(`{"restaurant": "exact restaurant name", "itemKeywords": ["words", "from", "item", "name"], "reason": "one short sentence for the user", "type": "frequent|similar|explore|time-based|healthy-alt"}`)
	b.WriteString("\nMix familiar picks with a couple of new discoveries.")
	return b.String()
}
