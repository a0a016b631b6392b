package recommendation

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/infrastructure/monitoring"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultLimit = 8
	maxLimit     = 20

	// Slot counts for the strategy mix.
	healthierSlots = 2
	timeBasedSlots = 2
	frequentSlots  = 2
	similarSlots   = 2
	exploreSlots   = 1
)

// Service coordinates the strategies into one recommendation feed. It
// implements inbound.RecommendationService.
type Service struct {
	profiler  *Profiler
	suggester *LLMSuggester
	frequent  *FrequentStrategy
	similar   *SimilarStrategy
	explore   *ExploreStrategy
	timeBased *TimeBasedStrategy
	healthier *HealthierStrategy
	items     outbound.ItemRepository
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewService wires the strategies into the orchestrator.
func NewService(
	profiler *Profiler,
	suggester *LLMSuggester,
	frequent *FrequentStrategy,
	similar *SimilarStrategy,
	explore *ExploreStrategy,
	timeBased *TimeBasedStrategy,
	healthier *HealthierStrategy,
	items outbound.ItemRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.RecommendationService {
	return &Service{
		profiler:  profiler,
		suggester: suggester,
		frequent:  frequent,
		similar:   similar,
		explore:   explore,
		timeBased: timeBased,
		healthier: healthier,
		items:     items,
		metrics:   metrics,
		logger:    logger.Named("recommendation-service"),
	}
}

// Personalized builds the full mixed feed for a user.
//
// Users without history get popular items. Users with history get a
// model-generated core when a provider is available, otherwise a
// deterministic mix of frequent, similar, exploration and popular
// picks; either core is then augmented with healthier and time-based
// suggestions, deduplicated first-wins, and truncated to the limit.
func (s *Service) Personalized(ctx context.Context, userID uuid.UUID, opts inbound.RecommendationOptions) (*inbound.RecommendationResponse, error) {
	limit := clampLimit(opts.Limit)

	profile, err := s.profiler.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return s.newUserResponse(ctx, limit)
	}

	core := s.coreRecommendations(ctx, profile, limit)

	// Augmentation strategies are independent of the core and of each
	// other, so they run concurrently.
	var (
		wg            sync.WaitGroup
		healthierRecs []inbound.Recommendation
		timeRecs      []inbound.Recommendation
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		recs, err := s.healthier.Recommend(ctx, profile, healthierSlots)
		if err != nil {
			s.logger.Warn("Healthier strategy failed", zap.Error(err))
			return
		}
		healthierRecs = recs
	}()
	go func() {
		defer wg.Done()
		recs, err := s.timeBased.Recommend(ctx, profile, "", timeBasedSlots)
		if err != nil {
			s.logger.Warn("Time-based strategy failed", zap.Error(err))
			return
		}
		timeRecs = recs
	}()
	wg.Wait()

	combined := dedupe(append(append(core, healthierRecs...), timeRecs...))
	if len(combined) > limit {
		combined = combined[:limit]
	}
	s.recordServed(combined)

	resp := &inbound.RecommendationResponse{
		Recommendations: combined,
		Message:         personalizedMessage(profile),
	}
	if opts.IncludeProfile {
		resp.Profile = summarize(profile)
	}
	return resp, nil
}

// coreRecommendations produces the feed's core, preferring the model
// and falling back to the deterministic mix on any model failure.
func (s *Service) coreRecommendations(ctx context.Context, profile *Profile, limit int) []inbound.Recommendation {
	llmShare := (limit + 1) / 2

	recs, err := s.suggester.Suggest(ctx, profile, llmShare)
	if err == nil && len(recs) > 0 {
		return recs
	}
	if err != nil {
		if errors.Is(err, errors.CodeInterpretationParse) {
			s.metrics.RecordParseFailure()
		} else {
			s.metrics.RecordCapabilityFallback()
		}
		s.logger.Warn("Model suggestions unavailable, using deterministic mix", zap.Error(err))
	}

	return s.deterministicMix(ctx, profile, limit)
}

// deterministicMix is the model-free core: the user's staples, a few
// near matches, one discovery, then popular fill.
func (s *Service) deterministicMix(ctx context.Context, profile *Profile, limit int) []inbound.Recommendation {
	var mix []inbound.Recommendation
	for _, step := range []struct {
		name string
		run  func() ([]inbound.Recommendation, error)
	}{
		{"frequent", func() ([]inbound.Recommendation, error) { return s.frequent.Recommend(ctx, profile, frequentSlots) }},
		{"similar", func() ([]inbound.Recommendation, error) { return s.similar.Recommend(ctx, profile, similarSlots) }},
		{"explore", func() ([]inbound.Recommendation, error) { return s.explore.Recommend(ctx, profile, exploreSlots) }},
	} {
		recs, err := step.run()
		if err != nil {
			s.logger.Warn("Strategy failed in deterministic mix",
				zap.String("strategy", step.name), zap.Error(err))
			continue
		}
		mix = append(mix, recs...)
	}

	mix = dedupe(mix)
	if fill := limit - len(mix); fill > 0 {
		popular, err := popularItems(ctx, s.items, fill)
		if err != nil {
			s.logger.Warn("Popular fill failed", zap.Error(err))
		} else {
			mix = dedupe(append(mix, popular...))
		}
	}
	return mix
}

func (s *Service) newUserResponse(ctx context.Context, limit int) (*inbound.RecommendationResponse, error) {
	popular, err := popularItems(ctx, s.items, limit)
	if err != nil {
		return nil, err
	}
	s.recordServed(popular)
	return &inbound.RecommendationResponse{
		IsNewUser:       true,
		Recommendations: popular,
		Message:         "Welcome! Here are some popular items to get you started.",
	}, nil
}

// Frequent serves the per-strategy endpoint.
func (s *Service) Frequent(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.Recommendation, error) {
	return s.strategyForUser(ctx, userID, limit, func(ctx context.Context, p *Profile, n int) ([]inbound.Recommendation, error) {
		return s.frequent.Recommend(ctx, p, n)
	})
}

func (s *Service) Similar(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.Recommendation, error) {
	return s.strategyForUser(ctx, userID, limit, func(ctx context.Context, p *Profile, n int) ([]inbound.Recommendation, error) {
		return s.similar.Recommend(ctx, p, n)
	})
}

func (s *Service) Exploration(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.Recommendation, error) {
	return s.strategyForUser(ctx, userID, limit, func(ctx context.Context, p *Profile, n int) ([]inbound.Recommendation, error) {
		return s.explore.Recommend(ctx, p, n)
	})
}

func (s *Service) HealthierAlternatives(ctx context.Context, userID uuid.UUID, limit int) ([]inbound.Recommendation, error) {
	return s.strategyForUser(ctx, userID, limit, func(ctx context.Context, p *Profile, n int) ([]inbound.Recommendation, error) {
		return s.healthier.Recommend(ctx, p, n)
	})
}

// TimeBased works even for users without history; the profile only
// narrows the venue pool when present.
func (s *Service) TimeBased(ctx context.Context, userID uuid.UUID, mealType string, limit int) ([]inbound.Recommendation, error) {
	limit = clampLimit(limit)
	profile, err := s.profiler.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	recs, err := s.timeBased.Recommend(ctx, profile, mealType, limit)
	if err != nil {
		return nil, err
	}
	s.recordServed(recs)
	return recs, nil
}

func (s *Service) strategyForUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	run func(context.Context, *Profile, int) ([]inbound.Recommendation, error),
) ([]inbound.Recommendation, error) {
	limit = clampLimit(limit)
	profile, err := s.profiler.Build(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	recs, err := run(ctx, profile, limit)
	if err != nil {
		return nil, err
	}
	s.recordServed(recs)
	return recs, nil
}

func (s *Service) recordServed(recs []inbound.Recommendation) {
	byType := map[inbound.RecommendationType]int{}
	for _, r := range recs {
		byType[r.Type]++
	}
	for t, n := range byType {
		s.metrics.RecordServed(string(t), n)
	}
}

// dedupe removes duplicate items, keeping the first occurrence. The
// identity is the catalog ID when present, otherwise venue plus
// lowercased item name.
func dedupe(recs []inbound.Recommendation) []inbound.Recommendation {
	seen := map[string]bool{}
	out := recs[:0:0]
	for _, r := range recs {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func dedupeKey(r inbound.Recommendation) string {
	if r.Item.ID != uuid.Nil {
		return r.Item.ID.String()
	}
	return r.Item.Company + "\x00" + strings.ToLower(r.Item.Name)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func personalizedMessage(p *Profile) string {
	switch p.DietaryPattern {
	case PatternHighProtein:
		return "Picked for you, with plenty of protein."
	case PatternLowCalorie:
		return "Picked for you, keeping things light."
	case PatternHearty:
		return "Picked for you, hearty as you like it."
	default:
		return "Picked for you based on your recent orders."
	}
}

func summarize(p *Profile) *inbound.ProfileSummary {
	summary := &inbound.ProfileSummary{
		TotalOrders:        p.TotalOrders,
		AvgCaloriesPerItem: p.AvgCalories,
		AvgProteinPerItem:  p.AvgProtein,
		DietaryPreference:  p.DietaryPattern,
	}
	if len(p.FavoriteVenues) > 0 {
		summary.FavoriteVenue = p.FavoriteVenues[0].Name
	}
	for i, item := range p.FrequentItems {
		if i >= 5 {
			break
		}
		summary.TopItems = append(summary.TopItems, item.Name)
	}
	return summary
}
