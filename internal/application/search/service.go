// Package search provides the application layer for natural language
// catalog search: interpret, apply saved preferences, compile, query,
// rank.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/howl2go/v2/internal/application/interpreter"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/domain/user"
	"github.com/howl2go/v2/internal/infrastructure/monitoring"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the search use case.
type Service struct {
	interpreter *interpreter.Interpreter
	items       outbound.ItemRepository
	users       outbound.UserRepository
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

// NewService creates a search service. users may be nil when no saved
// preference source exists; metrics may be nil.
func NewService(
	intr *interpreter.Interpreter,
	items outbound.ItemRepository,
	users outbound.UserRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.SearchService {
	return &Service{
		interpreter: intr,
		items:       items,
		users:       users,
		metrics:     metrics,
		logger:      logger.Named("search-service"),
	}
}

// Search interprets the query text and returns ranked catalog items.
//
// Invalid input surfaces unmodified. Interpretation parse failures and
// capability absence are caught here, exactly once, and converted into
// a degraded keyword search over the raw text; they never propagate to
// the caller as errors.
func (s *Service) Search(ctx context.Context, q inbound.SearchQuery) (*inbound.SearchResult, error) {
	start := time.Now()
	criteria, err := s.interpreter.Interpret(ctx, q.Text)
	s.metrics.ObserveInterpretation(time.Since(start).Seconds())

	degraded := false
	if err != nil {
		if errors.Is(err, errors.CodeInvalidInput) {
			return nil, err
		}
		if errors.Is(err, errors.CodeInterpretationParse) {
			s.metrics.RecordParseFailure()
		} else {
			s.metrics.RecordCapabilityFallback()
		}
		s.logger.Warn("Structured extraction unavailable, degrading to keyword search",
			zap.String("code", string(errors.GetCode(err))),
			zap.Error(err))
		criteria = keywordCriteria(q.Text)
		degraded = true
	}

	prefs := s.loadPreferences(ctx, q)
	applied := applyPreferences(criteria, prefs)

	pred := query.Compile(criteria)
	opts := outbound.FindOptions{Limit: q.Limit}
	opts.SortField, opts.SortDesc = sortHeuristic(criteria)

	items, err := s.items.Find(ctx, pred, opts)
	if err != nil {
		return nil, errors.NewDatabaseError("search items", err)
	}

	priced := make([]inbound.PricedItem, len(items))
	for idx, item := range items {
		priced[idx] = inbound.NewPricedItem(item)
	}

	if prefs != nil && len(prefs.FavoriteVenues) > 0 {
		priced = boostFavoriteVenues(priced, prefs.FavoriteVenues)
	}

	return &inbound.SearchResult{
		Criteria:           criteria,
		Items:              priced,
		Count:              len(priced),
		PreferencesApplied: applied,
		Degraded:           degraded,
	}, nil
}

// keywordCriteria is the deterministic degradation: match the whole
// query text as an item-name substring.
func keywordCriteria(text string) *query.Criteria {
	c := query.NewCriteria()
	c.SetText(query.AttributeItem, query.Text{Name: strings.TrimSpace(text)})
	return c
}

func (s *Service) loadPreferences(ctx context.Context, q inbound.SearchQuery) *user.Preferences {
	if s.users == nil || q.UserID == nil {
		return nil
	}
	prefs, err := s.users.Preferences(ctx, *q.UserID)
	if err != nil {
		// Preference lookup failures never fail the search.
		s.logger.Warn("Could not load user preferences", zap.Error(err))
		return nil
	}
	return prefs
}

// applyPreferences folds saved preferences in as defaults. Explicit
// interpreted constraints always win over a saved preference.
func applyPreferences(c *query.Criteria, prefs *user.Preferences) bool {
	if prefs == nil {
		return false
	}

	applied := false
	if prefs.MaxCalories > 0 {
		r, ok := c.Range(query.AttributeCalories)
		if !ok || r.Max == nil {
			r.Max = query.Float(prefs.MaxCalories)
			c.SetRange(query.AttributeCalories, r)
			applied = true
		}
	}
	if prefs.MinProtein > 0 {
		r, ok := c.Range(query.AttributeProtein)
		if !ok || r.Min == nil {
			r.Min = query.Float(prefs.MinProtein)
			c.SetRange(query.AttributeProtein, r)
			applied = true
		}
	}
	return applied || len(prefs.FavoriteVenues) > 0
}

// sortHeuristic picks the sort order from the dominant criterion: the
// attribute the user cared about most leads the ranking. Price sorts by
// calories because price is derived from them.
func sortHeuristic(c *query.Criteria) (query.Field, bool) {
	if r, ok := c.Range(query.AttributeProtein); ok && r.Min != nil {
		return query.FieldProtein, true
	}
	if r, ok := c.Range(query.AttributeCalories); ok && r.Max != nil {
		return query.FieldCalories, false
	}
	if r, ok := c.Range(query.AttributeTotalFat); ok && r.Max != nil {
		return query.FieldTotalFat, false
	}
	if r, ok := c.Range(query.AttributePrice); ok {
		if r.Max != nil {
			return query.FieldCalories, false
		}
		if r.Min != nil {
			return query.FieldCalories, true
		}
	}
	return "", false
}

// boostFavoriteVenues stably partitions results so items from favorite
// venues come first, preserving sort order within each group.
func boostFavoriteVenues(items []inbound.PricedItem, favorites []string) []inbound.PricedItem {
	normalized := make([]string, 0, len(favorites))
	for _, f := range favorites {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(f)))
	}

	boosted := make([]inbound.PricedItem, 0, len(items))
	rest := make([]inbound.PricedItem, 0, len(items))
	for _, item := range items {
		company := strings.ToLower(strings.TrimSpace(item.Company))
		if company != "" && matchesAnyVenue(company, normalized) {
			boosted = append(boosted, item)
		} else {
			rest = append(rest, item)
		}
	}

	return append(boosted, rest...)
}

func matchesAnyVenue(company string, favorites []string) bool {
	for _, fav := range favorites {
		if fav == "" {
			continue
		}
		if strings.Contains(company, fav) || strings.Contains(fav, company) {
			return true
		}
	}
	return false
}
