// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/order"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/domain/user"
)

// FindOptions narrows and orders an item lookup beyond what the compiled
// predicate expresses. Strategy-specific filters live here so the
// predicate stays a pure compilation artifact.
type FindOptions struct {
	// Venues restricts results to these companies when non-empty.
	Venues []string
	// ExcludeItemNames drops items whose name contains any of these
	// terms, compared case-insensitively.
	ExcludeItemNames []string
	// SortField orders results by a stored field when set.
	SortField query.Field
	// SortDesc reverses the sort order.
	SortDesc bool
	// Limit caps the result count when positive.
	Limit int
}

// ItemRepository is the read-only catalog lookup boundary. The core
// never writes item records.
type ItemRepository interface {
	// Find returns items matching the predicate, narrowed and ordered
	// by opts. Zero matches yield an empty slice, not an error.
	Find(ctx context.Context, pred query.Predicate, opts FindOptions) ([]menu.Item, error)
	// FindOne returns the first item matching the predicate and opts,
	// or nil when nothing matches.
	FindOne(ctx context.Context, pred query.Predicate, opts FindOptions) (*menu.Item, error)
}

// OrderRepository is the read-only order history boundary.
type OrderRepository interface {
	// RecentByUser returns the user's most recent orders, newest first,
	// capped at limit. No history yields an empty slice.
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]order.Order, error)
}

// UserRepository exposes the saved preferences the search path folds in
// as defaults.
type UserRepository interface {
	// Preferences returns the user's saved preferences, or nil when the
	// user has none.
	Preferences(ctx context.Context, userID uuid.UUID) (*user.Preferences, error)
}

// CompletionOptions tune one text-completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// CompletionService is the pluggable text-completion capability. It may
// be absent entirely (a nil handle at construction time); callers treat
// absence the same as failure and fall back to deterministic logic.
type CompletionService interface {
	// Complete sends a system and user prompt and returns the raw text
	// response. Implementations must honor ctx cancellation and bound
	// the call with a timeout.
	Complete(ctx context.Context, system, prompt string, opts CompletionOptions) (string, error)
}
