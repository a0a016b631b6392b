package ai

import (
	"context"
	"testing"

	"github.com/howl2go/v2/internal/infrastructure/cache"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCompletion struct {
	calls    int
	response string
}

func (c *countingCompletion) Complete(ctx context.Context, system, prompt string, opts outbound.CompletionOptions) (string, error) {
	c.calls++
	return c.response, nil
}

func TestCachedCompletionMemoizes(t *testing.T) {
	inner := &countingCompletion{response: `{"calories": {"max": 500}}`}
	svc := WithCache(inner, cache.NewMemoryCache(), zap.NewNop())

	ctx := context.Background()
	opts := outbound.CompletionOptions{Temperature: 0.1, MaxTokens: 500}

	first, err := svc.Complete(ctx, "sys", "cheap burger", opts)
	require.NoError(t, err)
	second, err := svc.Complete(ctx, "sys", "cheap burger", opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedCompletionKeyIncludesOptions(t *testing.T) {
	inner := &countingCompletion{response: "{}"}
	svc := WithCache(inner, cache.NewMemoryCache(), zap.NewNop())

	ctx := context.Background()
	_, err := svc.Complete(ctx, "sys", "cheap burger", outbound.CompletionOptions{Temperature: 0.1})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, "sys", "cheap burger", outbound.CompletionOptions{Temperature: 0.7})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestWithCacheNilPassthrough(t *testing.T) {
	assert.Nil(t, WithCache(nil, cache.NewMemoryCache(), zap.NewNop()))

	inner := &countingCompletion{}
	assert.Equal(t, outbound.CompletionService(inner), WithCache(inner, nil, zap.NewNop()))
}
