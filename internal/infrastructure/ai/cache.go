package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// completionCacheTTL bounds how long a model response is reused.
// Extraction results for identical queries are stable enough to cache;
// an hour keeps the window short in case the model is upgraded.
const completionCacheTTL = time.Hour

// CachedCompletionService memoizes completion responses keyed by the
// full request. It wraps any CompletionService.
type CachedCompletionService struct {
	inner  outbound.CompletionService
	cache  outbound.CacheRepository
	logger *zap.Logger
}

// WithCache decorates a completion service with response caching. If
// either the inner service or the cache is nil the inner service is
// returned untouched.
func WithCache(inner outbound.CompletionService, cache outbound.CacheRepository, logger *zap.Logger) outbound.CompletionService {
	if inner == nil || cache == nil {
		return inner
	}
	return &CachedCompletionService{
		inner:  inner,
		cache:  cache,
		logger: logger.Named("completion-cache"),
	}
}

func (s *CachedCompletionService) Complete(ctx context.Context, system, prompt string, opts outbound.CompletionOptions) (string, error) {
	key := completionKey(system, prompt, opts)

	if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
		s.logger.Debug("Completion cache hit", zap.String("key", key))
		return string(cached), nil
	}

	result, err := s.inner.Complete(ctx, system, prompt, opts)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, []byte(result), completionCacheTTL); err != nil {
		// A write failure costs a recomputation later, nothing more.
		s.logger.Warn("Completion cache write failed", zap.Error(err))
	}
	return result, nil
}

func completionKey(system, prompt string, opts outbound.CompletionOptions) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%.3f\x00%d", system, prompt, opts.Temperature, opts.MaxTokens)
	return "completion:" + hex.EncodeToString(h.Sum(nil))
}
