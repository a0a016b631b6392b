// Package container wires the application together with Uber FX.
package container

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/howl2go/v2/internal/application/interpreter"
	"github.com/howl2go/v2/internal/application/recommendation"
	"github.com/howl2go/v2/internal/application/search"
	"github.com/howl2go/v2/internal/infrastructure/ai"
	"github.com/howl2go/v2/internal/infrastructure/cache"
	"github.com/howl2go/v2/internal/infrastructure/config"
	httpserver "github.com/howl2go/v2/internal/infrastructure/http"
	"github.com/howl2go/v2/internal/infrastructure/monitoring"
	gormrepo "github.com/howl2go/v2/internal/infrastructure/persistence/gorm"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New builds the FX application.
func New(configPath string) *fx.App {
	return fx.New(
		fx.Provide(func() (*config.Config, error) { return config.Load(configPath) }),
		fx.Provide(newLogger),
		fx.Provide(monitoring.New),
		fx.Provide(newDatabase),
		fx.Provide(newItemRepository),
		fx.Provide(newOrderRepository),
		fx.Provide(newUserRepository),
		fx.Provide(newCacheRepository),
		fx.Provide(newCompletionService),
		fx.Provide(newInterpreter),
		fx.Provide(newSearchService),
		fx.Provide(newRecommendationService),
		fx.Provide(newHTTPServer),
		fx.Invoke(startServer),
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Logging.Development,
	})
}

func newDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return gormrepo.NewDatabase(cfg.Database, log)
}

func newItemRepository(db *gorm.DB) outbound.ItemRepository {
	return gormrepo.NewItemRepository(db)
}

func newOrderRepository(db *gorm.DB) outbound.OrderRepository {
	return gormrepo.NewOrderRepository(db)
}

func newUserRepository(db *gorm.DB) outbound.UserRepository {
	return gormrepo.NewUserRepository(db)
}

func newCacheRepository(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache()
	}
	redisCache, err := cache.NewRedisCache(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		return cache.NewMemoryCache()
	}
	return redisCache
}

func newCompletionService(cfg *config.Config, cacheRepo outbound.CacheRepository, log *zap.Logger) outbound.CompletionService {
	return ai.WithCache(ai.SelectProvider(cfg.AI, log), cacheRepo, log)
}

func newInterpreter(completion outbound.CompletionService, log *zap.Logger) *interpreter.Interpreter {
	return interpreter.New(completion, log)
}

func newSearchService(
	intr *interpreter.Interpreter,
	items outbound.ItemRepository,
	users outbound.UserRepository,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) inbound.SearchService {
	return search.NewService(intr, items, users, metrics, log)
}

func newRecommendationService(
	items outbound.ItemRepository,
	orders outbound.OrderRepository,
	completion outbound.CompletionService,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) inbound.RecommendationService {
	rng := func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return recommendation.NewService(
		recommendation.NewProfiler(orders, log),
		recommendation.NewLLMSuggester(completion, items, rng(), log),
		recommendation.NewFrequentStrategy(items, log),
		recommendation.NewSimilarStrategy(items, log),
		recommendation.NewExploreStrategy(items, rng(), log),
		recommendation.NewTimeBasedStrategy(items, rng(), nil, log),
		recommendation.NewHealthierStrategy(items, rng(), log),
		items,
		metrics,
		log,
	)
}

func newHTTPServer(
	cfg *config.Config,
	searchService inbound.SearchService,
	recommendations inbound.RecommendationService,
	metrics *monitoring.Metrics,
	log *zap.Logger,
) *httpserver.Server {
	return httpserver.NewServer(*cfg, searchService, recommendations, metrics, log)
}

func startServer(lc fx.Lifecycle, server *httpserver.Server, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.Start(); err != nil && err != http.ErrServerClosed {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
