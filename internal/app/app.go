// Package app assembles stores, embedders and services from configuration.
// Both the API server and the operator CLI start from here.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/config"
	dbRedis "github.com/kailas-cloud/plantdex/internal/db/redis"
	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/metrics"
	"github.com/kailas-cloud/plantdex/internal/repository/embcache"
	plantrepo "github.com/kailas-cloud/plantdex/internal/repository/plant"
	openaiEmb "github.com/kailas-cloud/plantdex/internal/transport/openai"
	catalogsvc "github.com/kailas-cloud/plantdex/internal/usecase/catalog"
	embeddinguc "github.com/kailas-cloud/plantdex/internal/usecase/embedding"
	plantsuc "github.com/kailas-cloud/plantdex/internal/usecase/plants"
)

// Catalog is a plant store usable by the listing engine and by maintenance jobs.
type Catalog interface {
	plantsuc.Catalog
	catalogsvc.Store
	Ping(ctx context.Context) error
}

// Deps are the long-lived components shared by commands.
type Deps struct {
	Catalog Catalog
	// KV is the Redis store behind the catalog, nil for the memory driver.
	KV *dbRedis.Store
	// Embedder is nil when no model is configured.
	Embedder *embeddinguc.Lazy
	// QueryEmbedder prepends the configured query instruction.
	QueryEmbedder domain.Embedder

	closers []func()
}

// Close releases connections.
func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// Open connects the catalog and builds the embedder chain.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Deps, error) {
	d := &Deps{}
	if err := d.openCatalog(ctx, cfg, logger); err != nil {
		d.Close()
		return nil, err
	}

	if cfg.Embedding.Enabled() {
		metrics.RegisterEmbeddingMetrics()
		d.Embedder = BuildEmbedder(cfg, d.KV, logger)
		d.QueryEmbedder = d.Embedder
		if cfg.Embedding.QueryInstruction != "" {
			d.QueryEmbedder = domain.NewInstructionEmbedder(d.Embedder, cfg.Embedding.QueryInstruction)
		}
	}
	return d, nil
}

func (d *Deps) openCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		var plants []plant.Plant
		if cfg.Database.SeedFile != "" {
			loaded, err := plantrepo.LoadFile(cfg.Database.SeedFile)
			if err != nil {
				return fmt.Errorf("load seed file: %w", err)
			}
			plants = loaded
		}
		d.Catalog = plantrepo.NewMemory(plants...)
		logger.Info("Using in-memory catalog", zap.Int("plants", len(plants)))
		return nil

	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			return fmt.Errorf("create redis store: %w", err)
		}
		d.closers = append(d.closers, store.Close)

		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			return fmt.Errorf("database not ready: %w", err)
		}
		d.KV = store
		d.Catalog = plantrepo.New(store, cfg.Storage.KeyPrefix)
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))
		return nil
	}
	return fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

// BuildEmbedder assembles the decorator chain OpenAI -> Cached -> Instrumented behind a
// Lazy that verifies the provider on first use. kv may be nil, which disables caching.
func BuildEmbedder(cfg *config.Config, kv *dbRedis.Store, logger *zap.Logger) *embeddinguc.Lazy {
	ec := cfg.Embedding
	return embeddinguc.NewLazy(func(ctx context.Context) (embeddinguc.Provider, error) {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     ec.APIKey,
			BaseURL:    ec.BaseURL,
			Model:      ec.Model,
			Dimensions: ec.Dimensions,
			Provider:   ec.Provider,
			Logger:     logger,
		})
		if err := base.HealthCheck(ctx); err != nil {
			return nil, fmt.Errorf("verify model %s: %w", ec.Model, err)
		}

		var chain embeddinguc.Provider = base
		if ec.Cache && kv != nil {
			chain = embcache.New(base, kv, embcache.Options{
				Prefix: cfg.Storage.KeyPrefix,
				Model:  ec.Model,
				TTL:    time.Duration(ec.CacheTTLHours) * time.Hour,
			}, metrics.EmbeddingCacheTotal, logger)
		}

		logger.Info("Embedder ready",
			zap.String("provider", ec.Provider),
			zap.String("model", ec.Model),
			zap.Int("dimensions", ec.Dimensions),
			zap.Bool("cache", ec.Cache && kv != nil),
		)
		return embeddinguc.NewInstrumentedEmbedder(chain, ec.Provider, ec.Model, logger), nil
	}, logger)
}

// PlantService builds the listing engine over the catalog.
func (d *Deps) PlantService(cfg *config.Config) *plantsuc.Service {
	metrics.RegisterSearchMetrics()
	var embed plantsuc.Embedder
	if d.QueryEmbedder != nil {
		embed = d.QueryEmbedder
	}
	return plantsuc.New(d.Catalog, embed, plantsuc.Config{
		PageSize:         cfg.Search.PageSize,
		FacetConcurrency: cfg.Search.FacetConcurrency,
	})
}

// CatalogService builds the maintenance service.
func (d *Deps) CatalogService(cfg *config.Config, logger *zap.Logger) *catalogsvc.Service {
	var embed catalogsvc.BatchEmbedder
	if d.Embedder != nil {
		embed = d.Embedder
	}
	return catalogsvc.New(d.Catalog, embed, logger).WithBatchSize(cfg.Embedding.BatchSize)
}
