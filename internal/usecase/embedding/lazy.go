package embedding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/plantdex/internal/domain"
)

// Provider is the embedder a Lazy builds on first use.
type Provider interface {
	domain.Embedder
	domain.BatchEmbedder
}

// InitFunc builds the provider. It may block on the network, e.g. to verify the model exists.
type InitFunc func(ctx context.Context) (Provider, error)

// Lazy defers provider construction to the first embedding call.
// Concurrent first calls share one initialization. A failed initialization
// is not remembered, so the next call tries again.
type Lazy struct {
	init   InitFunc
	group  singleflight.Group
	logger *zap.Logger

	mu       sync.RWMutex
	provider Provider
}

// NewLazy creates a Lazy embedder.
func NewLazy(init InitFunc, logger *zap.Logger) *Lazy {
	return &Lazy{init: init, logger: logger}
}

// Embed implements domain.Embedder.
func (l *Lazy) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	p, err := l.get(ctx)
	if err != nil {
		return domain.EmbeddingResult{}, err
	}
	return p.Embed(ctx, text)
}

// BatchEmbed implements domain.BatchEmbedder.
func (l *Lazy) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	p, err := l.get(ctx)
	if err != nil {
		return domain.BatchEmbeddingResult{}, err
	}
	return p.BatchEmbed(ctx, texts)
}

// HealthCheck reports whether the provider can be built, and delegates when it supports health checks.
func (l *Lazy) HealthCheck(ctx context.Context) error {
	p, err := l.get(ctx)
	if err != nil {
		return err
	}
	if hc, ok := p.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Ready reports whether the provider has been built.
func (l *Lazy) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.provider != nil
}

func (l *Lazy) get(ctx context.Context) (Provider, error) {
	l.mu.RLock()
	p := l.provider
	l.mu.RUnlock()
	if p != nil {
		return p, nil
	}

	v, err, shared := l.group.Do("init", func() (any, error) {
		l.mu.RLock()
		existing := l.provider
		l.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		built, err := l.init(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.provider = built
		l.mu.Unlock()
		l.logger.Info("Embedding provider initialized")
		return built, nil
	})
	if err != nil {
		l.logger.Warn("Embedding provider init failed", zap.Bool("shared", shared), zap.Error(err))
		return nil, fmt.Errorf("init embedder: %w: %w", domain.ErrEmbeddingProviderError, err)
	}
	return v.(Provider), nil
}
