// Package catalog holds the operator workflows that prepare a catalog for search:
// index creation, seeding and embedding generation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
)

// DefaultEmbedBatchSize is the number of plants embedded per provider call.
const DefaultEmbedBatchSize = 64

// SeedReport summarizes a seed run.
type SeedReport struct {
	Total   int
	Created int
	Updated int
}

// ItemError is a per-plant failure that did not stop the run.
type ItemError struct {
	ID  string
	Err error
}

// EmbedReport summarizes an embedding run.
type EmbedReport struct {
	Scanned  int
	Skipped  int
	Embedded int
	Tokens   int
	Failed   []ItemError
}

// Service runs catalog maintenance.
type Service struct {
	store     Store
	embed     BatchEmbedder
	batchSize int
	logger    *zap.Logger
}

// New creates a catalog service. embed may be nil when only indexing and seeding are needed.
func New(store Store, embed BatchEmbedder, logger *zap.Logger) *Service {
	return &Service{store: store, embed: embed, batchSize: DefaultEmbedBatchSize, logger: logger}
}

// WithBatchSize configures how many plants are embedded per provider call.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// EnsureIndex creates the catalog index if it does not exist yet.
func (s *Service) EnsureIndex(ctx context.Context) (bool, error) {
	created, err := s.store.EnsureIndex(ctx)
	if err != nil {
		return false, fmt.Errorf("ensure index: %w", err)
	}
	if created {
		s.logger.Info("Catalog index created")
	} else {
		s.logger.Debug("Catalog index already exists")
	}
	return created, nil
}

// Seed writes plants to the catalog. Records sharing an ID are collapsed, last one wins.
func (s *Service) Seed(ctx context.Context, plants []plant.Plant) (SeedReport, error) {
	unique := dedupe(plants)
	created, err := s.store.Upsert(ctx, unique)
	if err != nil {
		return SeedReport{}, fmt.Errorf("seed: %w", err)
	}
	r := SeedReport{Total: len(unique), Created: created, Updated: len(unique) - created}
	s.logger.Info("Catalog seeded",
		zap.Int("total", r.Total),
		zap.Int("created", r.Created),
		zap.Int("updated", r.Updated),
	)
	return r, nil
}

// EmbedMissing generates embeddings for plants that lack one, or for every plant when force is set.
// A provider failure stops the run; the report covers the batches finished before it.
func (s *Service) EmbedMissing(ctx context.Context, force bool) (EmbedReport, error) {
	if s.embed == nil {
		return EmbedReport{}, domain.ErrEmbeddingUnavailable
	}

	all, err := s.store.Find(ctx, predicate.New(), predicate.FindOptions{
		Sort:             []order.Key{{Field: plant.FieldID, Dir: order.Asc}},
		IncludeEmbedding: true,
	})
	if err != nil {
		return EmbedReport{}, fmt.Errorf("list plants: %w", err)
	}

	var r EmbedReport
	r.Scanned = len(all)
	todo := make([]plant.Plant, 0, len(all))
	for _, p := range all {
		if (!force && len(p.Embedding) > 0) || searchableText(&p) == "" {
			r.Skipped++
			continue
		}
		todo = append(todo, p)
	}

	for batch := range slices.Chunk(todo, s.batchSize) {
		if err := s.embedBatch(ctx, batch, &r); err != nil {
			s.logger.Error("Embedding run stopped",
				zap.Int("embedded", r.Embedded),
				zap.Int("remaining", len(todo)-r.Embedded-len(r.Failed)),
				zap.Error(err),
			)
			return r, err
		}
		s.logger.Debug("Embedding batch stored", zap.Int("size", len(batch)), zap.Int("embedded", r.Embedded))
	}

	s.logger.Info("Embedding run finished",
		zap.Int("scanned", r.Scanned),
		zap.Int("skipped", r.Skipped),
		zap.Int("embedded", r.Embedded),
		zap.Int("failed", len(r.Failed)),
		zap.Int("tokens", r.Tokens),
	)
	return r, nil
}

func (s *Service) embedBatch(ctx context.Context, batch []plant.Plant, r *EmbedReport) error {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = searchableText(&batch[i])
	}

	res, err := s.embed.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch starting at %s: %w", batch[0].ID, err)
	}
	if len(res.Embeddings) != len(batch) {
		return fmt.Errorf("embed batch starting at %s: got %d vectors for %d plants: %w",
			batch[0].ID, len(res.Embeddings), len(batch), domain.ErrEmbeddingProviderError)
	}
	r.Tokens += res.TotalTokens

	for i, p := range batch {
		if err := s.store.SetEmbedding(ctx, p.ID, res.Embeddings[i]); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("store embedding %s: %w", p.ID, err)
			}
			s.logger.Warn("Store embedding failed", zap.String("id", p.ID), zap.Error(err))
			r.Failed = append(r.Failed, ItemError{ID: p.ID, Err: err})
			continue
		}
		r.Embedded++
	}
	return nil
}

func searchableText(p *plant.Plant) string {
	return domain.SearchableText(p.CommonName, p.ScientificName)
}

func dedupe(plants []plant.Plant) []plant.Plant {
	pos := make(map[string]int, len(plants))
	out := make([]plant.Plant, 0, len(plants))
	for _, p := range plants {
		p.Normalize()
		if i, ok := pos[p.ID]; ok && p.ID != "" {
			out[i] = p
			continue
		}
		pos[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
