package plants

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
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
	"github.com/kailas-cloud/plantdex/internal/logger"
	"github.com/kailas-cloud/plantdex/internal/metrics"
)

// listSemantic ranks every candidate in process, then pages and tallies facets
// over the scored set. Candidates below domain.MinSemanticScore are dropped.
func (s *Service) listSemantic(ctx context.Context, p *plan) (result.Response, error) {
	pool, err := s.semanticPool(ctx, p)
	if err != nil {
		return result.Response{}, err
	}

	scored := s.score(ctx, pool, p.vector)
	metrics.SemanticCandidates.Observe(float64(len(pool)))

	matched := make([]order.Candidate, 0, len(scored))
	for _, c := range scored {
		if p.base.Matches(c.Plant) {
			matched = append(matched, c)
		}
	}
	slices.SortStableFunc(matched, order.Semantic(p.sort))

	resp := result.Response{Results: []result.Hit{}}
	if p.req.FetchTotal() {
		n := len(matched)
		resp.Total = &n
	}
	if p.req.FetchResults() {
		page := matched
		if p.facets {
			page = window(matched, p.req.Offset(s.cfg.PageSize), s.cfg.PageSize)
		}
		for _, c := range page {
			score := c.Score
			resp.Results = append(resp.Results, result.Hit{Plant: c.Plant.WithoutEmbedding(), Score: &score})
		}
	}

	if !p.facets {
		return resp, nil
	}
	resp.Counts = tallyFacets(p.filters, p.base, scored)
	resp.HeightRange = tallyRange(p.base, scored, plant.FieldHeight, outward)
	resp.SpreadRange = tallyRange(p.base, scored, plant.FieldSpread, floorBoth)
	return resp, nil
}

// semanticPool fetches candidates that carry an embedding. When facets are
// needed the pool ignores filter clauses so each facet can drop its own.
func (s *Service) semanticPool(ctx context.Context, p *plan) ([]plant.Plant, error) {
	pred := p.base
	if p.facets {
		pred = p.base.Guards()
	}
	pred = pred.And(predicate.Exists{Field: plant.FieldEmbedding})

	docs, err := s.catalog.Find(ctx, pred, predicate.FindOptions{IncludeEmbedding: true})
	if err != nil {
		return nil, fmt.Errorf("find semantic candidates: %w", err)
	}
	return docs, nil
}

// score computes cosine similarity for each candidate and keeps those at or
// above the floor. A length mismatch is a data problem: it is logged and
// counted, and the candidate is skipped.
func (s *Service) score(ctx context.Context, pool []plant.Plant, query []float32) []order.Candidate {
	log := logger.FromContext(ctx)
	out := make([]order.Candidate, 0, len(pool))

	for i := range pool {
		doc := &pool[i]
		if len(doc.Embedding) == 0 {
			continue
		}
		sim, err := domain.CosineSimilarity(query, doc.Embedding)
		if err != nil {
			if errors.Is(err, domain.ErrVectorDimMismatch) {
				metrics.SemanticDimMismatchTotal.Inc()
			}
			log.Error("skipping semantic candidate",
				zap.String("plant_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		if sim < domain.MinSemanticScore {
			continue
		}
		out = append(out, order.Candidate{Plant: doc, Score: sim})
	}
	return out
}

func window[T any](items []T, offset, size int) []T {
	if offset < 0 || size <= 0 || offset >= len(items) {
		return nil
	}
	end := offset + min(size, len(items)-offset)
	return items[offset:end]
}
