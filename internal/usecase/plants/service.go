package plants

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/facet"
	"github.com/kailas-cloud/plantdex/internal/domain/search/keyword"
	"github.com/kailas-cloud/plantdex/internal/domain/search/mode"
	"github.com/kailas-cloud/plantdex/internal/domain/search/order"
	"github.com/kailas-cloud/plantdex/internal/domain/search/predicate"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
	"github.com/kailas-cloud/plantdex/internal/logger"
	"github.com/kailas-cloud/plantdex/internal/metrics"
)

// Engine defaults.
const (
	DefaultPageSize         = request.PageSize
	DefaultFacetConcurrency = 4
)

// Config tunes the listing engine.
type Config struct {
	PageSize         int
	FacetConcurrency int
}

// Service resolves listing requests against the catalog.
type Service struct {
	catalog Catalog
	embed   Embedder
	parser  *keyword.Parser
	cfg     Config
}

// New creates a listing service. embed may be nil, in which case free text
// always falls back to name matching.
func New(catalog Catalog, embed Embedder, cfg Config) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.FacetConcurrency <= 0 {
		cfg.FacetConcurrency = DefaultFacetConcurrency
	}
	return &Service{catalog: catalog, embed: embed, parser: keyword.Default, cfg: cfg}
}

// Get returns one plant without its embedding.
func (s *Service) Get(ctx context.Context, id string) (plant.Plant, error) {
	p, err := s.catalog.Get(ctx, id)
	if err != nil {
		return plant.Plant{}, fmt.Errorf("get plant: %w", err)
	}
	return p.WithoutEmbedding(), nil
}

// plan is the per-request state shared by both retrieval paths.
type plan struct {
	req     request.Request
	filters []facet.Filter
	base    predicate.Predicate
	sort    order.Sort
	mode    mode.Mode
	vector  []float32
	facets  bool
}

// List resolves a listing request: keywords become filters, leftover text
// drives semantic scoring, and facets are counted under the same filters.
func (s *Service) List(ctx context.Context, req *request.Request) (result.Response, error) {
	p, err := s.plan(ctx, req)
	if err != nil {
		return result.Response{}, err
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(p.mode)).Inc()

	var resp result.Response
	if p.mode == mode.Semantic {
		resp, err = s.listSemantic(ctx, p)
	} else {
		resp, err = s.listStructured(ctx, p)
	}
	if err != nil {
		return result.Response{}, err
	}

	if err = s.fillChoices(ctx, p, &resp); err != nil {
		return result.Response{}, err
	}
	return resp, nil
}

func (s *Service) plan(ctx context.Context, req *request.Request) (*plan, error) {
	log := logger.FromContext(ctx)

	parsed := s.parser.Parse(req.Query())
	eff := req.WithExtracted(parsed.Filters, parsed.Remaining)

	bounds, err := s.catalogBounds(ctx)
	if err != nil {
		return nil, err
	}

	p := &plan{
		req:     eff,
		filters: facet.Table(bounds),
		mode:    mode.Select(parsed.Remaining),
		facets:  len(eff.Favorites()) == 0,
	}

	if p.mode == mode.Semantic {
		p.vector, err = s.embedQuery(ctx, parsed.Remaining)
		if err != nil {
			log.Warn("semantic search unavailable, falling back to name match",
				zap.String("query", parsed.Remaining),
				zap.Error(err),
			)
			domain.UsageFromContext(ctx).MarkFallback()
			metrics.SearchFallbackTotal.Inc()
			p.mode = mode.Fallback
		}
	}

	p.sort, err = order.Resolve(req.Sort(), p.mode.Scored())
	if err != nil {
		return nil, fmt.Errorf("resolve sort: %w", err)
	}

	p.base = BuildPredicate(p.filters, &p.req)
	if p.mode == mode.Fallback {
		p.base = p.base.And(predicate.NameMatch{Text: parsed.Remaining})
	}
	if favs := eff.Favorites(); len(favs) > 0 {
		p.base = p.base.And(predicate.IDIn{IDs: favs})
	}

	log.Debug("listing planned",
		zap.String("mode", string(p.mode)),
		zap.Any("extracted", parsed.Filters),
		zap.String("residual", parsed.Remaining),
		zap.String("sort", p.sort.Label),
		zap.Int("clauses", len(p.base.Clauses())),
	)
	return p, nil
}

func (s *Service) embedQuery(ctx context.Context, text string) ([]float32, error) {
	if s.embed == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(res.Embedding) == 0 {
		return nil, fmt.Errorf("embed query: %w: empty vector", domain.ErrEmbeddingProviderError)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	return res.Embedding, nil
}

// catalogBounds sizes the height and spread domains from the whole catalog.
func (s *Service) catalogBounds(ctx context.Context) (facet.Bounds, error) {
	var b facet.Bounds
	var all predicate.Predicate

	_, hi, ok, err := s.catalog.Bounds(ctx, all, plant.FieldHeight)
	if err != nil {
		return b, fmt.Errorf("height bounds: %w", err)
	}
	if ok {
		b.MaxHeight = hi
	}
	_, hi, ok, err = s.catalog.Bounds(ctx, all, plant.FieldSpread)
	if err != nil {
		return b, fmt.Errorf("spread bounds: %w", err)
	}
	if ok {
		b.MaxSpread = hi
	}
	return b, nil
}

func (s *Service) listStructured(ctx context.Context, p *plan) (result.Response, error) {
	pred := p.base.And(sortGuards(p.sort.Keys)...)
	resp := result.Response{Results: []result.Hit{}}

	if p.req.FetchTotal() {
		n, err := s.catalog.Count(ctx, pred)
		if err != nil {
			return result.Response{}, fmt.Errorf("count plants: %w", err)
		}
		resp.Total = &n
	}

	if p.req.FetchResults() {
		opts := predicate.FindOptions{Sort: p.sort.Keys}
		if p.facets {
			opts.Skip = p.req.Offset(s.cfg.PageSize)
			opts.Limit = s.cfg.PageSize
		}
		docs, err := s.catalog.Find(ctx, pred, opts)
		if err != nil {
			return result.Response{}, fmt.Errorf("find plants: %w", err)
		}
		for i := range docs {
			resp.Results = append(resp.Results, result.Hit{Plant: docs[i].WithoutEmbedding()})
		}
	}

	if !p.facets {
		return resp, nil
	}

	counts, err := s.storeFacets(ctx, p.filters, pred)
	if err != nil {
		return result.Response{}, err
	}
	resp.Counts = counts

	if resp.HeightRange, err = s.storeRange(ctx, pred, plant.FieldHeight, outward); err != nil {
		return result.Response{}, err
	}
	if resp.SpreadRange, err = s.storeRange(ctx, pred, plant.FieldSpread, floorBoth); err != nil {
		return result.Response{}, err
	}
	return resp, nil
}

func (s *Service) storeRange(
	ctx context.Context, pred predicate.Predicate, field string, round rounding,
) (result.NumberRange, error) {
	lo, hi, ok, err := s.catalog.Bounds(ctx, pred.Without(field), field)
	if err != nil {
		return result.NumberRange{}, fmt.Errorf("range %s: %w", field, err)
	}
	if !ok {
		return result.NumberRange{}, nil
	}
	return round(lo, hi), nil
}

type rounding func(lo, hi float64) result.NumberRange

// outward widens to whole feet: floor min, ceil max.
func outward(lo, hi float64) result.NumberRange {
	return result.NumberRange{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

func floorBoth(lo, hi float64) result.NumberRange {
	return result.NumberRange{Min: math.Floor(lo), Max: math.Floor(hi)}
}
