package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/domain"
	"github.com/kailas-cloud/plantdex/internal/domain/plant"
	"github.com/kailas-cloud/plantdex/internal/domain/search/request"
	"github.com/kailas-cloud/plantdex/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/plantdex/internal/usecase/health"
)

type fakePlants struct {
	resp     result.Response
	err      error
	plants   map[string]plant.Plant
	lastReq  *request.Request
	tokens   int
	fellBack bool
	panicOn  string
}

func (f *fakePlants) List(ctx context.Context, req *request.Request) (result.Response, error) {
	f.lastReq = req
	if req.Query() == f.panicOn && f.panicOn != "" {
		panic("boom")
	}
	if f.tokens > 0 {
		domain.UsageFromContext(ctx).AddTokens(f.tokens)
	}
	if f.fellBack {
		domain.UsageFromContext(ctx).MarkFallback()
	}
	return f.resp, f.err
}

func (f *fakePlants) Get(_ context.Context, id string) (plant.Plant, error) {
	if f.err != nil {
		return plant.Plant{}, f.err
	}
	p, ok := f.plants[id]
	if !ok {
		return plant.Plant{}, domain.ErrNotFound
	}
	return p, nil
}

type fakeHealth struct {
	report healthuc.Report
}

func (f *fakeHealth) Check(context.Context) healthuc.Report { return f.report }

func newTestRouter(plants *fakePlants, health *fakeHealth, sopts ServerOptions, ropts RouterOptions) http.Handler {
	if health == nil {
		health = &fakeHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}}
	}
	srv := NewServer(plants, health, zap.NewNop(), sopts)
	if ropts.MetricsHandler == nil {
		ropts.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics\n"))
		})
	}
	return NewRouter(srv, zap.NewNop(), ropts)
}

func get(h http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	if params != nil {
		path += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
