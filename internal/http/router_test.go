package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vwconsorcio/consorcio-backend/internal/data/store"
	httpH "github.com/vwconsorcio/consorcio-backend/internal/http/handlers"
	"github.com/vwconsorcio/consorcio-backend/internal/observability"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/logger"
	"github.com/vwconsorcio/consorcio-backend/internal/seed"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

const testAdminPassword = "s3cret-admin"

type testAPI struct {
	engine *gin.Engine
	store  *store.Store
	seeder *seed.Seeder
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.OpenBolt(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	log := logger.Nop()
	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	leadSvc := services.NewLeadService(st, log)
	carSvc := services.NewCarService(st, log)
	testimonialSvc := services.NewTestimonialService(st, log)
	blogSvc := services.NewBlogService(st, log)
	analyticsSvc := services.NewAnalyticsService(st, log, 0)
	adminSvc := services.NewAdminAuthService(log, string(hash), "test-jwt-secret", time.Hour)

	engine := NewRouter(RouterConfig{
		Log:                log,
		AdminAuth:          adminSvc,
		Metrics:            observability.NewMetrics(),
		LeadHandler:        httpH.NewLeadHandler(leadSvc, analyticsSvc),
		CarHandler:         httpH.NewCarHandler(carSvc),
		TestimonialHandler: httpH.NewTestimonialHandler(testimonialSvc),
		BlogHandler:        httpH.NewBlogHandler(blogSvc),
		AnalyticsHandler:   httpH.NewAnalyticsHandler(analyticsSvc),
		StatusHandler:      httpH.NewStatusHandler(services.NewStatusService(st, log)),
		AdminHandler:       httpH.NewAdminHandler(adminSvc),
		HealthHandler:      httpH.NewHealthHandler(),
	})
	return &testAPI{
		engine: engine,
		store:  st,
		seeder: seed.New(st, carSvc, testimonialSvc, blogSvc, nil, log),
	}
}

func (a *testAPI) do(t *testing.T, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *nethttp.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	rec := a.do(t, nethttp.MethodPost, "/api/admin/login", map[string]string{"password": testAdminPassword})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Fields  []struct {
			Field string `json:"field"`
		} `json:"fields"`
	} `json:"error"`
}

func TestRouter_RootAndHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodGet, "/api/", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var banner map[string]string
	decode(t, rec, &banner)
	require.Equal(t, "Volkswagen Consortium API - Running!", banner["message"])
	require.Equal(t, "1.0.0", banner["version"])

	rec = api.do(t, nethttp.MethodGet, "/healthcheck", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestLeadHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodPost, "/api/leads", map[string]string{
		"name":     "Maria Silva",
		"whatsapp": "(11) 99999-8888",
		"city":     "São Paulo",
		"model":    "T-Cross",
		"source":   "hero-form",
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var lead map[string]any
	decode(t, rec, &lead)
	for _, k := range []string{"id", "name", "whatsapp", "city", "model", "source", "status", "created_at"} {
		require.Contains(t, lead, k)
	}
	require.Equal(t, "new", lead["status"])
	require.Equal(t, "hero-form", lead["source"])
	id := lead["id"].(string)
	require.NotEmpty(t, id)

	rec = api.do(t, nethttp.MethodGet, "/api/leads", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var list []map[string]any
	decode(t, rec, &list)
	require.Len(t, list, 1)
	require.Equal(t, id, list[0]["id"])

	rec = api.do(t, nethttp.MethodPut, "/api/leads/"+id+"?status=contacted", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &lead)
	require.Equal(t, "contacted", lead["status"])
	require.Equal(t, id, lead["id"])

	rec = api.do(t, nethttp.MethodPut, "/api/leads/"+id, map[string]string{"status": "archived"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = api.do(t, nethttp.MethodPut, "/api/leads/missing", map[string]string{"status": "converted"})
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = api.do(t, nethttp.MethodGet, "/api/leads/stats", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var stats struct {
		Total     int64            `json:"total"`
		Contacted int64            `json:"contacted"`
		ByStatus  map[string]int64 `json:"by_status"`
		BySource  map[string]int64 `json:"by_source"`
	}
	decode(t, rec, &stats)
	require.EqualValues(t, 1, stats.Total)
	require.EqualValues(t, 1, stats.Contacted)
	require.Equal(t, map[string]int64{"new": 0, "contacted": 1, "converted": 0}, stats.ByStatus)
	require.Equal(t, map[string]int64{"hero-form": 1}, stats.BySource)
}

func TestLeadHandler_CreateValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodPost, "/api/leads", map[string]string{"name": "", "whatsapp": "abc"})
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	var body errorBody
	decode(t, rec, &body)
	require.Equal(t, "validation_failed", body.Error.Code)
	fields := make([]string, 0, len(body.Error.Fields))
	for _, f := range body.Error.Fields {
		fields = append(fields, f.Field)
	}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "whatsapp")

	rec = api.do(t, nethttp.MethodPost, "/api/leads", nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
	decode(t, rec, &body)
	require.Equal(t, "invalid_request", body.Error.Code)

	n, err := api.store.Leads.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestRouter_SeededCatalog(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.seeder.Run(context.Background())
	require.NoError(t, err)

	rec := api.do(t, nethttp.MethodGet, "/api/cars", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var cars []struct {
		ID         string   `json:"id"`
		Model      string   `json:"model"`
		Highlights []string `json:"highlights"`
	}
	decode(t, rec, &cars)
	models := make([]string, 0, len(cars))
	for _, c := range cars {
		models = append(models, c.Model)
		require.NotEmpty(t, c.Highlights)
	}
	require.Equal(t, []string{"Golf GTI", "Polo Track", "T-Cross", "Nivus"}, models)

	rec = api.do(t, nethttp.MethodGet, "/api/testimonials", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var testimonials []struct {
		Name string `json:"name"`
	}
	decode(t, rec, &testimonials)
	require.Len(t, testimonials, 3)
	require.Equal(t, "Maria Silva", testimonials[0].Name)
	require.Equal(t, "Ana Oliveira", testimonials[2].Name)

	rec = api.do(t, nethttp.MethodGet, "/api/blog/posts", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var posts []struct {
		Slug string `json:"slug"`
	}
	decode(t, rec, &posts)
	require.Len(t, posts, 3)
	require.Equal(t, "consorcio-vs-financiamento", posts[0].Slug)

	rec = api.do(t, nethttp.MethodGet, "/api/blog/posts/contemplacao-rapida-consorcio", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = api.do(t, nethttp.MethodGet, "/api/blog/posts/nao-existe", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestCarHandler_WritesAndAdminListing(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodPost, "/api/cars", map[string]any{
		"name":          "Volkswagen Virtus",
		"model":         "Virtus",
		"year":          2025,
		"monthly_price": "R$ 1.099",
		"total_credit":  "R$ 110.000",
		"installments":  100,
		"highlights":    []string{"Sedan", "TSI"},
	})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var car struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	decode(t, rec, &car)
	require.True(t, car.IsActive)

	rec = api.do(t, nethttp.MethodPut, "/api/cars/"+car.ID, map[string]any{"is_active": false})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/cars", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/cars?include_inactive=true", nil)
	require.Equal(t, nethttp.StatusForbidden, rec.Code)

	rec = api.do(t, nethttp.MethodGet, "/api/cars?include_inactive=true", nil, "Authorization", "Bearer not-a-token")
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	token := api.adminToken(t)
	rec = api.do(t, nethttp.MethodGet, "/api/cars?include_inactive=true", nil, "Authorization", "Bearer "+token)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var all []map[string]any
	decode(t, rec, &all)
	require.Len(t, all, 1)

	rec = api.do(t, nethttp.MethodGet, "/api/cars/"+car.ID, nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	rec = api.do(t, nethttp.MethodGet, "/api/cars/"+car.ID, nil, "Authorization", "Bearer "+token)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	var fetched map[string]any
	decode(t, rec, &fetched)
	require.Equal(t, car.ID, fetched["id"])
	require.Equal(t, false, fetched["is_active"])
	rec = api.do(t, nethttp.MethodGet, "/api/cars/unknown", nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec = api.do(t, nethttp.MethodDelete, "/api/cars/"+car.ID, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Car deleted successfully"}`, rec.Body.String())

	rec = api.do(t, nethttp.MethodDelete, "/api/cars/"+car.ID, nil)
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
	rec = api.do(t, nethttp.MethodPut, "/api/cars/unknown", map[string]any{"name": "x"})
	require.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestAdminAuth_BadTokenOnlyRejectedWhereAdminIsRequested(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.seeder.Run(context.Background())
	require.NoError(t, err)
	bad := []string{"Authorization", "Bearer expired-or-forged"}

	rec := api.do(t, nethttp.MethodPost, "/api/leads", map[string]string{
		"name":     "João Pereira",
		"whatsapp": "(21) 98888-7777",
	}, bad...)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/cars", nil, bad...)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	rec = api.do(t, nethttp.MethodGet, "/api/blog/posts/consorcio-vs-financiamento", nil, bad...)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	rec = api.do(t, nethttp.MethodPost, "/api/analytics/page-view", map[string]string{"page": "/"}, bad...)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/testimonials?include_inactive=true", nil, bad...)
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	rec = api.do(t, nethttp.MethodGet, "/api/testimonials?include_inactive=true", nil)
	require.Equal(t, nethttp.StatusForbidden, rec.Code)
}

func TestAdminHandler_RejectsWrongPassword(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, nethttp.MethodPost, "/api/admin/login", map[string]string{"password": "nope"})
	require.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestBlogHandler_DuplicateSlugConflict(t *testing.T) {
	api := newTestAPI(t)
	post := map[string]any{"title": "Como funciona o consórcio", "content": "..."}

	rec := api.do(t, nethttp.MethodPost, "/api/blog/posts", post)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Slug string `json:"slug"`
	}
	decode(t, rec, &created)
	require.Equal(t, "como-funciona-o-consorcio", created.Slug)

	rec = api.do(t, nethttp.MethodPost, "/api/blog/posts", post)
	require.Equal(t, nethttp.StatusConflict, rec.Code)
	var body errorBody
	decode(t, rec, &body)
	require.Equal(t, "duplicate_slug", body.Error.Code)
}

func TestTestimonialHandler_RatingBounds(t *testing.T) {
	api := newTestAPI(t)
	base := map[string]any{"name": "Ana", "testimonial": "Ótimo atendimento"}
	for rating, want := range map[int]int{0: nethttp.StatusBadRequest, 6: nethttp.StatusBadRequest, 1: nethttp.StatusCreated, 5: nethttp.StatusCreated} {
		base["rating"] = rating
		rec := api.do(t, nethttp.MethodPost, "/api/testimonials", base)
		require.Equal(t, want, rec.Code, "rating %d: %s", rating, rec.Body.String())
	}
}

func TestAnalyticsHandler_Endpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, nethttp.MethodPost, "/api/analytics/page-view?page=/home", nil, "User-Agent", "test-agent")
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"message":"Page view logged"}`, rec.Body.String())

	rec = api.do(t, nethttp.MethodPost, "/api/analytics/page-view", nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec = api.do(t, nethttp.MethodPost, "/api/analytics/form-interaction", map[string]any{
		"form_type": "hero-form",
		"action":    "submit",
		"details":   map[string]any{"model": "Nivus"},
	})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"message":"Form interaction logged"}`, rec.Body.String())

	for _, model := range []string{"Nivus", "Polo Track", "Nivus"} {
		rec = api.do(t, nethttp.MethodPost, "/api/leads", map[string]string{
			"name": "Cliente", "whatsapp": "11999998888", "city": "Campinas", "model": model,
		})
		require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = api.do(t, nethttp.MethodGet, "/api/analytics/dashboard?limit=1", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var dash struct {
		TotalLeads            int64 `json:"total_leads"`
		TotalPageViews        int64 `json:"total_page_views"`
		TotalFormInteractions int64 `json:"total_form_interactions"`
		PopularCars           []struct {
			Model string `json:"model"`
			Count int64  `json:"count"`
		} `json:"popular_cars"`
	}
	decode(t, rec, &dash)
	require.EqualValues(t, 3, dash.TotalLeads)
	require.EqualValues(t, 1, dash.TotalPageViews)
	require.EqualValues(t, 1, dash.TotalFormInteractions)
	require.Len(t, dash.PopularCars, 1)
	require.Equal(t, "Nivus", dash.PopularCars[0].Model)
	require.EqualValues(t, 2, dash.PopularCars[0].Count)

	rec = api.do(t, nethttp.MethodGet, "/api/analytics/dashboard?limit=abc", nil)
	require.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestStatusHandler_LegacyChecks(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, nethttp.MethodPost, "/api/status", map[string]string{"client_name": "landing"})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, nethttp.MethodGet, "/api/status", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var checks []map[string]any
	decode(t, rec, &checks)
	require.Len(t, checks, 1)
	require.Equal(t, "landing", checks[0]["client_name"])
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, nethttp.MethodGet, "/api/", nil)
	rec := api.do(t, nethttp.MethodGet, "/metrics", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="/api/"`)
}
