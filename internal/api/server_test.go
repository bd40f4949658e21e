package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(calculation.NewCalculationEngine(), logger)
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck_ReturnsOK(t *testing.T) {
	s := newTestServer()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestHandleTax(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/tax", `{"income": 137500}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TaxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Federal.Equal(decimal.RequireFromString("18744.6645")), resp.Federal.String())
	assert.True(t, resp.Provincial.Equal(decimal.RequireFromString("21109.83")), resp.Provincial.String())
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("39854.4945")), resp.Total.String())
	assert.True(t, resp.MarginalRate.Equal(decimal.RequireFromString("0.4571")), resp.MarginalRate.String())
}

func TestHandleTax_BadRequests(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"income": }`, "invalid request body"},
		{"not a number", `{"income": "lots"}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, s, "/v1/tax", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], tt.want)
		})
	}
}

func TestHandleTax_NegativeIncomeOwesNothing(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/tax", `{"income": -5000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp TaxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Total.IsZero(), resp.Total.String())
	assert.True(t, resp.MarginalRate.IsZero(), resp.MarginalRate.String())
}

func TestHandleBrackets(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/brackets", `{"income": "137500", "deduction": "25000"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Brackets []domain.CombinedBracket `json:"brackets"`
		TaxSaved decimal.Decimal          `json:"tax_saved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Brackets, 6)
	assert.True(t, resp.TaxSaved.Equal(decimal.RequireFromString("10330.0723")), resp.TaxSaved.String())
}

func TestHandleProjection(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/projection", `{"rrsp": 1000, "tfsa": 500, "years": 2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Projection []domain.ProjectionYear `json:"projection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Projection, 3)
	assert.True(t, resp.Projection[2].RRSP.Equal(decimal.RequireFromString("2214.9")))

	w = post(t, s, "/v1/projection", `{"rrsp": 1000, "tfsa": 500, "years": 61}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSplit(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/split", `{"income": 137500, "budget": 32000, "rrsp_room": 30000, "tfsa_room": 20000}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp domain.OptimalSplit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.RecommendedRRSP.Equal(decimal.NewFromInt(11500)), resp.RecommendedRRSP.String())
	assert.True(t, resp.RecommendedTFSA.Equal(decimal.NewFromInt(20000)), resp.RecommendedTFSA.String())
}

func TestHandleSpread(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/spread", `{"income": 137500, "contribution": 25000, "room": 30000, "years": 2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp domain.SpreadComparison
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Years, 2)
}

func TestHandleBenefitsAndCredits(t *testing.T) {
	s := newTestServer()

	w := post(t, s, "/v1/benefits", `{"family_income": 80000, "deduction": 10000, "children_under_6": 1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fa domain.FamilyAllowanceImpact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fa))
	assert.False(t, fa.TotalGain.IsNegative())

	w = post(t, s, "/v1/credits", `{"family_income": 40000, "work_income": 40000, "deduction": 5000, "renter": true}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var credits domain.CreditsImpact
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &credits))
	assert.NotEmpty(t, credits.Credits)
}

func TestHandleScenarios(t *testing.T) {
	s := newTestServer()

	body := `{
		"household": {"salary": 130000, "rental_income": 7500, "rrsp_room": 30000, "tfsa_room": 20000},
		"scenarios": [
			{"name": "lump sum", "rrsp_contribution": 25000, "tfsa_contribution": 7000},
			{"name": "nothing"}
		]
	}`
	w := post(t, s, "/v1/scenarios", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp domain.ScenarioResults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 2)
	assert.Equal(t, 2024, resp.TaxYear)
	assert.True(t, resp.Scenarios[0].TaxSaved.Equal(decimal.RequireFromString("10330.0723")))

	w = post(t, s, "/v1/scenarios", `{"household": {"salary": 50000}, "scenarios": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no scenarios provided")
}

func TestHandleScenarios_PartialRules(t *testing.T) {
	s := newTestServer()

	body := `{
		"household": {"salary": 137500, "rrsp_room": 30000, "tfsa_room": 20000},
		"scenarios": [{"name": "lump sum", "rrsp_contribution": 25000}],
		"rules": {"metadata": {"tax_year": 2025}}
	}`
	w := post(t, s, "/v1/scenarios", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp domain.ScenarioResults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.TaxYear)
	require.Len(t, resp.Scenarios, 1)
	assert.True(t, resp.Scenarios[0].TaxSaved.Equal(decimal.RequireFromString("10330.0723")),
		resp.Scenarios[0].TaxSaved.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	post(t, s, "/v1/tax", `{"income": 50000}`)
	post(t, s, "/v1/tax", `{"income": "lots"}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `rrspgo_http_requests_total{route="/v1/tax",status="200"} 1`)
	assert.Contains(t, body, `rrspgo_http_requests_total{route="/v1/tax",status="400"} 1`)
	assert.Contains(t, body, `rrspgo_engine_calculations_total{kind="tax"} 1`)
	assert.Contains(t, body, `rrspgo_http_validation_errors_total{route="/v1/tax"} 1`)
	assert.True(t, strings.Contains(body, "rrspgo_http_request_duration_seconds_bucket"))
}

func TestNewServer_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestServer()
		newTestServer()
	})
}
