package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Simplici0/batchcost/internal/db"
	"github.com/Simplici0/batchcost/internal/logger"
	"github.com/Simplici0/batchcost/internal/migrations"
	"github.com/Simplici0/batchcost/internal/preset"
	"github.com/Simplici0/batchcost/internal/pricing"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &server{
		presets: preset.NewStore(database),
		risk:    pricing.DefaultRiskConfig(),
		log:     logger.Discard(),
	}
}

func do(t *testing.T, srv *server, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func batchForm(ingredientCost, strategy, percent string) url.Values {
	form := url.Values{}
	form.Add("ingredient_name", "flour")
	form.Add("ingredient_cost", ingredientCost)
	form.Set("batch_size", "1")
	form.Set("yield_percentage", "100")
	form.Set("strategy", strategy)
	form.Set("strategy_percent", percent)
	return form
}

func TestHandleCalculate_MarginStrategy(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/calculate", batchForm("100", "margin", "50"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got struct {
		Result struct {
			RecommendedPrice    string `json:"recommendedPrice"`
			ProfitPerUnit       string `json:"profitPerUnit"`
			ProfitMarginPercent string `json:"profitMarginPercent"`
		} `json:"result"`
		Assessment struct {
			RiskLevel       string   `json:"riskLevel"`
			Recommendations []string `json:"recommendations"`
		} `json:"assessment"`
	}
	decode(t, rr, &got)

	if got.Result.RecommendedPrice != "200" || got.Result.ProfitPerUnit != "100" {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if got.Assessment.RiskLevel != "low" || len(got.Assessment.Recommendations) != 3 {
		t.Fatalf("unexpected assessment: %+v", got.Assessment)
	}
	if !strings.Contains(got.Assessment.Recommendations[0], "50.0%") {
		t.Fatalf("recommendation lacks margin: %q", got.Assessment.Recommendations[0])
	}
}

func TestHandleCalculate_RejectsInvalidMargin(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/calculate", batchForm("100", "margin", "100"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var got errorView
	decode(t, rr, &got)
	if !strings.Contains(got.Error, "margin") {
		t.Fatalf("unexpected error body: %+v", got)
	}
}

func TestHandleOverhead(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("rent", "10000")
	form.Set("utilities", "2000")
	form.Set("batches_per_month", "20")
	form.Set("packaging_per_unit", "5")
	form.Set("batch_size", "50")

	rr := do(t, srv, http.MethodPost, "/api/overhead", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var got map[string]string
	decode(t, rr, &got)
	if got["fixedPerBatch"] != "600" || got["packagingTotal"] != "250" || got["total"] != "850" {
		t.Fatalf("unexpected overhead: %v", got)
	}
}

func TestHandleLabor(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("hours", "5")
	form.Set("hourly_rate", "60")

	rr := do(t, srv, http.MethodPost, "/api/labor", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"laborCost":"300"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestHandleCompare(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("current_total_cost", "120")
	form.Set("current_suggested_price", "180")
	form.Set("current_profit_margin", "35.0")
	form.Set("previous_total_cost", "100")
	form.Set("previous_suggested_price", "150")
	form.Set("previous_profit_margin", "33.33")

	rr := do(t, srv, http.MethodPost, "/api/compare", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got map[string]string
	decode(t, rr, &got)
	if got["totalCost"] != "20" || got["suggestedPrice"] != "30" || got["profitMargin"] != "1.67" {
		t.Fatalf("unexpected deltas: %v", got)
	}
}

func TestPresetLifecycle(t *testing.T) {
	srv := newTestServer(t)

	form := batchForm("100", "markup", "50")
	form.Set("name", "Sourdough")
	rr := do(t, srv, http.MethodPost, "/api/presets", form)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created presetView
	decode(t, rr, &created)
	if created.ID == "" || created.Revision != 1 || created.Summary.SuggestedPrice != "150" {
		t.Fatalf("unexpected preset: %+v", created)
	}

	rr = do(t, srv, http.MethodPost, "/api/presets", form)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate name: expected status 409, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodGet, "/api/presets/"+created.ID+"/compare", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("compare single revision: expected status 409, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPut, "/api/presets/"+created.ID, batchForm("120", "markup", "50"))
	if rr.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, srv, http.MethodGet, "/api/presets/"+created.ID+"/compare", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("compare: expected status 200, got %d", rr.Code)
	}
	var deltas map[string]string
	decode(t, rr, &deltas)
	if deltas["totalCost"] != "20" || deltas["suggestedPrice"] != "30" || deltas["profitMargin"] != "0" {
		t.Fatalf("unexpected deltas: %v", deltas)
	}

	rr = do(t, srv, http.MethodGet, "/api/presets/"+created.ID+"/history", nil)
	var history []presetView
	decode(t, rr, &history)
	if len(history) != 2 || history[0].Revision != 2 {
		t.Fatalf("unexpected history: %+v", history)
	}

	rr = do(t, srv, http.MethodGet, "/api/presets", nil)
	var list []presetView
	decode(t, rr, &list)
	if len(list) != 1 || list[0].Summary.TotalCost != "120" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestPresetNotFound(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/presets/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}
