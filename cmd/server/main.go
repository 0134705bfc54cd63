package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/batchcost/internal/config"
	"github.com/Simplici0/batchcost/internal/db"
	"github.com/Simplici0/batchcost/internal/display"
	"github.com/Simplici0/batchcost/internal/logger"
	"github.com/Simplici0/batchcost/internal/migrations"
	"github.com/Simplici0/batchcost/internal/preset"
	"github.com/Simplici0/batchcost/internal/pricing"
	"github.com/Simplici0/batchcost/internal/seed"
)

type server struct {
	presets *preset.Store
	risk    pricing.RiskConfig
	log     *slog.Logger
}

type calculationView struct {
	Result     display.Result     `json:"result"`
	Assessment pricing.Assessment `json:"assessment"`
}

type strategyView struct {
	Kind    pricing.StrategyKind `json:"kind"`
	Percent float64              `json:"percent"`
}

type summaryView struct {
	TotalCost      string `json:"totalCost"`
	SuggestedPrice string `json:"suggestedPrice"`
	ProfitMargin   string `json:"profitMargin"`
}

type presetView struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Revision  int                `json:"revision"`
	Strategy  strategyView       `json:"strategy"`
	Inputs    pricing.CostInputs `json:"inputs"`
	Summary   summaryView        `json:"summary"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type errorView struct {
	Error string `json:"error"`
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	risk, err := config.LoadRiskConfig(cfg.RiskConfigPath)
	if err != nil {
		log.Error("failed to load risk config", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
			log.Error("failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}

	presets := preset.NewStore(database)
	stats, err := seed.Run(context.Background(), presets)
	if err != nil {
		log.Error("failed to seed database", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "inserts", stats.Inserts)

	srv := &server{presets: presets, risk: risk, log: log}

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/overhead", s.handleOverhead)
		r.Post("/labor", s.handleLabor)
		r.Post("/compare", s.handleCompare)
		r.Get("/presets", s.handlePresetsList)
		r.Post("/presets", s.handlePresetsCreate)
		r.Get("/presets/{id}", s.handlePresetsGet)
		r.Put("/presets/{id}", s.handlePresetsUpdate)
		r.Get("/presets/{id}/history", s.handlePresetsHistory)
		r.Get("/presets/{id}/compare", s.handlePresetsCompare)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	inputs, err := parseCostInputsForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	strategy, err := parseStrategyForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := pricing.Calculate(inputs, strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, calculationView{
		Result:     display.FromResult(result),
		Assessment: s.risk.Assess(result),
	})
}

func (s *server) handleOverhead(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	inputs, err := parseOverheadForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, display.FromOverhead(pricing.AllocateOverhead(inputs)))
}

func (s *server) handleLabor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	hours, err := parseNonNegativeFloat(r.FormValue("hours"), "hours")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rate, err := parseNonNegativeFloat(r.FormValue("hourly_rate"), "hourly_rate")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"laborCost": display.Money(pricing.LaborCost(hours, rate))})
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	current, err := parseSummaryForm(r, "current_")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	previous, err := parseSummaryForm(r, "previous_")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, display.FromDeltas(pricing.CompareTotals(current, previous)))
}

func (s *server) handlePresetsList(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPresetViews(presets))
}

func (s *server) handlePresetsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	inputs, strategy, err := parsePresetForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.presets.Create(r.Context(), r.FormValue("name"), inputs, strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("preset created", "id", p.ID, "name", p.Name)
	s.writeJSON(w, http.StatusCreated, toPresetView(p))
}

func (s *server) handlePresetsGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.presets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPresetView(p))
}

func (s *server) handlePresetsUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, errInvalidForm)
		return
	}

	inputs, strategy, err := parsePresetForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.presets.Update(r.Context(), chi.URLParam(r, "id"), inputs, strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info("preset revised", "id", p.ID, "revision", p.Revision)
	s.writeJSON(w, http.StatusOK, toPresetView(p))
}

func (s *server) handlePresetsHistory(w http.ResponseWriter, r *http.Request) {
	revs, err := s.presets.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toPresetViews(revs))
}

func (s *server) handlePresetsCompare(w http.ResponseWriter, r *http.Request) {
	d, err := s.presets.CompareLatest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, display.FromDeltas(d))
}

func parsePresetForm(r *http.Request) (pricing.CostInputs, pricing.Strategy, error) {
	inputs, err := parseCostInputsForm(r)
	if err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, err
	}
	strategy, err := parseStrategyForm(r)
	if err != nil {
		return pricing.CostInputs{}, pricing.Strategy{}, err
	}
	return inputs, strategy, nil
}

func toPresetView(p preset.Preset) presetView {
	return presetView{
		ID:       p.ID,
		Name:     p.Name,
		Revision: p.Revision,
		Strategy: strategyView{Kind: p.Strategy.Kind(), Percent: p.Strategy.Percent()},
		Inputs:   p.Inputs,
		Summary: summaryView{
			TotalCost:      display.Money(p.Summary.TotalCost).String(),
			SuggestedPrice: display.Money(p.Summary.SuggestedPrice).String(),
			ProfitMargin:   display.Percent(p.Summary.ProfitMargin).String(),
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPresetViews(presets []preset.Preset) []presetView {
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		views = append(views, toPresetView(p))
	}
	return views
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidForm),
		errors.Is(err, pricing.ErrInvalidMarginPercent),
		errors.Is(err, pricing.ErrInvalidMarkupPercent),
		errors.Is(err, pricing.ErrDegenerateYieldOrBatch),
		errors.Is(err, pricing.ErrNegativeInput),
		errors.Is(err, pricing.ErrUnknownStrategy),
		errors.Is(err, preset.ErrNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, preset.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, preset.ErrNameTaken), errors.Is(err, preset.ErrNoHistory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	} else {
		s.log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, errorView{Error: msg})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", "error", err)
	}
}
