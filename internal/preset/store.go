// Package preset keeps named batch configurations and every revision saved for them, so a
// producer can see how an edit moved cost, price and margin.
package preset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/batchcost/internal/pricing"
)

var (
	// ErrNotFound is returned when no preset has the requested id.
	ErrNotFound = errors.New("preset not found")
	// ErrNoHistory is returned by CompareLatest when a preset has a single revision.
	ErrNoHistory = errors.New("preset has no previous revision")
	// ErrNameRequired is returned when a preset is created without a name.
	ErrNameRequired = errors.New("preset name is required")
	// ErrNameTaken is returned when another preset already uses the name.
	ErrNameTaken = errors.New("preset name already in use")
)

// Preset is a named batch configuration at one revision, with the result summary computed when it was saved.
type Preset struct {
	ID        string
	Name      string
	Revision  int
	Inputs    pricing.CostInputs
	Strategy  pricing.Strategy
	Summary   pricing.Summary
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists presets and their revisions in SQLite.
type Store struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store backed by db, which must already carry the presets schema.
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:    db,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new preset at revision 1.
func (s *Store) Create(ctx context.Context, name string, inputs pricing.CostInputs, strategy pricing.Strategy) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, ErrNameRequired
	}

	summary, err := summarize(inputs, strategy)
	if err != nil {
		return Preset{}, err
	}

	now := s.now().UTC()
	p := Preset{
		ID:        s.newID(),
		Name:      name,
		Revision:  1,
		Inputs:    inputs,
		Strategy:  strategy,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Preset{}, fmt.Errorf("begin create preset transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO presets (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.Name, now, now); err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Preset{}, fmt.Errorf("%q: %w", p.Name, ErrNameTaken)
		}
		return Preset{}, fmt.Errorf("insert preset: %w", err)
	}
	if err := insertRevision(ctx, tx, p); err != nil {
		_ = tx.Rollback()
		return Preset{}, err
	}

	if err := tx.Commit(); err != nil {
		return Preset{}, fmt.Errorf("commit create preset transaction: %w", err)
	}
	return p, nil
}

// Update saves a new revision of an existing preset.
func (s *Store) Update(ctx context.Context, id string, inputs pricing.CostInputs, strategy pricing.Strategy) (Preset, error) {
	summary, err := summarize(inputs, strategy)
	if err != nil {
		return Preset{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Preset{}, fmt.Errorf("begin update preset transaction: %w", err)
	}

	var p Preset
	err = tx.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.created_at, MAX(r.revision)
		FROM presets p
		JOIN preset_revisions r ON r.preset_id = p.id
		WHERE p.id = ?
		GROUP BY p.id
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.Revision)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return Preset{}, ErrNotFound
		}
		return Preset{}, fmt.Errorf("query preset %s: %w", id, err)
	}

	now := s.now().UTC()
	p.Revision++
	p.Inputs = inputs
	p.Strategy = strategy
	p.Summary = summary
	p.UpdatedAt = now

	if err := insertRevision(ctx, tx, p); err != nil {
		_ = tx.Rollback()
		return Preset{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE presets SET updated_at = ? WHERE id = ?`, now, p.ID); err != nil {
		_ = tx.Rollback()
		return Preset{}, fmt.Errorf("touch preset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Preset{}, fmt.Errorf("commit update preset transaction: %w", err)
	}
	return p, nil
}

// Get returns the latest revision of a preset.
func (s *Store) Get(ctx context.Context, id string) (Preset, error) {
	revs, err := s.revisions(ctx, id, 1)
	if err != nil {
		return Preset{}, err
	}
	if len(revs) == 0 {
		return Preset{}, ErrNotFound
	}
	return revs[0], nil
}

// FindByName returns the latest revision of the preset with the given name.
func (s *Store) FindByName(ctx context.Context, name string) (Preset, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM presets WHERE name = ?`, strings.TrimSpace(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("query preset by name: %w", err)
	}
	return s.Get(ctx, id)
}

// List returns the latest revision of every preset, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.created_at, p.updated_at,
			r.revision, r.strategy_kind, r.strategy_percent, r.inputs_json,
			r.total_cost, r.suggested_price, r.profit_margin
		FROM presets p
		JOIN preset_revisions r ON r.preset_id = p.id
		WHERE r.revision = (SELECT MAX(revision) FROM preset_revisions WHERE preset_id = p.id)
		ORDER BY p.updated_at DESC, p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}
	return presets, nil
}

// History returns every revision of a preset, newest first.
func (s *Store) History(ctx context.Context, id string) ([]Preset, error) {
	revs, err := s.revisions(ctx, id, -1)
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, ErrNotFound
	}
	return revs, nil
}

// CompareLatest returns the deltas of the newest revision against the one before it.
func (s *Store) CompareLatest(ctx context.Context, id string) (pricing.Deltas, error) {
	revs, err := s.revisions(ctx, id, 2)
	if err != nil {
		return pricing.Deltas{}, err
	}
	switch len(revs) {
	case 0:
		return pricing.Deltas{}, ErrNotFound
	case 1:
		return pricing.Deltas{}, ErrNoHistory
	}
	return pricing.CompareTotals(revs[0].Summary, revs[1].Summary), nil
}

func (s *Store) revisions(ctx context.Context, id string, limit int) ([]Preset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.created_at, r.created_at,
			r.revision, r.strategy_kind, r.strategy_percent, r.inputs_json,
			r.total_cost, r.suggested_price, r.profit_margin
		FROM presets p
		JOIN preset_revisions r ON r.preset_id = p.id
		WHERE p.id = ?
		ORDER BY r.revision DESC
		LIMIT ?
	`, id, limit)
	if err != nil {
		return nil, fmt.Errorf("query preset revisions: %w", err)
	}
	defer rows.Close()

	revs := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preset revisions: %w", err)
	}
	return revs, nil
}

func scanPreset(rows *sql.Rows) (Preset, error) {
	var (
		p          Preset
		kind       string
		percent    float64
		inputsJSON string
	)
	if err := rows.Scan(
		&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt,
		&p.Revision, &kind, &percent, &inputsJSON,
		&p.Summary.TotalCost, &p.Summary.SuggestedPrice, &p.Summary.ProfitMargin,
	); err != nil {
		return Preset{}, fmt.Errorf("scan preset: %w", err)
	}

	if err := json.Unmarshal([]byte(inputsJSON), &p.Inputs); err != nil {
		return Preset{}, fmt.Errorf("decode preset %s inputs: %w", p.ID, err)
	}
	strategy, err := pricing.ParseStrategy(kind, percent)
	if err != nil {
		return Preset{}, fmt.Errorf("decode preset %s strategy: %w", p.ID, err)
	}
	p.Strategy = strategy

	return p, nil
}

func insertRevision(ctx context.Context, tx *sql.Tx, p Preset) error {
	inputsJSON, err := json.Marshal(p.Inputs)
	if err != nil {
		return fmt.Errorf("encode preset inputs: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO preset_revisions (
			preset_id,
			revision,
			created_at,
			strategy_kind,
			strategy_percent,
			inputs_json,
			total_cost,
			suggested_price,
			profit_margin
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Revision,
		p.UpdatedAt,
		string(p.Strategy.Kind()),
		p.Strategy.Percent(),
		string(inputsJSON),
		p.Summary.TotalCost,
		p.Summary.SuggestedPrice,
		p.Summary.ProfitMargin,
	); err != nil {
		return fmt.Errorf("insert preset revision: %w", err)
	}
	return nil
}

func summarize(inputs pricing.CostInputs, strategy pricing.Strategy) (pricing.Summary, error) {
	if err := inputs.Validate(); err != nil {
		return pricing.Summary{}, fmt.Errorf("validate preset inputs: %w", err)
	}
	result, err := pricing.Calculate(inputs, strategy)
	if err != nil {
		return pricing.Summary{}, fmt.Errorf("calculate preset: %w", err)
	}
	return pricing.SummaryOf(result), nil
}
