package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/casasim/internal/catalog"
)

// Simulation kinds.
const (
	KindWalls      = "walls"
	KindComparison = "comparison"
)

// Simulation is a saved engine run. Input and Result hold the JSON snapshot
// taken when it was saved and are never recalculated.
type Simulation struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Region    string          `json:"region"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// Simulations stores saved projects.
type Simulations struct {
	db  *sql.DB
	now func() time.Time
}

func NewSimulations(db *sql.DB) *Simulations {
	return &Simulations{db: db, now: time.Now}
}

// Save assigns an id and creation time to sim and persists it.
func (s *Simulations) Save(ctx context.Context, sim Simulation) (Simulation, error) {
	sim.Name = strings.TrimSpace(sim.Name)
	sim.Region = strings.TrimSpace(sim.Region)
	if sim.Name == "" {
		return Simulation{}, &catalog.InvalidInputError{Field: "name", Reason: "is required"}
	}
	if sim.Kind != KindWalls && sim.Kind != KindComparison {
		return Simulation{}, &catalog.InvalidInputError{Field: "kind", Label: sim.Kind, Reason: "must be walls or comparison"}
	}
	if !json.Valid(sim.Input) || !json.Valid(sim.Result) {
		return Simulation{}, &catalog.InvalidInputError{Field: "input", Reason: "must be valid JSON"}
	}

	sim.ID = uuid.NewString()
	sim.CreatedAt = s.now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO simulations (id, name, region, kind, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sim.ID, sim.Name, sim.Region, sim.Kind, string(sim.Input), string(sim.Result), sim.CreatedAt.Format(time.DateTime))
	if err != nil {
		return Simulation{}, fmt.Errorf("insert simulation: %w", err)
	}

	return sim, nil
}

// List returns saved simulations, newest first, optionally filtered by a
// substring of the name or region.
func (s *Simulations) List(ctx context.Context, query string) ([]Simulation, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, region, kind, input_json, result_json, created_at
		FROM simulations
		WHERE (? = '' OR name LIKE ? OR region LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query simulations: %w", err)
	}
	defer rows.Close()

	sims := make([]Simulation, 0)
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation: %w", err)
		}
		sims = append(sims, sim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate simulations: %w", err)
	}

	return sims, nil
}

// Get returns the simulation with id, or ErrNotFound.
func (s *Simulations) Get(ctx context.Context, id string) (Simulation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, region, kind, input_json, result_json, created_at
		FROM simulations
		WHERE id = ?
	`, id)
	sim, err := scanSimulation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Simulation{}, fmt.Errorf("simulation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Simulation{}, fmt.Errorf("query simulation %s: %w", id, err)
	}
	return sim, nil
}

// Delete removes the simulation with id, or returns ErrNotFound.
func (s *Simulations) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete simulation %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete simulation %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("simulation %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSimulation(row scanner) (Simulation, error) {
	var sim Simulation
	var input, result, stamp string
	if err := row.Scan(&sim.ID, &sim.Name, &sim.Region, &sim.Kind, &input, &result, &stamp); err != nil {
		return Simulation{}, err
	}
	sim.Input = json.RawMessage(input)
	sim.Result = json.RawMessage(result)
	sim.CreatedAt = parseTimestamp(stamp)
	return sim, nil
}

// parseTimestamp accepts the formats SQLite hands back for DATETIME columns.
func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
