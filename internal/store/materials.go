package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Simplici0/casasim/internal/catalog"
)

var ErrNotFound = errors.New("not found")

// CategoryOptimized is stored when a material is created without a category.
const CategoryOptimized = "optimized"

// Materials reads and writes the priced wall materials table.
type Materials struct {
	db *sql.DB
}

func NewMaterials(db *sql.DB) *Materials {
	return &Materials{db: db}
}

const materialColumns = `
	id, name, category, cost_per_m2, co2_impact, energy_savings_pct,
	labor_reduction_pct, description, region_availability, is_base`

// List returns active materials ordered by name.
func (s *Materials) List(ctx context.Context) ([]catalog.Material, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+materialColumns+`
		FROM materials
		WHERE active = TRUE
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]catalog.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}

// Get returns the material with id, or ErrNotFound.
func (s *Materials) Get(ctx context.Context, id int64) (catalog.Material, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+materialColumns+` FROM materials WHERE id = ?`, id)
	m, err := scanMaterial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Material{}, fmt.Errorf("material %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return catalog.Material{}, fmt.Errorf("query material %d: %w", id, err)
	}
	return m, nil
}

// Base returns the material flagged as the traditional baseline, or ErrNotFound.
func (s *Materials) Base(ctx context.Context) (catalog.Material, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+materialColumns+` FROM materials WHERE is_base = TRUE LIMIT 1`)
	m, err := scanMaterial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Material{}, fmt.Errorf("base material: %w", ErrNotFound)
	}
	if err != nil {
		return catalog.Material{}, fmt.Errorf("query base material: %w", err)
	}
	return m, nil
}

// Create inserts m and returns it with its new id.
func (s *Materials) Create(ctx context.Context, m catalog.Material) (catalog.Material, error) {
	if err := validateMaterial(m); err != nil {
		return catalog.Material{}, err
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	if m.Category == "" {
		m.Category = CategoryOptimized
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (
			name, category, cost_per_m2, co2_impact, energy_savings_pct,
			labor_reduction_pct, description, region_availability, is_base, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE)
	`, m.Name, m.Category, m.CostPerM2, m.CO2Impact, m.EnergySavingsPct,
		m.LaborReductionPct, m.Description, m.RegionAvailability, m.IsBase)
	if err != nil {
		if invalid := uniqueViolation(err); invalid != nil {
			return catalog.Material{}, invalid
		}
		return catalog.Material{}, fmt.Errorf("insert material: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return catalog.Material{}, fmt.Errorf("read material id: %w", err)
	}
	m.ID = id
	return m, nil
}

// Update overwrites the material with m.ID. The base flag is not changed here.
func (s *Materials) Update(ctx context.Context, m catalog.Material) error {
	if err := validateMaterial(m); err != nil {
		return err
	}
	m.Category = strings.TrimSpace(m.Category)
	if m.Category == "" {
		m.Category = CategoryOptimized
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE materials
		SET
			name = ?,
			category = ?,
			cost_per_m2 = ?,
			co2_impact = ?,
			energy_savings_pct = ?,
			labor_reduction_pct = ?,
			description = ?,
			region_availability = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, strings.TrimSpace(m.Name), m.Category, m.CostPerM2, m.CO2Impact, m.EnergySavingsPct,
		m.LaborReductionPct, m.Description, m.RegionAvailability, m.ID)
	if err != nil {
		if invalid := uniqueViolation(err); invalid != nil {
			return invalid
		}
		return fmt.Errorf("update material %d: %w", m.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update material %d: %w", m.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("material %d: %w", m.ID, ErrNotFound)
	}

	return nil
}

// Deactivate hides the material with id from List. The base material cannot
// be deactivated.
func (s *Materials) Deactivate(ctx context.Context, id int64) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.IsBase {
		return &catalog.InvalidInputError{Field: "id", Label: m.Name, Reason: "is the base material and cannot be deactivated"}
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE materials
		SET active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id); err != nil {
		return fmt.Errorf("deactivate material %d: %w", id, err)
	}
	return nil
}

// uniqueViolation turns a UNIQUE constraint failure into the input error a
// caller can act on, or returns nil for any other error.
func uniqueViolation(err error) *catalog.InvalidInputError {
	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return nil
	}
	if strings.Contains(se.Error(), "materials.is_base") {
		return &catalog.InvalidInputError{Field: "is_base", Reason: "a base material already exists"}
	}
	return &catalog.InvalidInputError{Field: "name", Reason: "already exists"}
}

func validateMaterial(m catalog.Material) error {
	if strings.TrimSpace(m.Name) == "" {
		return &catalog.InvalidInputError{Field: "name", Reason: "is required"}
	}
	return catalog.RequireNonNegative("cost_per_m2", m.CostPerM2)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row scanner) (catalog.Material, error) {
	var m catalog.Material
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Category,
		&m.CostPerM2,
		&m.CO2Impact,
		&m.EnergySavingsPct,
		&m.LaborReductionPct,
		&m.Description,
		&m.RegionAvailability,
		&m.IsBase,
	)
	return m, err
}
