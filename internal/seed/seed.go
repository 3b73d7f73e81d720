package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/casasim/internal/catalog"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the catalog's materials that are missing by name. It is
// idempotent and runs in a single transaction.
func Run(ctx context.Context, db *sql.DB, cat *catalog.Catalog) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, m := range cat.Materials() {
		if err := ensureMaterial(ctx, tx, m, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(ctx context.Context, tx *sql.Tx, m catalog.Material, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, m.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check material %q existence: %w", m.Name, err)
	}
	if exists {
		return nil
	}

	// Keep a base material that was created by hand.
	isBase := m.IsBase
	if isBase {
		var hasBase bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM materials WHERE is_base = TRUE)`).Scan(&hasBase); err != nil {
			return fmt.Errorf("check base material existence: %w", err)
		}
		isBase = !hasBase
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO materials (
			name, category, cost_per_m2, co2_impact, energy_savings_pct,
			labor_reduction_pct, description, region_availability, is_base, active
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE)
	`, m.Name, m.Category, m.CostPerM2, m.CO2Impact, m.EnergySavingsPct,
		m.LaborReductionPct, m.Description, m.RegionAvailability, isBase); err != nil {
		return fmt.Errorf("insert material %q: %w", m.Name, err)
	}
	stats.Inserts++
	return nil
}
