package main

import (
	"fmt"
	"io"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/comparison"
	"github.com/Simplici0/casasim/internal/masonry"
)

func printWallReport(w io.Writer, req masonry.Request, r masonry.Result) {
	fmt.Fprintln(w, "Wall Material Estimate")
	fmt.Fprintln(w, "======================")
	fmt.Fprintf(w, "  Wall area:        %.2f m²\n", req.WallArea)
	fmt.Fprintf(w, "  Joint thickness:  %.2f cm\n", req.JointThickness)
	fmt.Fprintf(w, "  Brick type:       %s\n", req.BrickType)
	fmt.Fprintf(w, "  Mortar mix:       %s\n", req.MortarRatio)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-16s %12s %12s\n", "Material", "Quantity", "Unit price")
	fmt.Fprintf(w, "%-16s %12s %12s\n", "----------------", "------------", "------------")
	fmt.Fprintf(w, "%-16s %12d %12.2f\n", "Bricks", r.BrickCount, req.Pricing.CostPerBrick)
	fmt.Fprintf(w, "%-16s %12d %12.2f\n", "Cement bags", r.CementBags, req.Pricing.CostPerCementBag)
	fmt.Fprintf(w, "%-16s %12.2f %12.2f\n", "Sand (m³)", r.SandVolumeM3, req.Pricing.CostPerSandM3)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Mortar volume:    %.4f m³\n", r.MortarVolumeM3)
	fmt.Fprintf(w, "  Total cost:       S/ %s\n", formatMoney(r.TotalMaterialCost))
}

func printComparisonReport(w io.Writer, units int, r comparison.Result) {
	fmt.Fprintf(w, "System Comparison: %s vs %s (%d units)\n", r.BaselineSystem.Name, r.ChosenSystem.Name, units)
	fmt.Fprintln(w, "==================")
	fmt.Fprintf(w, "%-12s %16s %16s\n", "", "Per unit", "Total")
	fmt.Fprintf(w, "%-12s %16s %16s\n", "Base", formatMoney(r.BaseCostPerUnit), formatMoney(r.TotalBaseCost))
	fmt.Fprintf(w, "%-12s %16s %16s\n", "Optimized", formatMoney(r.OptimizedCostPerUnit), formatMoney(r.TotalOptimizedCost))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Savings:          S/ %s (%.1f%%)\n", formatMoney(r.TotalSavings), r.SavingsPercentage)
	fmt.Fprintf(w, "  Time savings:     %.1f%%\n", r.TimeSavingsPercentage)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Attribution")
	fmt.Fprintln(w, "-----------")
	for _, s := range r.Attribution {
		fmt.Fprintf(w, "  %-28s %16s\n", s.Component, formatMoney(s.Amount))
	}
	for _, s := range r.Breakdown {
		fmt.Fprintf(w, "  %-28s %16s\n", s.Component, formatMoney(s.Amount))
	}
}

func printSystemsTable(w io.Writer, systems []catalog.ConstructionSystem) {
	fmt.Fprintf(w, "%-18s %-34s %8s %8s\n", "ID", "Name", "Cost", "Time")
	fmt.Fprintf(w, "%-18s %-34s %8s %8s\n", "------------------", "----------------------------------", "--------", "--------")
	for _, s := range systems {
		marker := ""
		if s.Baseline {
			marker = " *"
		}
		fmt.Fprintf(w, "%-18s %-34s %8.2f %8.2f%s\n", s.ID, s.Name, s.CostFactor, s.TimeFactor, marker)
	}
}

// formatMoney renders v with two decimals and thousands separators.
func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out) + frac
}
