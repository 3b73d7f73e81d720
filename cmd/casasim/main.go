package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var catalogPath string

	rootCmd := &cobra.Command{
		Use:          "casasim",
		Short:        "Masonry material estimates and construction system comparisons",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", os.Getenv("CATALOG_PATH"), "YAML catalog file (built-in catalog when empty)")

	rootCmd.AddCommand(wallsCmd(&catalogPath))
	rootCmd.AddCommand(compareCmd(&catalogPath))
	rootCmd.AddCommand(systemsCmd(&catalogPath))
	return rootCmd
}

func wallsCmd(catalogPath *string) *cobra.Command {
	var opts wallsOptions

	cmd := &cobra.Command{
		Use:   "walls",
		Short: "Estimate bricks, cement, sand and cost for a wall area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.brickCostSet = cmd.Flags().Changed("brick-cost")
			opts.cementCostSet = cmd.Flags().Changed("cement-cost")
			opts.sandCostSet = cmd.Flags().Changed("sand-cost")
			return runWalls(cmd.OutOrStdout(), *catalogPath, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.area, "area", 0, "wall area in m²")
	cmd.Flags().Float64Var(&opts.joint, "joint", 1.5, "mortar joint thickness in cm")
	cmd.Flags().StringVar(&opts.brick, "brick", "", "brick type id (king_kong_18 when empty)")
	cmd.Flags().StringVar(&opts.mix, "mix", "", "cement:sand ratio (1:5 when empty)")
	cmd.Flags().Float64Var(&opts.pricing.CostPerBrick, "brick-cost", 0, "price per brick (catalog price when unset)")
	cmd.Flags().Float64Var(&opts.pricing.CostPerCementBag, "cement-cost", 0, "price per cement bag (catalog price when unset)")
	cmd.Flags().Float64Var(&opts.pricing.CostPerSandM3, "sand-cost", 0, "price per m³ of sand (catalog price when unset)")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}

func compareCmd(catalogPath *string) *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a traditional build against an alternative material and system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.baseCostSet = cmd.Flags().Changed("base-cost")
			opts.optimizedCostSet = cmd.Flags().Changed("optimized-cost")
			return runCompare(cmd.OutOrStdout(), *catalogPath, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.baseCost, "base-cost", 0, "base material cost per m² (catalog base material when unset)")
	cmd.Flags().Float64Var(&opts.optimizedCost, "optimized-cost", 0, "alternative material cost per m² (base cost when unset)")
	cmd.Flags().StringVar(&opts.baselineSystem, "baseline", "", "baseline system id (catalog baseline when empty)")
	cmd.Flags().StringVar(&opts.system, "system", "", "chosen construction system id")
	cmd.Flags().Float64Var(&opts.areaPerUnit, "area-per-unit", 35, "built area per dwelling in m²")
	cmd.Flags().IntVar(&opts.units, "units", 1, "number of dwellings")
	return cmd
}

func systemsCmd(catalogPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List construction systems and their factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSystems(cmd.OutOrStdout(), *catalogPath)
		},
	}
}
