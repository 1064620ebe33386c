package main

import (
	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
)

func init() {
	var fabricsPath, publicDir, highResDir, criterion, mode string
	var maxClusters int

	cmd := &cobra.Command{
		Use:   "estimate-bins",
		Short: "Estimate a good bin count for a flat list of fabrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := parseCriterion(criterion)
			if err != nil {
				return err
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			cfg := model.DefaultPackingConfig(model.LogCabin)
			fabrics, err := loadFlatFabrics(fabricsPath, publicDir, highResDir, cfg)
			if err != nil {
				return err
			}

			n := engine.EstimateNBins(fabrics, crit, m, maxClusters)
			cmd.Println(n)
			return nil
		},
	}

	cmd.Flags().StringVar(&fabricsPath, "fabrics", "", "path to the flat fabric list JSON file (required)")
	cmd.Flags().StringVar(&publicDir, "public-dir", "", "directory image_path entries are resolved against (required)")
	cmd.Flags().StringVar(&highResDir, "high-res-dir", "", "parallel directory of high-res scans, if any")
	cmd.Flags().StringVar(&criterion, "criterion", "color", "clustering criterion: hue, value, or color")
	cmd.Flags().StringVar(&mode, "mode", "mean", "color sample used: mean or dominant")
	cmd.Flags().IntVar(&maxClusters, "max-clusters", 10, "upper bound on candidate bin counts to try")
	cmd.MarkFlagRequired("fabrics")
	cmd.MarkFlagRequired("public-dir")

	rootCmd.AddCommand(cmd)
}
