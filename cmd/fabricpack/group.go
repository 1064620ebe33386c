package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
)

func init() {
	var fabricsPath, publicDir, highResDir, criterion, mode, fixedBinsPath string
	var nBins int

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Partition a flat list of fabrics into nBins color-coherent groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			crit, err := parseCriterion(criterion)
			if err != nil {
				return err
			}
			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			var fixedBins map[int][]model.FabricID
			if fixedBinsPath != "" {
				raw, err := os.ReadFile(fixedBinsPath)
				if err != nil {
					return fmt.Errorf("fabricpack: read fixed bins: %w", err)
				}
				if err := json.Unmarshal(raw, &fixedBins); err != nil {
					return fmt.Errorf("fabricpack: parse fixed bins: %w", err)
				}
			}

			cfg := model.DefaultPackingConfig(model.LogCabin)
			fabrics, err := loadFlatFabrics(fabricsPath, publicDir, highResDir, cfg)
			if err != nil {
				return err
			}

			groups := engine.GroupFabrics(fabrics, nBins, crit, m, fixedBins)
			ids := make([][]model.FabricID, len(groups))
			for i, g := range groups {
				for _, f := range g {
					ids[i] = append(ids[i], f.ID)
				}
			}

			out, err := json.MarshalIndent(ids, "", "  ")
			if err != nil {
				return fmt.Errorf("fabricpack: marshal groups: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&fabricsPath, "fabrics", "", "path to the flat fabric list JSON file (required)")
	cmd.Flags().StringVar(&publicDir, "public-dir", "", "directory image_path entries are resolved against (required)")
	cmd.Flags().StringVar(&highResDir, "high-res-dir", "", "parallel directory of high-res scans, if any")
	cmd.Flags().StringVar(&criterion, "criterion", "color", "clustering criterion: hue, value, or color")
	cmd.Flags().StringVar(&mode, "mode", "mean", "color sample used: mean or dominant")
	cmd.Flags().IntVar(&nBins, "n-bins", 0, "number of bins to partition into (required)")
	cmd.Flags().StringVar(&fixedBinsPath, "fixed-bins", "", "optional JSON file mapping bin index to pre-assigned fabric ids")
	cmd.MarkFlagRequired("fabrics")
	cmd.MarkFlagRequired("public-dir")
	cmd.MarkFlagRequired("n-bins")

	rootCmd.AddCommand(cmd)
}
