package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/session"
)

func init() {
	var binSpecPath, publicDir, highResDir, strategy string
	var dpi float64
	var sa, threshold, minScrapSize, maxOptions int

	cmd := &cobra.Command{
		Use:   "load-bins",
		Short: "Load a bin specification and start a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(binSpecPath)
			if err != nil {
				return fmt.Errorf("fabricpack: read bin spec: %w", err)
			}
			var spec session.WireSpec
			if err := json.Unmarshal(raw, &spec); err != nil {
				return fmt.Errorf("fabricpack: parse bin spec: %w", err)
			}

			cfg := model.DefaultPackingConfig(model.Strategy(strategy))
			if cmd.Flags().Changed("dpi") && dpi > 0 {
				cfg.UpdateDPI(dpi)
			}
			if cmd.Flags().Changed("sa") {
				cfg.SA = sa
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}
			if cmd.Flags().Changed("min-scrap-size") {
				cfg.MinScrapSize = minScrapSize
			}
			if cmd.Flags().Changed("max-options") {
				cfg.MaxOptions = maxOptions
			}

			s, err := session.LoadBins(publicDir, spec.Bins, highResDir, cfg)
			if err != nil {
				return err
			}
			if err := s.ExportSnapshot(snapshotPath(s.ID)); err != nil {
				return err
			}
			cmd.Println(s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&binSpecPath, "bin-spec", "", "path to the bin specification JSON file (required)")
	cmd.Flags().StringVar(&publicDir, "public-dir", "", "directory fabric image_path entries are resolved against (required)")
	cmd.Flags().StringVar(&highResDir, "high-res-dir", "", "parallel directory of high-res scans, if any")
	cmd.Flags().StringVar(&strategy, "strategy", string(model.LogCabin), "packing strategy: log-cabin, courthouse-steps, or rail-fence")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "override DPI (default config DPI if 0)")
	cmd.Flags().IntVar(&sa, "sa", 0, "override seam allowance in pixels")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "override length tolerance in pixels")
	cmd.Flags().IntVar(&minScrapSize, "min-scrap-size", 0, "override minimum scrap size in pixels")
	cmd.Flags().IntVar(&maxOptions, "max-options", 0, "override max candidate options per step")
	cmd.MarkFlagRequired("bin-spec")
	cmd.MarkFlagRequired("public-dir")

	rootCmd.AddCommand(cmd)
}
