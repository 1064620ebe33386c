package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/bin"
)

func init() {
	var sessionID, rank string
	var thicknessMin, thicknessMax, countMin, countMax int
	var allowEmpty bool

	cmd := &cobra.Command{
		Use:   "next-options",
		Short: "Solve for the next step's candidate packing options",
		RunE: func(cmd *cobra.Command, args []string) error {
			rankKind, err := parseRank(rank)
			if err != nil {
				return err
			}

			s, err := resumeSession(sessionID)
			if err != nil {
				return err
			}

			constraints := bin.SolveConstraints{
				ThicknessMin: thicknessMin,
				ThicknessMax: thicknessMax,
				CountMin:     countMin,
				CountMax:     countMax,
			}
			opts, err := s.NextPackingOptions(context.Background(), bin.BinFilter{}, bin.OptionFilter{}, rankKind, constraints, allowEmpty)
			if err != nil {
				return err
			}

			if err := saveOptions(sessionID, opts); err != nil {
				return err
			}

			out, err := json.MarshalIndent(opts, "", "  ")
			if err != nil {
				return fmt.Errorf("fabricpack: marshal options: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id from load-bins (required)")
	cmd.Flags().StringVar(&rank, "rank", "wasted-area", "ranking objective: wasted-area, max-thickness, min-thickness, hi-fabric-count, lo-fabric-count, lo-contrast, hi-contrast, lo-value-contrast, hi-value-contrast, lo-hue-contrast, or hi-hue-contrast")
	cmd.Flags().IntVar(&thicknessMin, "thickness-min", 0, "minimum strip thickness, 0 for unbounded")
	cmd.Flags().IntVar(&thicknessMax, "thickness-max", 0, "maximum strip thickness, 0 for unbounded")
	cmd.Flags().IntVar(&countMin, "count-min", 0, "minimum fabrics per option, 0 for unbounded")
	cmd.Flags().IntVar(&countMax, "count-max", 0, "maximum fabrics per option, 0 for unbounded")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "allow an empty result instead of erroring when nothing qualifies")
	cmd.MarkFlagRequired("session")

	rootCmd.AddCommand(cmd)
}

func parseRank(s string) (bin.OptionRankKind, error) {
	switch s {
	case "wasted-area":
		return bin.RankWastedArea, nil
	case "max-thickness":
		return bin.RankMaxThickness, nil
	case "min-thickness":
		return bin.RankMinThickness, nil
	case "hi-fabric-count":
		return bin.RankHiFabricCount, nil
	case "lo-fabric-count":
		return bin.RankLoFabricCount, nil
	case "lo-contrast":
		return bin.RankLoContrast, nil
	case "hi-contrast":
		return bin.RankHiContrast, nil
	case "lo-value-contrast":
		return bin.RankLoValueContrast, nil
	case "hi-value-contrast":
		return bin.RankHiValueContrast, nil
	case "lo-hue-contrast":
		return bin.RankLoHueContrast, nil
	case "hi-hue-contrast":
		return bin.RankHiHueContrast, nil
	default:
		return 0, fmt.Errorf("fabricpack: unknown rank %q", s)
	}
}
