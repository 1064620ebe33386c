package main

import (
	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/export"
	"github.com/fabricpack/fabricpack/internal/raster"
	"github.com/fabricpack/fabricpack/internal/session"
)

func init() {
	var sessionID, fabricFolder, out, reportPath, ledgerPath string

	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Replay a session's committed steps at full resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := session.ImportSnapshot(snapshotPath(sessionID))
			if err != nil {
				return err
			}

			canvas, instructions, err := session.ReconstructHighRes(data, fabricFolder)
			if err != nil {
				return err
			}
			if err := raster.WritePNG(out, canvas); err != nil {
				return err
			}
			cmd.Printf("wrote %s (%d steps replayed)\n", out, len(instructions))

			if reportPath == "" && ledgerPath == "" {
				return nil
			}

			resumed, err := session.Rebuild(data)
			if err != nil {
				return err
			}
			if reportPath != "" {
				if err := export.ExportInstructions(reportPath, resumed); err != nil {
					return err
				}
				cmd.Printf("wrote %s\n", reportPath)
			}
			if ledgerPath != "" {
				if err := export.ExportLedger(ledgerPath, resumed); err != nil {
					return err
				}
				cmd.Printf("wrote %s\n", ledgerPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id (required)")
	cmd.Flags().StringVar(&fabricFolder, "fabric-folder", "", "directory holding the full-resolution fabric scans (required)")
	cmd.Flags().StringVar(&out, "out", "composite.png", "output composite PNG path")
	cmd.Flags().StringVar(&reportPath, "report", "", "optional cutting-instructions PDF path")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "optional consumption ledger xlsx path")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("fabric-folder")

	rootCmd.AddCommand(cmd)
}
