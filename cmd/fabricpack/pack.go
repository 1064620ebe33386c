package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	var sessionID string
	var index int

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Commit one of the options next-options offered",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resumeSession(sessionID)
			if err != nil {
				return err
			}

			opts, err := loadOptions(sessionID)
			if err != nil {
				return err
			}
			if index < 0 || index >= len(opts) {
				return fmt.Errorf("fabricpack: option index %d out of range (0..%d)", index, len(opts)-1)
			}

			inst, err := s.PackWithOption(opts[index])
			if err != nil {
				return err
			}
			if err := s.ExportSnapshot(snapshotPath(sessionID)); err != nil {
				return err
			}
			// The committed step invalidates every other pending option: the
			// arena they were solved against no longer reflects current state.
			if err := saveOptions(sessionID, nil); err != nil {
				return err
			}

			cmd.Printf("step %d: %dx%d composite\n", inst.Iter, inst.NewSize.W, inst.NewSize.H)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id (required)")
	cmd.Flags().IntVar(&index, "index", 0, "index into the options next-options last printed")
	cmd.MarkFlagRequired("session")

	rootCmd.AddCommand(cmd)
}
