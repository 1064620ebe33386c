package main

import (
	"github.com/spf13/cobra"
)

func init() {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recently committed pack",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resumeSession(sessionID)
			if err != nil {
				return err
			}
			if err := s.Undo(); err != nil {
				return err
			}
			if err := s.ExportSnapshot(snapshotPath(sessionID)); err != nil {
				return err
			}
			// The undone state invalidates whatever options were solved
			// against the step just rolled back.
			if err := saveOptions(sessionID, nil); err != nil {
				return err
			}
			cmd.Printf("undid last step; now at iter %d\n", s.Core.Iter)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id (required)")
	cmd.MarkFlagRequired("session")

	rootCmd.AddCommand(cmd)
}
