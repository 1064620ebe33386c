package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabricpack/fabricpack/internal/raster"
)

func init() {
	var sessionID, fabricFolder, out string
	var index int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one candidate option as a standalone strip preview image",
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

			h, err := s.OptionToStripImage(opts[index], fabricFolder)
			if err != nil {
				return err
			}
			if err := raster.WritePNG(out, h.Strip); err != nil {
				return err
			}

			cmd.Printf("wrote %s (handle %s)\n", out, h.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id (required)")
	cmd.Flags().IntVar(&index, "index", 0, "index into the options next-options last printed")
	cmd.Flags().StringVar(&fabricFolder, "fabric-folder", "", "directory fabric image paths are resolved against (required)")
	cmd.Flags().StringVar(&out, "out", "strip.png", "output PNG path")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("fabric-folder")

	rootCmd.AddCommand(cmd)
}
