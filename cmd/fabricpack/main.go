// Command fabricpack drives the scrap-packing engine from the terminal: one
// subcommand per external-interface operation, state persisted to a flat
// directory of JSON files between invocations so a packing run can span
// many separate process calls the way a long-lived server would otherwise
// keep it in memory.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var stateDir string

var rootCmd = &cobra.Command{
	Use:   "fabricpack",
	Short: "Pack fabric scraps into strips and composite rasters",
	Long: "fabricpack groups scanned fabric scraps into bins, solves for the next\n" +
		"packing strip at each step, and renders the running composite to a\n" +
		"final raster, resuming across invocations from state saved on disk.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "./fabricpack-state",
		"directory holding session state between invocations")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("fabricpack: %v", err)
		os.Exit(1)
	}
}
