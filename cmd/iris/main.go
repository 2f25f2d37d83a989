// iris is the command line companion to iris-server: one-shot decisions,
// catalog inspection, and transcript replay for tuning the trigger and
// scoring tables.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	if !isTTY() {
		color.NoColor = true
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "iris",
		Short:         "Lens recommendation toolkit",
		Long:          "Decide, per chat turn, whether to hand the conversation off to a specialized lens.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the service config file")

	root.AddCommand(newRecommendCmd(&configPath))
	root.AddCommand(newCatalogCmd(&configPath))
	root.AddCommand(newReplayCmd(&configPath))
	return root
}
