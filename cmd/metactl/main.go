// Command metactl inspects, converts and explores encoded runtime
// metadata payloads.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/chain-metadata/metadata"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "metactl",
		Short: "Runtime metadata inspection and conversion tooling",
		Long: `metactl decodes self-describing runtime metadata payloads
(versions 8 through 16), inspects their schema trees and type
registries, upgrades legacy payloads along the lossless chain and
re-encodes them bit-for-bit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			metadata.SetLogger(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newVersionOfCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newJSONCommand())
	rootCmd.AddCommand(newUpgradeCommand())
	rootCmd.AddCommand(newExploreCommand())

	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readPayload loads a metadata payload from disk, transparently
// unwrapping the opaque byte-vector form runtimes return.
func readPayload(path string, opaque bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if opaque {
		inner, err := metadata.DecodeOpaque(data)
		if err != nil {
			return nil, err
		}
		return inner, nil
	}
	return data, nil
}
