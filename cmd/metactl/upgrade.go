package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/chain-metadata/convert"
	"github.com/wippyai/chain-metadata/metadata"
)

func newUpgradeCommand() *cobra.Command {
	var opaque bool
	var target uint8
	var output string

	cmd := &cobra.Command{
		Use:   "upgrade <file>",
		Short: "Upgrade a legacy payload to a newer legacy version",
		Long: `Upgrade decodes a legacy payload, walks it up the lossless
conversion chain one version at a time and re-encodes the result.
Downgrades and conversions into the registry-backed versions are
rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPayload(args[0], opaque)
			if err != nil {
				return err
			}
			m, err := metadata.Decode(data)
			if err != nil {
				return err
			}
			out, err := convert.Upgrade(m, target)
			if err != nil {
				return err
			}
			encoded, err := out.Encode()
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + fmt.Sprintf(".v%d", target)
			}
			if err := os.WriteFile(output, encoded, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (v%d -> v%d, %d bytes)\n",
				output, m.Version, out.Version, len(encoded))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "unwrap the opaque byte-vector form first")
	cmd.Flags().Uint8Var(&target, "to", metadata.V13, "target version")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <file>.v<target>)")
	return cmd
}
