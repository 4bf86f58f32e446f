package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/chain-metadata/metadata"
)

func newVersionOfCommand() *cobra.Command {
	var opaque bool

	cmd := &cobra.Command{
		Use:   "version-of <file>",
		Short: "Print a payload's version discriminant without decoding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPayload(args[0], opaque)
			if err != nil {
				return err
			}
			version, err := metadata.VersionOf(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "unwrap the opaque byte-vector form first")
	return cmd
}
