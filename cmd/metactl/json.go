package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/chain-metadata/metadata"
)

func newJSONCommand() *cobra.Command {
	var opaque bool
	var compact bool

	cmd := &cobra.Command{
		Use:   "json <file>",
		Short: "Decode a payload and print the tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readPayload(args[0], opaque)
			if err != nil {
				return err
			}
			m, err := metadata.Decode(data)
			if err != nil {
				return err
			}
			doc := struct {
				Version uint8 `json:"version"`
				Tree    any   `json:"tree"`
			}{Version: m.Version, Tree: decodedTree(m)}

			var out []byte
			if compact {
				out, err = json.Marshal(doc)
			} else {
				out, err = json.MarshalIndent(doc, "", "  ")
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "unwrap the opaque byte-vector form first")
	cmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON on one line")
	return cmd
}

// decodedTree returns whichever version tree the envelope populated.
func decodedTree(m *metadata.Metadata) any {
	switch {
	case m.V8 != nil:
		return m.V8
	case m.V9 != nil:
		return m.V9
	case m.V10 != nil:
		return m.V10
	case m.V11 != nil:
		return m.V11
	case m.V12 != nil:
		return m.V12
	case m.V13 != nil:
		return m.V13
	case m.V14 != nil:
		return m.V14
	case m.V15 != nil:
		return m.V15
	case m.V16 != nil:
		return m.V16
	}
	return nil
}
