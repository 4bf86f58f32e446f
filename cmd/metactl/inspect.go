package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/chain-metadata/metadata"
)

var (
	inspectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	inspectHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	inspectDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inspectEntryStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
)

func newInspectCommand() *cobra.Command {
	var opaque bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Decode a payload and print a schema summary",
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
			renderSummary(cmd, summarize(m), len(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "unwrap the opaque byte-vector form first")
	return cmd
}

func renderSummary(cmd *cobra.Command, s treeSummary, payloadLen int) {
	out := cmd.OutOrStdout()
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	fmt.Fprintln(out, inspectTitleStyle.Render(fmt.Sprintf("Runtime metadata v%d", s.Version)))
	fmt.Fprintln(out, inspectDimStyle.Render(fmt.Sprintf("%d bytes, %d pallets", payloadLen, len(s.Pallets))))
	if s.RegistryLen >= 0 {
		fmt.Fprintln(out, inspectDimStyle.Render(fmt.Sprintf("type registry: %d types", s.RegistryLen)))
	} else {
		fmt.Fprintln(out, inspectDimStyle.Render("type registry: none (inline type strings)"))
	}
	if s.APIs > 0 {
		fmt.Fprintln(out, inspectDimStyle.Render(fmt.Sprintf("runtime APIs: %d", s.APIs)))
	}
	if s.CustomValues > 0 {
		fmt.Fprintln(out, inspectDimStyle.Render(fmt.Sprintf("custom values: %d", s.CustomValues)))
	}
	if len(s.SignedExtensions) > 0 {
		line := "signed extensions: " + strings.Join(s.SignedExtensions, ", ")
		fmt.Fprintln(out, inspectDimStyle.Render(truncate(line, width)))
	}
	fmt.Fprintln(out)

	for _, p := range s.Pallets {
		var flags []string
		if p.HasCalls {
			flags = append(flags, "calls")
		}
		if p.HasEvents {
			flags = append(flags, "events")
		}
		if p.HasErrors {
			flags = append(flags, "errors")
		}
		if p.Constants > 0 {
			flags = append(flags, fmt.Sprintf("%d constants", p.Constants))
		}
		head := fmt.Sprintf("[%d] %s", p.Index, p.Name)
		fmt.Fprint(out, inspectHeaderStyle.Render(head))
		if len(flags) > 0 {
			fmt.Fprint(out, inspectDimStyle.Render("  ("+strings.Join(flags, ", ")+")"))
		}
		fmt.Fprintln(out)
		for _, e := range p.Entries {
			line := fmt.Sprintf("    %-32s %s", e.Name, e.Shape)
			fmt.Fprintln(out, inspectEntryStyle.Render(truncate(line, width)))
		}
	}
}

func truncate(s string, width int) string {
	if width < 8 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
