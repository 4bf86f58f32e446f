package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/chain-metadata/metadata"
)

var (
	exploreTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	palletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	shapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	exploreSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4"))

	docStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	exploreErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B"))

	exploreHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

func newExploreCommand() *cobra.Command {
	var opaque bool

	cmd := &cobra.Command{
		Use:   "explore <file>",
		Short: "Browse a payload's pallets and storage entries interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newExploreModel(args[0], opaque), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&opaque, "opaque", false, "unwrap the opaque byte-vector form first")
	return cmd
}

type exploreState int

const (
	stateSelectPallet exploreState = iota
	stateShowPallet
)

type exploreModel struct {
	err      error
	filename string
	opaque   bool
	summary  treeSummary
	loaded   bool
	filter   textinput.Model
	visible  []int
	selected int
	state    exploreState
}

type payloadMsg struct {
	err     error
	summary treeSummary
}

func newExploreModel(filename string, opaque bool) *exploreModel {
	ti := textinput.New()
	ti.Placeholder = "filter pallets"
	ti.Prompt = "/ "
	ti.Width = 30
	ti.Focus()
	return &exploreModel{
		filename: filename,
		opaque:   opaque,
		filter:   ti,
		state:    stateSelectPallet,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return m.loadPayload
}

func (m *exploreModel) loadPayload() tea.Msg {
	data, err := readPayload(m.filename, m.opaque)
	if err != nil {
		return payloadMsg{err: err}
	}
	md, err := metadata.Decode(data)
	if err != nil {
		return payloadMsg{err: err}
	}
	return payloadMsg{summary: summarize(md)}
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.state == stateSelectPallet && m.selected > 0 {
				m.selected--
			}

		case "down", "ctrl+n":
			if m.state == stateSelectPallet && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectPallet && len(m.visible) > 0 {
				m.state = stateShowPallet
			}

		case "esc":
			if m.state == stateShowPallet {
				m.state = stateSelectPallet
			}
		}

	case payloadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.loaded = true
		m.refilter()
	}

	if m.state == stateSelectPallet {
		before := m.filter.Value()
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.refilter()
		}
		return m, cmd
	}

	return m, nil
}

func (m *exploreModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, p := range m.summary.Pallets {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *exploreModel) View() string {
	if m.err != nil {
		return exploreErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Decoding payload..."
	}

	var b strings.Builder
	b.WriteString(exploreTitleStyle.Render(fmt.Sprintf("Metadata v%d", m.summary.Version)))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectPallet:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for row, idx := range m.visible {
			p := m.summary.Pallets[idx]
			line := fmt.Sprintf("[%d] %s (%d entries)", p.Index, p.Name, len(p.Entries))
			if row == m.selected {
				b.WriteString(exploreSelectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + palletStyle.Render(line))
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(exploreHelpStyle.Render("  no pallets match"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(exploreHelpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateShowPallet:
		p := m.summary.Pallets[m.visible[m.selected]]
		b.WriteString(palletStyle.Render(p.Name))
		b.WriteString(fmt.Sprintf("  index %d\n\n", p.Index))
		if len(p.Entries) == 0 {
			b.WriteString(exploreHelpStyle.Render("no storage entries"))
			b.WriteString("\n")
		}
		for _, e := range p.Entries {
			b.WriteString(fmt.Sprintf("  %-32s %s\n", e.Name, shapeStyle.Render(e.Shape)))
			for _, d := range e.Docs {
				b.WriteString(docStyle.Render("      " + d))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(exploreHelpStyle.Render("esc back • q quit"))
	}

	return b.String()
}
