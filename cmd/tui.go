// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"

	"github.com/Thermoquad/crcsum/pkg/crc16"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive CRC-16 calculator",
	Long: `Open an interactive calculator. The checksum of the input is updated on
every keystroke for the variant selected in the list and for the default
CRC-16/CCITT-FALSE variant.

Keys:
  tab      - switch between text and hex input
  up/down  - select a variant
  esc      - quit (ctrl+c also quits)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	selected, err := crc16.Lookup(variantName)
	if err != nil {
		return err
	}

	m := initialCalcModel(selected)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// Input modes
const (
	inputText = iota
	inputHex
)

// variantItem implements list.Item
type variantItem struct {
	params crc16.Params
	table  *crc16.Table
}

func (v variantItem) Title() string { return v.params.Name }
func (v variantItem) Description() string {
	return fmt.Sprintf("poly 0x%04X init 0x%04X", v.params.Poly, v.params.Init)
}
func (v variantItem) FilterValue() string { return v.params.Name }

// calcModel is the Bubble Tea model for the calculator
type calcModel struct {
	input       textinput.Model
	variantList list.Model
	inputMode   int

	width    int
	height   int
	quitting bool
}

func initialCalcModel(selected crc16.Params) calcModel {
	ti := textinput.New()
	ti.Placeholder = crc16.CheckInput
	ti.CharLimit = 4096
	ti.Width = 48
	ti.Focus()

	variants := crc16.Variants()
	items := make([]list.Item, len(variants))
	index := 0
	for i, p := range variants {
		items[i] = variantItem{params: p, table: crc16.MakeTable(p)}
		if p == selected {
			index = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	variantList := list.New(items, delegate, 34, 2*len(items)+2)
	variantList.Title = "Variants"
	variantList.SetShowStatusBar(false)
	variantList.SetShowHelp(false)
	variantList.SetFilteringEnabled(false)
	variantList.Select(index)

	return calcModel{
		input:       ti,
		variantList: variantList,
		inputMode:   inputText,
		width:       80,
		height:      24,
	}
}

func (m calcModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.toggleMode()
			return m, nil

		case "up", "down":
			var cmd tea.Cmd
			m.variantList, cmd = m.variantList.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *calcModel) toggleMode() {
	if m.inputMode == inputText {
		m.inputMode = inputHex
		m.input.Placeholder = "31 32 33 34 35 36 37 38 39"
	} else {
		m.inputMode = inputText
		m.input.Placeholder = crc16.CheckInput
	}
}

// selectedVariant returns the highlighted list entry
func (m calcModel) selectedVariant() variantItem {
	if item, ok := m.variantList.SelectedItem().(variantItem); ok {
		return item
	}
	return variantItem{params: crc16.CCITTFalse, table: crc16.MakeTable(crc16.CCITTFalse)}
}

// inputBytes decodes the input according to the current mode
func (m calcModel) inputBytes() ([]byte, error) {
	if m.inputMode == inputHex {
		return parseHex(m.input.Value())
	}
	return []byte(m.input.Value()), nil
}

func (m calcModel) View() string {
	if m.quitting {
		return ""
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("CRCSUM CALCULATOR"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render("| tab=text/hex up/down=variant esc=quit"))
	s.WriteString("\n\n")

	// Input panel
	mode := "Text"
	if m.inputMode == inputHex {
		mode = "Hex"
	}
	var panel strings.Builder
	panel.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Input:"), headerStyle.Render(mode)))
	panel.WriteString(m.input.View())
	panel.WriteString("\n\n")

	data, err := m.inputBytes()
	if err != nil {
		panel.WriteString(errorStyle.Render(err.Error()))
	} else {
		panel.WriteString(renderResults(data, m.selectedVariant(), labelStyle, valueStyle, headerStyle))
	}

	rightWidth := m.width - 34 - 6
	if rightWidth < 40 {
		rightWidth = 40
	}
	listPanel := boxStyle.Render(m.variantList.View())
	inputPanel := boxStyle.Width(rightWidth).Render(panel.String())

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPanel, " ", inputPanel))
	s.WriteString("\n")

	return s.String()
}

// renderResults shows the checksum for the selected and default variants
func renderResults(data []byte, selected variantItem, labelStyle, valueStyle, headerStyle lipgloss.Style) string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Bytes:"), valueStyle.Render(fmt.Sprintf("%d", len(data)))))

	sum := selected.table.Checksum(data)
	s.WriteString(fmt.Sprintf("%s %s %s\n",
		labelStyle.Render(selected.params.Name+":"),
		valueStyle.Render(fmt.Sprintf("0x%04X", sum)),
		headerStyle.Render(fmt.Sprintf("(%d)", sum))))

	if selected.params != crc16.CCITTFalse {
		def := crc16.Checksum(data)
		s.WriteString(fmt.Sprintf("%s %s %s\n",
			labelStyle.Render(crc16.CCITTFalse.Name+":"),
			valueStyle.Render(fmt.Sprintf("0x%04X", def)),
			headerStyle.Render(fmt.Sprintf("(%d)", def))))
	}

	return s.String()
}
