// Package tui renders ranges in the terminal and drives the interactive
// range explorer.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
)

type focus int

const (
	focusRange focus = iota
	focusBoard
	focusGrid
	numFocus
)

// Explorer is the bubbletea model behind `pdcfr explore`. The range and board
// are parsed when Enter is pressed; the grid then shows the range with
// board-blocked combos removed.
type Explorer struct {
	logger *log.Logger
	styles GridStyles

	rangeInput textinput.Model
	boardInput textinput.Model
	focus      focus

	rng    *analysis.Range
	grid   *analysis.Grid
	cursor [2]int
	label  Label
	err    error

	quitting bool
}

// NewExplorer creates the model and evaluates the initial inputs.
func NewExplorer(logger *log.Logger, renderer *lipgloss.Renderer, rangeText, boardText string) *Explorer {
	newInput := func(prompt, placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = placeholder
		ti.CharLimit = 512
		ti.Width = 80
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
		ti.SetValue(value)
		return ti
	}

	m := &Explorer{
		logger:     logger.WithPrefix("tui"),
		styles:     NewGridStyles(renderer),
		rangeInput: newInput("range> ", "AA,AKs,KK,QQ:0.5,JJ-99", rangeText),
		boardInput: newInput("board> ", "Ah Kd Qc", boardText),
		grid:       analysis.NewGrid(),
	}
	m.rangeInput.Focus()
	m.evaluate()
	return m
}

// Init implements tea.Model.
func (m *Explorer) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInput(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % numFocus)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + numFocus - 1) % numFocus)
		return m, nil
	case "enter":
		m.evaluate()
		return m, nil
	}

	if m.focus == focusGrid {
		m.moveCursor(key.String())
		return m, nil
	}
	return m, m.updateInput(msg)
}

func (m *Explorer) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusRange:
		m.rangeInput, cmd = m.rangeInput.Update(msg)
	case focusBoard:
		m.boardInput, cmd = m.boardInput.Update(msg)
	}
	return cmd
}

func (m *Explorer) setFocus(f focus) {
	m.focus = f
	m.rangeInput.Blur()
	m.boardInput.Blur()
	switch f {
	case focusRange:
		m.rangeInput.Focus()
	case focusBoard:
		m.boardInput.Focus()
	}
}

func (m *Explorer) moveCursor(key string) {
	row, col := m.cursor[0], m.cursor[1]
	switch key {
	case "up", "k":
		row--
	case "down", "j":
		row++
	case "left", "h":
		col--
	case "right", "l":
		col++
	case "f":
		if m.label == LabelClass {
			m.label = LabelFrequency
		} else {
			m.label = LabelClass
		}
	}
	m.cursor = [2]int{
		min(max(row, 0), analysis.GridSize-1),
		min(max(col, 0), analysis.GridSize-1),
	}
}

// evaluate parses both inputs. On error the previous grid is kept.
func (m *Explorer) evaluate() {
	rng, err := analysis.ParseRange(m.rangeInput.Value())
	if err != nil {
		m.err = err
		return
	}
	board, err := poker.ParseBoard(m.boardInput.Value())
	if err != nil {
		m.err = err
		return
	}
	if len(board) > 5 {
		m.err = &poker.CardError{Input: m.boardInput.Value(), Reason: "a board has at most 5 cards"}
		return
	}

	m.err = nil
	m.rng = rng.FilterBlocked(board)
	m.grid = m.rng.Grid()
	m.logger.Debug("Evaluated range", "combos", m.rng.Len(), "board", poker.FormatBoard(board))
}

// Range is the last successfully evaluated range, or nil.
func (m *Explorer) Range() *analysis.Range { return m.rng }

// Err is the last parse error, if any.
func (m *Explorer) Err() error { return m.err }

// SelectedCell is the cell under the cursor.
func (m *Explorer) SelectedCell() analysis.GridCell {
	return m.grid.Cells[m.cursor[0]][m.cursor[1]]
}

// View implements tea.Model.
func (m *Explorer) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Range explorer "))
	b.WriteString("\n\n")
	b.WriteString(m.rangeInput.View())
	b.WriteByte('\n')
	b.WriteString(m.boardInput.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	case m.rng != nil:
		b.WriteString(SuccessStyle.Render(Summary(m.rng)))
	}
	b.WriteString("\n\n")

	var selected *[2]int
	if m.focus == focusGrid {
		selected = &m.cursor
	}
	b.WriteString(RenderGrid(m.grid, m.styles, GridOptions{Label: m.label, Selected: selected}))
	b.WriteString("\n\n")

	if m.focus == focusGrid {
		b.WriteString(DescribeCell(m.SelectedCell()))
		b.WriteByte('\n')
	}
	b.WriteString(InfoStyle.Render("enter: apply  tab: switch field  arrows/hjkl: move  f: toggle labels  esc: quit"))
	b.WriteByte('\n')
	return b.String()
}
