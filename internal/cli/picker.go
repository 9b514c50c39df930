package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vegagallery/vegagallery/pkg/gallery"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StateListModel - Interactive state selection
// =============================================================================

// StateListModel is the bubbletea model for picking the states to generate.
// Space toggles a state, "a" toggles all, enter confirms.
type StateListModel struct {
	States    []gallery.State
	Picked    map[string]bool
	Cursor    int
	Confirmed bool
	Height    int
	Offset    int
}

// NewStateListModel creates a state list with the given states preselected.
func NewStateListModel(preselected []string) StateListModel {
	picked := make(map[string]bool, len(preselected))
	for _, code := range preselected {
		if st := gallery.FindState(code); st != nil {
			picked[st.Code] = true
		}
	}
	return StateListModel{
		States: gallery.States,
		Picked: picked,
		Height: 15,
	}
}

// Selection returns the picked state codes in canonical order, or nil when
// the picker was quit without confirming.
func (m StateListModel) Selection() []string {
	if !m.Confirmed {
		return nil
	}
	var codes []string
	for _, st := range m.States {
		if m.Picked[st.Code] {
			codes = append(codes, st.Code)
		}
	}
	return codes
}

func (m StateListModel) Init() tea.Cmd {
	return nil
}

func (m StateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.States)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			code := m.States[m.Cursor].Code
			if m.Picked[code] {
				delete(m.Picked, code)
			} else {
				m.Picked[code] = true
			}
		case "a":
			if len(m.Picked) == len(m.States) {
				m.Picked = map[string]bool{}
			} else {
				for _, st := range m.States {
					m.Picked[st.Code] = true
				}
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select States"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ␣ toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.States) {
		end = len(m.States)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		st := m.States[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Picked[st.Code] {
			mark = "✓"
		}
		rows = append(rows, []string{cursor, mark, st.Code, st.Name})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Code", "State").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.States) {
				return lipgloss.NewStyle()
			}
			picked := m.Picked[m.States[actualIdx].Code]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if picked {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Foreground(colorWhite).Bold(true)
			}
			if picked {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.States), len(m.Picked))))

	return b.String()
}

// pickStates runs the interactive state picker and returns the chosen codes.
// A nil slice with a nil error means the user quit without confirming.
func pickStates(preselected []string) ([]string, error) {
	model, err := tea.NewProgram(NewStateListModel(preselected)).Run()
	if err != nil {
		return nil, err
	}
	final, ok := model.(StateListModel)
	if !ok {
		return nil, nil
	}
	return final.Selection(), nil
}
