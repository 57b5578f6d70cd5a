package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/santaomatic/santaomatic/pkg/santa"
)

var (
	reviewDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	reviewGifterStyle = lipgloss.NewStyle().Foreground(colorWhite)
	reviewGifteeStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// reviewModel is the bubbletea model for interactively reviewing a draw
// before letters are written. The user can redraw as often as they like;
// accepting keeps the currently shown sequence.
type reviewModel struct {
	engine   *santa.Santa
	seq      []string
	accepted bool
	redraws  int
	note     string
}

func newReviewModel(engine *santa.Santa, seq []string) reviewModel {
	return reviewModel{engine: engine, seq: seq}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.redraws++
			if seq := m.engine.Generate(); len(seq) > 0 {
				m.seq = seq
				m.note = fmt.Sprintf("redraw #%d", m.redraws)
			} else {
				m.note = "redraw found no valid sequence, keeping the previous one"
			}
		case "enter":
			m.accepted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Review Draw"))
	b.WriteString("\n")
	b.WriteString(reviewDimStyle.Render("⏎ accept  r redraw  q discard"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.seq)-1)
	for i := 0; i < len(m.seq)-1; i++ {
		rows = append(rows, []string{m.seq[i], iconArrow, m.seq[i+1]})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Gifter", "", "Giftee").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			case col == 2:
				return reviewGifteeStyle
			case col == 1:
				return reviewDimStyle
			default:
				return reviewGifterStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if m.note != "" {
		b.WriteString(reviewDimStyle.Render(m.note))
		b.WriteString("\n")
	}
	return b.String()
}

// reviewSequence runs the interactive review. It returns the accepted
// sequence, or nil when the user discarded the draw.
func reviewSequence(engine *santa.Santa, seq []string) ([]string, error) {
	final, err := tea.NewProgram(newReviewModel(engine, seq)).Run()
	if err != nil {
		return nil, fmt.Errorf("review: %w", err)
	}
	m := final.(reviewModel)
	if !m.accepted {
		return nil, nil
	}
	return m.seq, nil
}
