// Package prompt implements the single-choice menus used to disambiguate
// profiles, clusters, tasks and containers.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/containerd/errdefs"
	"github.com/mattn/go-isatty"

	"github.com/noelruault/ecsh/internal/ui/shared"
)

// ErrAborted is returned when the operator leaves a menu without choosing.
var ErrAborted = fmt.Errorf("selection aborted: %w", errdefs.ErrAborted)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("51")).Bold(true)
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	instructionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Menu renders menus on a terminal.
type Menu struct {
	In  *os.File
	Out io.Writer
}

// NewMenu returns a Menu reading the keyboard from stdin and drawing on
// stderr, leaving stdout untouched.
func NewMenu() *Menu {
	return &Menu{In: os.Stdin, Out: os.Stderr}
}

// Select shows items under title with the first entry highlighted and blocks
// until one is chosen. It returns the chosen index.
func (m *Menu) Select(ctx context.Context, title string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("nothing to choose from for %q: %w", title, errdefs.ErrNotFound)
	}
	if !isatty.IsTerminal(m.In.Fd()) && !isatty.IsCygwinTerminal(m.In.Fd()) {
		return 0, fmt.Errorf("%q needs an interactive terminal; pass the value as a flag instead: %w", title, errdefs.ErrFailedPrecondition)
	}

	p := tea.NewProgram(newModel(title, items),
		tea.WithContext(ctx),
		tea.WithInput(m.In),
		tea.WithOutput(m.Out),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return 0, ErrAborted
		}
		return 0, fmt.Errorf("menu %q failed: %w", title, err)
	}
	return final.(model).result()
}

type model struct {
	title   string
	items   []string
	cursor  int
	chosen  int
	aborted bool
	width   int
	vp      shared.Viewport
}

func newModel(title string, items []string) model {
	return model{
		title:  title,
		items:  items,
		chosen: -1,
		vp:     shared.Viewport{Height: 15},
	}
}

func (m model) result() (int, error) {
	if m.aborted || m.chosen < 0 {
		return 0, ErrAborted
	}
	return m.chosen, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// title + instructions
		m.vp.Height = max(msg.Height-3, 1)
		m.vp.Follow(m.cursor, len(m.items))

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.items) - 1
		case "pgup":
			m.cursor = max(m.cursor-m.vp.Height, 0)
		case "pgdown":
			m.cursor = min(m.cursor+m.vp.Height, len(m.items)-1)
		case "enter":
			m.chosen = m.cursor
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
		m.vp.Follow(m.cursor, len(m.items))
	}
	return m, nil
}

func (m model) View() string {
	if m.chosen >= 0 {
		return titleStyle.Render("? "+m.title) + " " + answerStyle.Render(m.items[m.chosen]) + "\n"
	}
	if m.aborted {
		return ""
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("? "+m.title) + "\n")

	start, end := m.vp.Range(len(m.items))
	for i := start; i < end; i++ {
		label := shared.Truncate(m.items[i], m.width-2)
		if i == m.cursor {
			content.WriteString(selectedStyle.Render("> "+label) + "\n")
		} else {
			content.WriteString(normalStyle.Render("  "+label) + "\n")
		}
	}

	hint := "Use ↑/↓ or j/k to select | Enter to confirm | ESC to quit"
	if end-start < len(m.items) {
		hint = fmt.Sprintf("[%d-%d of %d] %s", start+1, end, len(m.items), hint)
	}
	content.WriteString(instructionStyle.Render(hint))
	return content.String()
}
