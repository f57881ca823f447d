package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
	LevelWarning
	LevelInfo
)

func (l Level) label() string {
	switch l {
	case LevelSuccess:
		return "ok"
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "info"
	}
}

// Notifier prints short status notices, the terminal stand-in for toasts.
// Colors are dropped automatically when w is not a terminal.
type Notifier struct {
	w      io.Writer
	badges map[Level]lipgloss.Style
	title  lipgloss.Style
}

func NewNotifier(w io.Writer) *Notifier {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true).Padding(0, 1)

	return &Notifier{
		w: w,
		badges: map[Level]lipgloss.Style{
			LevelSuccess: badge.Foreground(lipgloss.Color("2")),
			LevelError:   badge.Foreground(lipgloss.Color("1")),
			LevelWarning: badge.Foreground(lipgloss.Color("3")),
			LevelInfo:    badge.Foreground(lipgloss.Color("4")),
		},
		title: r.NewStyle().Bold(true),
	}
}

// Notify prints one notice. title may be empty.
func (n *Notifier) Notify(level Level, title, msg string) {
	line := n.badges[level].Render("[" + level.label() + "]")
	if title != "" {
		line += " " + n.title.Render(title)
	}
	fmt.Fprintln(n.w, line+" "+msg)
}

func (n *Notifier) Success(msg string) { n.Notify(LevelSuccess, "", msg) }
func (n *Notifier) Error(msg string)   { n.Notify(LevelError, "", msg) }
func (n *Notifier) Warning(msg string) { n.Notify(LevelWarning, "", msg) }
func (n *Notifier) Info(msg string)    { n.Notify(LevelInfo, "", msg) }
