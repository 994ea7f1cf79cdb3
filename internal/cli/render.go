package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/query"
)

var (
	colorHigh   = lipgloss.Color("#E74C3C")
	colorMedium = lipgloss.Color("#F4D03F")
	colorLow    = lipgloss.Color("#2ECC71")
	colorMuted  = lipgloss.Color("#7F8C8D")
)

// styles are bound to one renderer so colour detection follows the writer
// the command prints to, not the process stdout.
type styles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	done     lipgloss.Style
	priority map[domain.Priority]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		done:  r.NewStyle().Foreground(colorMuted).Strikethrough(true),
		priority: map[domain.Priority]lipgloss.Style{
			domain.PriorityHigh:   r.NewStyle().Foreground(colorHigh).Bold(true),
			domain.PriorityMedium: r.NewStyle().Foreground(colorMedium),
			domain.PriorityLow:    r.NewStyle().Foreground(colorLow),
		},
	}
}

func (s styles) task(t domain.Task) string {
	check := "[ ]"
	title := s.title.Render(t.Title)
	if t.Completed {
		check = "[x]"
		title = s.done.Render(t.Title)
	}
	tag := s.priority[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s #%-4d %s\n", check, tag, t.ID, title)
	if desc := strings.TrimSpace(t.Description); desc != "" {
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(&b, "              %s\n", s.muted.Render(line))
		}
	}
	fmt.Fprintf(&b, "              %s\n", s.muted.Render("added "+t.CreatedAt.Local().Format("Jan 2, 2006")))
	return b.String()
}

func (s styles) summary(sum query.Summary, shown int, q string) string {
	line := fmt.Sprintf("%d open · %d done", sum.Open, sum.Completed)
	if q != "" {
		line += fmt.Sprintf(" · %d matching %q", shown, q)
	}
	return s.muted.Render(line) + "\n"
}
