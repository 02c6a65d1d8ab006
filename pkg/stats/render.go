package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render writes the report as a bordered two-column summary. Colour is only
// emitted when w is a terminal.
func Render(w io.Writer, r Report) error {
	re := lipgloss.NewRenderer(w)

	title := re.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF00FF")).
		MarginBottom(1)
	label := re.NewStyle().
		Foreground(lipgloss.Color("#00FFFF")).
		Width(20)
	value := re.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF"))
	box := re.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#00FF00")).
		Padding(0, 1)

	lines := []struct{ k, v string }{
		{"Total users", fmt.Sprintf("%d", r.Users)},
		{"Skipped rows", fmt.Sprintf("%d", r.SkippedRows)},
		{"Unique countries", fmt.Sprintf("%d", r.Countries)},
		{"Subscription types", joinOrDash(r.SubscriptionTypes)},
		{"Devices", joinOrDash(r.Devices)},
		{"Relationships", fmt.Sprintf("%d", r.Relationships)},
		{"Out-degree", fmt.Sprintf("min %d / mean %.2f / max %d", r.Degrees.MinOutDegree, r.Degrees.MeanOutDegree, r.Degrees.MaxOutDegree)},
		{"Following nobody", fmt.Sprintf("%d", r.Degrees.Isolated)},
	}

	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(l.k), value.Render(l.v)))
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		title.Render("Dataset statistics"),
		box.Render(strings.Join(rows, "\n")),
	)
	_, err := fmt.Fprintln(w, out)
	return err
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
