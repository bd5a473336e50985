package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanshika/flowpath/internal/domain"
)

var (
	primary   = lipgloss.Color("#7C3AED") // Purple
	secondary = lipgloss.Color("#10B981") // Green
	muted     = lipgloss.Color("#6B7280") // Gray
	warning   = lipgloss.Color("#F59E0B") // Amber
	white     = lipgloss.Color("#FFFFFF")
)

// theme binds styles to one output so colour is only emitted to terminals.
type theme struct {
	badge     lipgloss.Style
	endpoint  lipgloss.Style
	connector lipgloss.Style
	summary   lipgloss.Style
	notice    lipgloss.Style
	heading   lipgloss.Style
	value     lipgloss.Style
}

func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		badge:     r.NewStyle().Padding(0, 1).Background(primary).Foreground(white),
		endpoint:  r.NewStyle().Padding(0, 1).Background(secondary).Foreground(white).Bold(true),
		connector: r.NewStyle().Foreground(muted),
		summary:   r.NewStyle().Foreground(muted).Italic(true),
		notice:    r.NewStyle().Foreground(warning).Bold(true),
		heading:   r.NewStyle().Bold(true).Foreground(primary),
		value:     r.NewStyle().Foreground(muted),
	}
}

type pathJSON struct {
	Status   domain.PathStatus `json:"status"`
	Message  string            `json:"message,omitempty"`
	Path     []string          `json:"path,omitempty"`
	NodeIDs  []string          `json:"nodeIds,omitempty"`
	Hops     *int              `json:"hops,omitempty"`
	Distance *float64          `json:"distance,omitempty"`
}

func renderPath(w io.Writer, format string, outcome domain.PathOutcome) error {
	if format == outputJSON {
		payload := pathJSON{Status: outcome.Status}
		if outcome.Found() {
			payload.Path = outcome.Labels()
			payload.NodeIDs = outcome.NodeIDs()
			hops, distance := outcome.Hops(), outcome.Distance
			payload.Hops = &hops
			payload.Distance = &distance
		} else {
			payload.Message = "No path found"
		}
		return writeJSON(w, payload)
	}

	t := newTheme(w)
	if !outcome.Found() {
		_, err := fmt.Fprintln(w, t.notice.Render("No path found"))
		return err
	}

	labels := outcome.Labels()
	badges := make([]string, 0, len(labels))
	for i, label := range labels {
		style := t.badge
		if i == 0 || i == len(labels)-1 {
			style = t.endpoint
		}
		badges = append(badges, style.Render(label))
	}
	line := strings.Join(badges, t.connector.Render(" -> "))
	summary := t.summary.Render(fmt.Sprintf("distance %s, %d hops", formatWeight(outcome.Distance), outcome.Hops()))

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, line, summary))
	return err
}

type optionJSON struct {
	Value string `json:"value"`
	Text  string `json:"text"`
}

type optionsJSON struct {
	Start []optionJSON `json:"start"`
	End   []optionJSON `json:"end"`
}

func toOptionJSON(opts []domain.NodeOption) []optionJSON {
	out := make([]optionJSON, 0, len(opts))
	for _, o := range opts {
		out = append(out, optionJSON{Value: o.Value, Text: o.Text})
	}
	return out
}

func renderOptions(w io.Writer, format string, choices domain.NodeChoices) error {
	if format == outputJSON {
		return writeJSON(w, optionsJSON{Start: toOptionJSON(choices.Start), End: toOptionJSON(choices.End)})
	}

	t := newTheme(w)
	var b strings.Builder
	writeGroup := func(title string, opts []domain.NodeOption) {
		b.WriteString(t.heading.Render(title))
		b.WriteByte('\n')
		for _, o := range opts {
			fmt.Fprintf(&b, "  %s %s\n", o.Text, t.value.Render("("+o.Value+")"))
		}
	}
	writeGroup("Start", choices.Start)
	writeGroup("End", choices.End)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
