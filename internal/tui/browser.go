package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/numtrace/internal/experiment"
	"github.com/san-kum/numtrace/internal/export"
	"github.com/san-kum/numtrace/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const playInterval = 400 * time.Millisecond

type record struct {
	labels []string
	values []string
}

// Browser steps through the records of one run.
type Browser struct {
	title   string
	footer  string
	records []record
	series  []float64
	label   string

	cursor  int
	playing bool
	width   int
	height  int
}

func columns[S any](steps []S, cols []export.Column[S], digits int) []record {
	out := make([]record, len(steps))
	for i, s := range steps {
		r := record{labels: make([]string, len(cols)), values: make([]string, len(cols))}
		for j, c := range cols {
			r.labels[j] = c.Title
			v := c.Value(s)
			if c.Integer {
				r.values[j] = strconv.Itoa(int(v))
			} else {
				r.values[j] = export.FormatValue(v, digits)
			}
		}
		out[i] = r
	}
	return out
}

func NewBrowser(res *experiment.Result, digits int) Browser {
	b := Browser{
		title:  fmt.Sprintf("%s  f = %s", res.Method, res.Function),
		width:  80,
		height: 24,
	}

	switch {
	case res.ODE != nil:
		b.records = columns(res.ODE.Steps, export.ODEColumns(res.ODE.Method), digits)
		b.series = res.ODE.Ys()
		b.label = "y"
		b.footer = fmt.Sprintf("h = %g", res.ODE.H)
	case res.Root != nil:
		b.records = columns(res.Root.Steps, export.RootColumns(), digits)
		for _, e := range res.Root.Errors() {
			if e > 0 {
				e = math.Log10(e)
			}
			b.series = append(b.series, e)
		}
		b.label = "log10 error"
		b.footer = "f'(x) = " + res.Derivative
		if res.Root.Converged {
			b.footer += "  " + green.Render("converged")
		} else {
			b.footer += "  " + yellow.Render("not converged")
		}
	}
	return b
}

func (b Browser) Cursor() int { return b.cursor }

func (b Browser) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
	case tickMsg:
		if !b.playing {
			return b, nil
		}
		if b.cursor >= len(b.records)-1 {
			b.playing = false
			return b, nil
		}
		b.cursor++
		return b, tick()
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	last := max(len(b.records)-1, 0)

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return b, tea.Quit
	case "right", "l", "n":
		b.cursor = min(b.cursor+1, last)
	case "left", "h", "p":
		b.cursor = max(b.cursor-1, 0)
	case "home", "g":
		b.cursor = 0
	case "end", "G":
		b.cursor = last
	case " ":
		b.playing = !b.playing
		if b.playing {
			return b, tick()
		}
	}
	return b, nil
}

func (b Browser) View() string {
	var sb strings.Builder

	sb.WriteString(viz.Title.Render(b.title))
	sb.WriteString("\n")
	sb.WriteString(viz.Separator(min(b.width, 60)))
	sb.WriteString("\n\n")

	if len(b.records) == 0 {
		sb.WriteString(dim.Render("empty trace"))
		sb.WriteString("\n\n")
		sb.WriteString(viz.KeyHint.Render("q quit"))
		return sb.String()
	}

	sb.WriteString(cyan.Render(fmt.Sprintf("record %d/%d", b.cursor+1, len(b.records))))
	if b.playing {
		sb.WriteString(dim.Render("  ▶ playing"))
	}
	sb.WriteString("\n\n")

	r := b.records[b.cursor]
	width := 0
	for _, l := range r.labels {
		width = max(width, len(l))
	}
	for i, l := range r.labels {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", dim.Render(fmt.Sprintf("%-*s", width, l)), white.Render(r.values[i])))
	}

	sb.WriteString("\n")
	sb.WriteString(dim.Render(b.label + "  "))
	sb.WriteString(viz.SparklineChart(b.series[:b.cursor+1], min(b.width-16, 60)))
	sb.WriteString("\n\n")
	sb.WriteString(b.footer)
	sb.WriteString("\n\n")
	sb.WriteString(viz.KeyHint.Render("←/→ step  home/end jump  space play  q quit"))
	return sb.String()
}

// RunBrowser opens the browser on the alternate screen until the user quits.
func RunBrowser(res *experiment.Result, digits int) error {
	p := tea.NewProgram(NewBrowser(res, digits), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
