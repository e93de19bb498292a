// Package term colours unified diff output for terminals
package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color modes accepted by --color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Modes lists the accepted colour modes
var Modes = []string{ColorAuto, ColorAlways, ColorNever}

// Painter renders diff lines with a renderer bound to one output writer
type Painter struct {
	enabled bool

	plain  lipgloss.Style
	header lipgloss.Style
	hunk   lipgloss.Style
	del    lipgloss.Style
	add    lipgloss.Style
}

// New returns a Painter for w. auto defers to terminal detection on w
func New(w io.Writer, mode string) *Painter {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Painter{
		enabled: r.ColorProfile() != termenv.Ascii,
		plain:   base,
		header:  base.Bold(true),
		hunk:    base.Foreground(lipgloss.Color("6")),
		del:     base.Foreground(lipgloss.Color("1")),
		add:     base.Foreground(lipgloss.Color("2")),
	}
}

// Enabled reports whether the painter emits escape sequences
func (p *Painter) Enabled() bool { return p.enabled }

// Diff colours each line of a unified diff by its prefix, keeping line endings intact
func (p *Painter) Diff(diff string) string {
	if !p.enabled || diff == "" {
		return diff
	}
	var b strings.Builder
	b.Grow(len(diff) + len(diff)/4)
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		eol := line[len(body):]
		if body == "" {
			b.WriteString(eol)
			continue
		}
		b.WriteString(p.style(body).Render(body))
		b.WriteString(eol)
	}
	return b.String()
}

func (p *Painter) style(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return p.header
	case strings.HasPrefix(line, "@@"):
		return p.hunk
	case strings.HasPrefix(line, "-"):
		return p.del
	case strings.HasPrefix(line, "+"):
		return p.add
	}
	return p.plain
}
