package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// gradient is a run of colours blended in HCL space.
type gradient []colorful.Color

func newGradient(steps int, from, to lipgloss.Color) gradient {
	start, end := parseColor(from), parseColor(to)
	if steps < 2 {
		return gradient{start}
	}
	g := make(gradient, steps)
	for i := range g {
		g[i] = start.BlendHcl(end, float64(i)/float64(steps-1)).Clamped()
	}
	return g
}

func (g gradient) style(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(g[i].Hex()))
}

// parseColor reads a #rrggbb colour. ANSI palette indices have no RGB value
// here and map to mid gray.
func parseColor(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
}

// GradientTitle renders text in bold, colouring each grapheme cluster along
// the gradient from -> to.
func GradientTitle(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}

	g := newGradient(len(clusters), from, to)
	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(g.style(i).Bold(true).Render(cluster))
	}
	return b.String()
}

// GradientFill renders n copies of cell whose colour runs from one end of
// the gradient towards the other in proportion to n/total. A partly filled
// bar therefore keeps its colours when it grows.
func GradientFill(cell string, n, total int, from, to lipgloss.Color) string {
	if n <= 0 || total <= 0 {
		return ""
	}
	g := newGradient(total, from, to)
	var b strings.Builder
	for i := range min(n, total) {
		b.WriteString(g.style(i).Render(cell))
	}
	return b.String()
}
