// Package styles holds the shared lipgloss palette and the gradient helpers
// used by the banner.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	Primary = lipgloss.Color("#9ece6a") // moss
	Accent  = lipgloss.Color("#7dcfff") // mist
	Fg      = lipgloss.Color("#dddddd")
	FgMuted = lipgloss.Color("#7f7f7f")
	ErrRed  = lipgloss.Color("#bf5d47")

	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Subtitle = lipgloss.NewStyle().Foreground(FgMuted)
	Body     = lipgloss.NewStyle().Foreground(Fg)
	Muted    = lipgloss.NewStyle().Foreground(FgMuted)
	Error    = lipgloss.NewStyle().Foreground(ErrRed).Bold(true)
)

// Banner renders the app name followed by a gradient pattern line filling
// the given width.
func Banner(label string, width int) string {
	styled := Title.Render(label)
	avail := width - lipgloss.Width(styled)
	line := ""
	if avail > 2 {
		repeat := (avail - 2) / 2
		if repeat > 0 {
			line = " " + strings.Repeat("⁘⁙", repeat) + "⁘"
		}
	}
	line = ApplyGradient(line, Primary, Accent)
	return lipgloss.JoinHorizontal(lipgloss.Top, styled, line)
}

// ApplyGradient colors text with a Lab-space blend from one color to the
// other, falling back to a solid foreground on terminals without TrueColor.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	rs := []rune(text)
	n := len(rs)
	if n == 0 {
		return ""
	}

	if termenv.ColorProfile() != termenv.TrueColor {
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	c1, _ := colorful.Hex(string(from))
	c2, _ := colorful.Hex(string(to))
	var out strings.Builder
	for i, r := range rs {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := c1.BlendLab(c2, t)
		hex := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255), uint8(c.G*255), uint8(c.B*255)))
		out.WriteString(lipgloss.NewStyle().Foreground(hex).Bold(true).Render(string(r)))
	}
	return out.String()
}
