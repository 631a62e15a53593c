// Package render owns terminal styling: catalog label colors and the
// status glyphs used by the CLI and the debug log.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Catalog color names mapped to ANSI palette indexes.
var colorCodes = map[string]string{
	"red":         "1",
	"green":       "2",
	"yellow":      "3",
	"blue":        "4",
	"magenta":     "5",
	"cyan":        "6",
	"gray":        "8",
	"lightRed":    "9",
	"lightGreen":  "10",
	"lightYellow": "11",
	"lightBlue":   "12",
	"lightCyan":   "14",
}

// Palette renders styled strings for one output stream.
type Palette struct {
	r *lipgloss.Renderer
}

// New creates a Palette for w. Color is detected from w unless noColor is set.
func New(w io.Writer, noColor bool) *Palette {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Palette{r: r}
}

// NewWithProfile creates a Palette with a fixed color profile.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Palette {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Palette{r: r}
}

// Label renders text in a catalog color. Unknown or empty colors render
// the text unstyled.
func (p *Palette) Label(text, color string) string {
	code, ok := colorCodes[color]
	if !ok {
		return text
	}
	return p.fg(code).Render(text)
}

// Success renders the success glyph.
func (p *Palette) Success() string { return p.fg("2").Render("✓") }

// Warning renders the warning glyph.
func (p *Palette) Warning() string { return p.fg("3").Render("⚠") }

// Failure renders the failure glyph.
func (p *Palette) Failure() string { return p.fg("1").Render("✖") }

// Progress renders the progress glyph.
func (p *Palette) Progress() string { return p.fg("4").Render("→") }

// Tag renders a bracketed tag such as [DEBUG].
func (p *Palette) Tag(tag string) string { return p.fg("6").Render("[" + tag + "]") }

// Muted renders secondary text such as timestamps.
func (p *Palette) Muted(text string) string { return p.fg("8").Render(text) }

// Emphasis renders highlighted text such as section titles.
func (p *Palette) Emphasis(text string) string { return p.fg("6").Render(text) }

func (p *Palette) fg(code string) lipgloss.Style {
	return p.r.NewStyle().Foreground(lipgloss.Color(code))
}

// KnownColor reports whether color is a recognized catalog color.
func KnownColor(color string) bool {
	_, ok := colorCodes[color]
	return ok
}

// Width returns the visible width of s, ignoring escape sequences.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// PadRight pads styled text with spaces to a visible width.
func PadRight(s string, width int) string {
	if w := Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
