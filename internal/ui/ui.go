// Package ui renders user-facing status lines: successes, notes, warnings
// and errors. Colour is used only when writing to a terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Colours, as ANSI 256 codes.
const (
	ColorGreen  = "42"
	ColorYellow = "220"
	ColorRed    = "196"
	ColorGray   = "245"
)

// Styles holds the styles used for each kind of line.
type Styles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns coloured styles bound to w's renderer.
func DefaultStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Info:    r.NewStyle(),
		Warning: r.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Dim:     r.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Success: lipgloss.NewStyle(),
		Info:    lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}
}

// Printer writes styled status lines.
type Printer struct {
	out    io.Writer
	styles Styles
}

// New returns a Printer for w. Colour is enabled only when w is a terminal,
// noColor is false and NO_COLOR is unset.
func New(w io.Writer, noColor bool) *Printer {
	styles := NoColorStyles()
	if !noColor && !DetectNoColor() && IsTTY(w) {
		styles = DefaultStyles(w)
	}
	return &Printer{out: w, styles: styles}
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.styles.Success, "✓", format, args...)
}

// Info prints a plain indented line.
func (p *Printer) Info(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, "  "+p.styles.Info.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.styles.Warning, "!", format, args...)
}

// Error prints an error line.
func (p *Printer) Error(format string, args ...any) {
	p.line(p.styles.Error, "✗", format, args...)
}

// Detail prints a dimmed, further indented line.
func (p *Printer) Detail(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, "    "+p.styles.Dim.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) line(style lipgloss.Style, icon, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(p.out, "%s %s\n", style.Render(icon), style.Render(msg))
}

// IsTTY checks if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
