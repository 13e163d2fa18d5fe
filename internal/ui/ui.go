// Package ui renders editor output in the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// UI writes colored text to a writer.
type UI struct {
	writer   io.Writer
	useColor bool
}

// NewUI returns a UI. useColor forces color on or off regardless of the
// terminal.
func NewUI(w io.Writer, useColor bool) *UI {
	return &UI{writer: w, useColor: useColor}
}

// Writer returns the underlying writer.
func (u *UI) Writer() io.Writer {
	return u.writer
}

func (u *UI) style(attrs ...color.Attribute) *color.Color {
	return u.apply(color.New(attrs...))
}

func (u *UI) apply(c *color.Color) *color.Color {
	if u.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Println writes a plain line.
func (u *UI) Println(message string) {
	fmt.Fprintln(u.writer, message)
}

// Printf writes formatted plain text.
func (u *UI) Printf(format string, args ...interface{}) {
	fmt.Fprintf(u.writer, format, args...)
}

// Error writes an error line.
func (u *UI) Error(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.style(color.FgRed, color.Bold).Sprint("!"), u.style(color.FgHiRed).Sprint(message))
}

// Success writes a confirmation line.
func (u *UI) Success(message string) {
	fmt.Fprintln(u.writer, u.style(color.FgHiGreen).Sprint(message))
}

// Warning writes a warning line.
func (u *UI) Warning(message string) {
	fmt.Fprintf(u.writer, "%s %s\n", u.style(color.FgYellow, color.Bold).Sprint("?"), u.style(color.FgHiYellow).Sprint(message))
}

// Info writes a dimmed line.
func (u *UI) Info(message string) {
	fmt.Fprintln(u.writer, u.style(color.FgHiBlack).Sprint(message))
}

// Prompt returns the REPL prompt, prefixed by the user when logged in.
func (u *UI) Prompt(user string) string {
	var sb strings.Builder
	if user != "" {
		sb.WriteString(u.style(color.FgHiBlue).Sprint(user))
		sb.WriteString(" ")
	}
	sb.WriteString(u.style(color.FgGreen).Sprint("> "))
	return sb.String()
}

// ReadPassword prompts and reads a line from stdin without echo.
func (u *UI) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(u.writer, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(u.writer)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// Swatch returns a block painted in a #rrggbb color. Unparseable colors
// are printed as-is.
func (u *UI) Swatch(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "●"
	}
	return u.apply(color.RGB(r, g, b)).Sprint("●")
}

func parseHex(hex string) (int, int, int, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// Table prints a simple aligned table.
func (u *UI) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	subtle := u.style(color.FgHiBlack)
	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	fmt.Fprintln(u.writer, subtle.Sprint(strings.TrimRight(headerLine, " ")))
	fmt.Fprintln(u.writer, subtle.Sprint(strings.TrimRight(sepLine, " ")))

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(u.writer, strings.TrimRight(line, " "))
	}
}
