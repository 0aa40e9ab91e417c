package render

import (
	"fmt"
	"time"

	"github.com/almas-industries/techplan/pkg/core/views"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

const (
	dateTimeLayout = "02.01.2006 15:04"
	timeLayout     = "15:04"
	dayLayout      = "Mon 02.01."

	// Placeholder printed for absent values
	Placeholder = "-"
)

// Style controls how values are printed
type Style struct {
	Color    bool
	Location *time.Location
}

func (s Style) paint(code, text string) string {
	if !s.Color {
		return text
	}
	return code + text + colorReset
}

// padPaint pads text to width before colouring so escape codes don't break alignment
func (s Style) padPaint(code string, width int, text string) string {
	return s.paint(code, fmt.Sprintf("%-*s", width, truncate(text, width)))
}

func (s Style) tone(t views.Tone, width int, text string) string {
	return s.padPaint(toneColor(t), width, text)
}

func (s Style) in(t time.Time) time.Time {
	if s.Location == nil {
		return t
	}
	return t.In(s.Location)
}

func (s Style) dateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return s.in(*t).Format(dateTimeLayout)
}

func (s Style) clock(t time.Time) string {
	return s.in(t).Format(timeLayout)
}

func toneColor(t views.Tone) string {
	switch t {
	case views.ToneSuccess:
		return colorGreen
	case views.ToneDanger:
		return colorRed
	case views.ToneWarning:
		return colorYellow
	case views.ToneInfo:
		return colorBlue
	default:
		return ""
	}
}

// truncate shortens text to width runes, marking the cut with a trailing dot
func truncate(text string, width int) string {
	r := []rune(text)
	if width <= 0 || len(r) <= width {
		return text
	}
	if width == 1 {
		return string(r[:1])
	}
	return string(r[:width-1]) + "."
}
