package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Bright ANSI foreground colours used across the terminal output
const (
	ColorRed         = 91
	ColorGreen       = 92
	ColorYellow      = 93
	ColorLightPurple = 94
	ColorPurple      = 95
	ColorCyan        = 96
	ColorLightGray   = 97

	ColorReset = "\033[00m"

	ClearLine      = "\033[2K" // Clear entire line
	ClearScreen    = "\033[2J"
	MoveCursorHome = "\033[H"
)

// Colorize wraps text in the given bright colour.
func Colorize(text string, color int) string {
	return fmt.Sprintf("\033[%dm%s%s", color, text, ColorReset)
}

func Green(text string) string  { return Colorize(text, ColorGreen) }
func Yellow(text string) string { return Colorize(text, ColorYellow) }
func Purple(text string) string { return Colorize(text, ColorPurple) }

// GetDisplayWidth calculates the display width of a string in terminal cells
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with fill up to width display cells. Text already wider is returned as is.
func PadRight(text string, width int, fill string) string {
	w := GetDisplayWidth(text)
	if w >= width || fill == "" {
		return text
	}
	return text + strings.Repeat(fill, width-w)
}

// PadLeft right-aligns text within width display cells.
func PadLeft(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", width-w) + text
}

// Truncate cuts text to at most width display cells.
func Truncate(text string, width int) string {
	return runewidth.Truncate(text, width, "")
}

// ProgressBar renders "<header><left>■■■□□□<right> 42.0%", coloured by how full it is.
func ProgressBar(value, max float64, size int, header string) string {
	if max <= 0 {
		max = 1
	}
	completed := int(value * float64(size) / max)
	if completed > size {
		completed = size
	}
	if completed < 0 {
		completed = 0
	}
	percentage := value * 100 / max

	color := ColorRed
	switch {
	case value < max*0.25:
		color = ColorLightGray
	case value < max*0.5:
		color = ColorGreen
	case value < max*0.75:
		color = ColorYellow
	}

	filled := Colorize(strings.Repeat("■", completed), color)
	empty := Colorize(strings.Repeat("□", size-completed), ColorLightGray)
	perc := Colorize(fmt.Sprintf("%.1f%%", percentage), ColorLightGray)
	return fmt.Sprintf("%s%s%s %s", Colorize(header, color), filled, empty, perc)
}
