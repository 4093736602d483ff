package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	minBarWidth         = 10
	terminalWidthBackup = 80
)

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// WeeklyUsagePlot renders the seven-day usage counts as horizontal bars, one
// line per weekday. A non-positive width uses the terminal width.
func WeeklyUsagePlot(w io.Writer, weekly []int, width int) error {
	if width <= 0 {
		width = terminalWidth()
	}
	// "Sun " prefix plus " 999" count suffix.
	barWidth := width - 8
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	maxCount := 0
	for _, count := range weekly {
		if count > maxCount {
			maxCount = count
		}
	}

	for i, label := range weekdayLabels {
		count := 0
		if i < len(weekly) {
			count = weekly[i]
		}
		bar := ""
		if maxCount > 0 && count > 0 {
			n := int(math.Round(float64(count) / float64(maxCount) * float64(barWidth)))
			if n < 1 {
				n = 1
			}
			bar = strings.Repeat("█", n)
		}
		if _, err := fmt.Fprintf(w, "%s %s %d\n", label, bar, count); err != nil {
			return err
		}
	}
	return nil
}

// Sparkline renders a compact single-line chart of the values, downsampled
// to at most width cells.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := maxVal - minVal
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - minVal) / span * float64(len(sparkRunes)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
