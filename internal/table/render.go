package table

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI 256-color codes, graded from deep blue (astronomical) to orange
// (golden hour).
const (
	colorAstronomical = "\033[38;5;19m"
	colorNautical     = "\033[38;5;33m"
	colorCivil        = "\033[38;5;75m"
	colorSolarNoon    = "\033[38;5;226m"
	colorGoldenStart  = "\033[38;5;214m"
	colorHorizon      = "\033[38;5;208m"
	colorGoldenEnd    = "\033[38;5;202m"
	colorBold         = "\033[1m"
	colorReset        = "\033[0m"
)

var eventColors = map[string]string{
	"astronomical-dawn":  colorAstronomical,
	"nautical-dawn":      colorNautical,
	"civil-dawn":         colorCivil,
	"golden-morning":     colorGoldenStart,
	"sunrise":            colorHorizon,
	"golden-morning-end": colorGoldenEnd,
	"solar-noon":         colorSolarNoon,
	"golden-evening":     colorGoldenStart,
	"sunset":             colorHorizon,
	"golden-evening-end": colorGoldenEnd,
	"civil-dusk":         colorCivil,
	"nautical-dusk":      colorNautical,
	"astronomical-dusk":  colorAstronomical,
}

// Columns selects the trailing columns after Angle, Event and Time.
type Columns int

const (
	// RelativeColumns adds a signed countdown to each event.
	RelativeColumns Columns = iota
	// CommuteColumns adds the countdown to departure and the departure time.
	CommuteColumns
)

// Column widths in display cells.
const (
	widthAngle     = 5
	widthEvent     = 30
	widthTime      = 5
	widthRelative  = 6
	widthLeave     = 6
	widthDeparture = 5
)

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Render writes rows as a box-drawn table. Non-occurring events render as
// "--:--" with "N/A" in the countdown column.
func Render(w io.Writer, rows []Row, cols Columns, color bool) error {
	bw := bufio.NewWriter(w)

	widths := []int{widthAngle, widthEvent, widthTime}
	header := []string{"Angle", "Event", "Time"}
	switch cols {
	case CommuteColumns:
		widths = append(widths, widthLeave, widthDeparture)
		header = append(header, "Leave", "Dept")
	default:
		widths = append(widths, widthRelative)
		header = append(header, "Rel.")
	}

	paint := func(code, s string) string {
		if !color || code == "" {
			return s
		}
		return code + s + colorReset
	}

	bw.WriteString(paint(colorBold, border("┌", "┬", "┐", widths)) + "\n")
	bw.WriteString(paint(colorBold, line(header, widths, nil)) + "\n")
	bw.WriteString(paint(colorBold, border("├", "┼", "┤", widths)) + "\n")

	for _, r := range rows {
		cells := rowCells(r, cols)
		rightAlign := make([]bool, len(cells))
		for i := 3; i < len(cells); i++ {
			rightAlign[i] = true
		}

		code := eventColors[r.Event.Name]
		for i, c := range cells {
			cells[i] = paint(code, pad(c, widths[i], rightAlign[i]))
		}
		bw.WriteString("│ " + strings.Join(cells, " │ ") + " │\n")
	}

	bw.WriteString(paint(colorBold, border("└", "┴", "┘", widths)) + "\n")
	return bw.Flush()
}

func rowCells(r Row, cols Columns) []string {
	angle := FormatAngle(r.Event.SunAngle)
	if r.Event.Noon {
		angle = "--"
	}

	cells := []string{angle, r.Event.Label}
	if !r.Result.Occurs {
		cells = append(cells, "--:--", "N/A")
		if cols == CommuteColumns {
			cells = append(cells, "--:--")
		}
		return cells
	}

	cells = append(cells, FormatHHMM(r.Result.Hours))
	switch cols {
	case CommuteColumns:
		dept := FormatHHMM(r.Departure)
		if r.Past() {
			dept = "PAST"
		}
		cells = append(cells, FormatSignedHHMM(r.Leave), dept)
	default:
		cells = append(cells, FormatSignedHHMM(r.Relative))
	}
	return cells
}

func border(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right
}

func line(cells []string, widths []int, rightAlign []bool) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		right := rightAlign != nil && rightAlign[i]
		out[i] = pad(c, widths[i], right)
	}
	return "│ " + strings.Join(out, " │ ") + " │"
}

// pad fills s to width display cells, counting runes rather than bytes.
func pad(s string, width int, right bool) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	fill := strings.Repeat(" ", width-n)
	if right {
		return fill + s
	}
	return s + fill
}
