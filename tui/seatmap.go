package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"airplane-seating-cli/model"
)

const cellWidth = 3

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleOccupied  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	sectionStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

// renderSeatMap draws the cabin row by row with aisle gaps left blank.
func renderSeatMap(seats []model.SeatSummary) string {
	if len(seats) == 0 {
		return "No seat data."
	}

	type key struct {
		row int
		col string
	}
	byPos := make(map[key]model.SeatSummary, len(seats))
	available, occupied := 0, 0
	for _, seat := range seats {
		byPos[key{seat.Row, seat.Column}] = seat
		if seat.Status == model.StatusOccupied {
			occupied++
		} else {
			available++
		}
	}

	var b strings.Builder
	b.WriteString("    ")
	for i := 0; i < len(model.CabinColumns); i++ {
		b.WriteString(padCell(string(model.CabinColumns[i]), cellWidth))
	}
	b.WriteString("\n")

	for _, section := range model.CabinLayout() {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("%s Class", section.Class)))
		b.WriteString("\n")
		for row := section.FirstRow; row <= section.LastRow; row++ {
			b.WriteString(fmt.Sprintf("%3d ", row))
			for i := 0; i < len(model.CabinColumns); i++ {
				seat, ok := byPos[key{row, string(model.CabinColumns[i])}]
				if !ok {
					b.WriteString(padCell("", cellWidth))
					continue
				}
				if seat.Status == model.StatusOccupied {
					b.WriteString(seatStyleOccupied.Render(padCell("XX", cellWidth)))
				} else {
					b.WriteString(seatStyleAvailable.Render(padCell("[]", cellWidth)))
				}
			}
			b.WriteString("\n")
		}
	}

	legend := "Legend: [] available • XX occupied • gaps are aisles"
	counts := fmt.Sprintf("Available: %d • Occupied: %d • Total: %d", available, occupied, len(seats))
	return b.String() + "\n" + hint(legend) + "\n" + hint(counts)
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
