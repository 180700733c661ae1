// Package manifest renders the passenger manifest as a PDF.
package manifest

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"airplane-seating-cli/model"
)

var (
	columnTitles = []string{"Seat", "Class", "Status", "Passenger"}
	columnWidths = []float64{25, 35, 35, 95}
)

const rowHeight = 7

// Manifest is one printable seat listing.
type Manifest struct {
	Title        string
	GeneratedAt  time.Time
	Seats        []model.SeatSummary
	OccupiedOnly bool
}

// Write renders m as an A4 PDF. The column header repeats on every page.
func Write(w io.Writer, m Manifest) error {
	title := m.Title
	if title == "" {
		title = "Passenger Manifest"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(230, 230, 230)
		for i, heading := range columnTitles {
			pdf.CellFormat(columnWidths[i], rowHeight, heading, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	generated := m.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	occupied, total := 0, 0
	for _, seat := range m.Seats {
		total++
		if seat.Status == model.StatusOccupied {
			occupied++
		}
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s  |  %d of %d seats occupied", generated.Format("2006-01-02 15:04"), occupied, total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, seat := range m.Seats {
		if m.OccupiedOnly && seat.Status != model.StatusOccupied {
			continue
		}
		passenger := seat.PassengerName
		if passenger == "" {
			passenger = "-"
		}
		cells := []string{seat.SeatID, seat.Class.String(), seat.Status, tr(passenger)}
		for i, text := range cells {
			pdf.CellFormat(columnWidths[i], rowHeight, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}
	return nil
}
