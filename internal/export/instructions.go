// Package export renders a completed packing session to downloadable
// artifacts: a one-page cutting-instructions PDF and a per-fabric
// consumption ledger workbook.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/session"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// ExportInstructions renders s's committed step sequence as a
// one-page cutting-instructions sheet: attach-side order, thickness per
// strip, and the final composite dimensions.
func ExportInstructions(path string, s *session.Session) error {
	steps := s.Steps()
	if len(steps) == 0 {
		return fmt.Errorf("export: no steps to report")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Instructions", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+11)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5,
		fmt.Sprintf("Strategy: %s  |  Session: %s", s.Core.Strategy, s.ID), "", 0, "L", false, 0, "")

	y := marginTop + 20

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	colWidths := []float64{20, 30, 35, 40, 60}
	headers := []string{"Step", "Side", "Thickness", "Edges Used", "Composite After"}
	xPos := marginLeft
	for i, h := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, step := range steps {
		side, err := engine.AttachSide(step.Strategy, step.Iter)
		if err != nil {
			side = 0
		}
		row := []string{
			fmt.Sprintf("%d", step.Iter),
			side.String(),
			fmt.Sprintf("%d px", step.Option.ShortestSide),
			fmt.Sprintf("%d", len(step.Option.EdgeSubset)),
			fmt.Sprintf("%d x %d px", step.NewSize.W, step.NewSize.H),
		}
		xPos = marginLeft
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7,
		fmt.Sprintf("Final composite: %d x %d px", s.Core.Composite.W, s.Core.Composite.H),
		"", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by fabricpack", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
