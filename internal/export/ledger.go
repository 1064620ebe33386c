package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/session"
)

const ledgerSheet = "Consumption"

// ExportLedger writes a per-fabric consumption ledger workbook for s: one
// row per fabric naming its source bin, its raster size, and either the
// step it was consumed at or "unused" if no committed step claimed it yet.
func ExportLedger(path string, s *session.Session) error {
	consumedAt := make(map[model.FabricID]int)
	for _, step := range s.Steps() {
		for _, eid := range step.Option.EdgeSubset {
			fid := s.Core.Arena.Edge(eid).Fabric
			consumedAt[fid] = step.Iter
		}
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), ledgerSheet)

	headers := []string{"Fabric ID", "Bin", "Source Image", "Width (px)", "Height (px)", "Status", "Consumed At Step"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(ledgerSheet, cell, h)
	}

	row := 2
	for _, bl := range s.BinLayout {
		for _, rec := range bl.Fabrics {
			status := "unused"
			stepLabel := ""
			if iter, ok := consumedAt[rec.ID]; ok {
				status = "consumed"
				stepLabel = fmt.Sprintf("%d", iter)
			}
			values := []interface{}{
				int(rec.ID), bl.Name, s.FabricPaths[rec.ID], rec.W, rec.H, status, stepLabel,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				f.SetCellValue(ledgerSheet, cell, v)
			}
			row++
		}
	}

	return f.SaveAs(path)
}
