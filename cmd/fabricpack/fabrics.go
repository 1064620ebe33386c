package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/session"
)

// fabricListSpec is the wire shape estimate-bins/group read: a flat list of
// fabrics rather than a bin specification, since grouping happens before
// any bin assignment exists.
type fabricListSpec struct {
	Fabrics []session.WireFabric `json:"fabrics"`
}

// loadFlatFabrics reads every fabric named in fabricsPath through
// session.LoadBins (wrapped in a single throwaway bin, since LoadBins is
// the only place that samples an image's size and color summary), then
// unpacks the resulting bin layout back into a flat []model.Fabric for
// engine.EstimateNBins/GroupFabrics, which only need a fabric's dimensions
// and color fields.
func loadFlatFabrics(fabricsPath, publicDir, highResDir string, cfg model.PackingConfig) ([]model.Fabric, error) {
	raw, err := os.ReadFile(fabricsPath)
	if err != nil {
		return nil, fmt.Errorf("fabricpack: read fabric list: %w", err)
	}
	var spec fabricListSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("fabricpack: parse fabric list: %w", err)
	}

	s, err := session.LoadBins(publicDir, []session.WireBin{{Name: "all", Fabrics: spec.Fabrics}}, highResDir, cfg)
	if err != nil {
		return nil, err
	}

	var fabrics []model.Fabric
	for _, bl := range s.BinLayout {
		for _, rec := range bl.Fabrics {
			fabrics = append(fabrics, model.Fabric{
				ID:            rec.ID,
				W:             rec.W,
				H:             rec.H,
				HighResW:      rec.HighResW,
				HighResH:      rec.HighResH,
				MeanColor:     rec.MeanColor,
				DominantColor: rec.DominantColor,
			})
		}
	}
	return fabrics, nil
}

func parseCriterion(s string) (engine.GroupCriterion, error) {
	switch s {
	case "hue":
		return engine.CriterionHue, nil
	case "value":
		return engine.CriterionValue, nil
	case "color":
		return engine.CriterionColor, nil
	default:
		return 0, fmt.Errorf("fabricpack: unknown criterion %q (want hue, value, or color)", s)
	}
}

func parseMode(s string) (engine.GroupMode, error) {
	switch s {
	case "mean":
		return engine.ModeMean, nil
	case "dominant":
		return engine.ModeDominant, nil
	default:
		return 0, fmt.Errorf("fabricpack: unknown mode %q (want mean or dominant)", s)
	}
}
