package session

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/fabricpack/fabricpack/internal/bin"
	"github.com/fabricpack/fabricpack/internal/engine"
	"github.com/fabricpack/fabricpack/internal/model"
	"github.com/fabricpack/fabricpack/internal/raster"
)

// WireFabric is one fabric entry in a bin specification as received from a
// caller: an opaque external id plus the path (relative to publicDir) of
// its scanned image.
type WireFabric struct {
	ID        string `json:"id"`
	ImagePath string `json:"image_path"`
}

// WireBin is one bin entry in a bin specification: a name plus its
// member fabrics, in the order they should be assigned FabricIDs.
type WireBin struct {
	Name    string       `json:"name"`
	Fabrics []WireFabric `json:"fabrics"`
}

// WireSpec is the top-level shape of a bin specification file: an ordered
// list of bins, matching the wire format's {bins: [{name, fabrics}]} shape.
type WireSpec struct {
	Bins []WireBin `json:"bins"`
}

// highResSuffixes lists the suffixes LoadBins strips from a low-res image
// filename to look for its high-res counterpart in a parallel directory,
// in the order tried.
var highResSuffixes = []string{"_resized", "_tiny"}

// LoadBins reads every fabric image named in binSpec from publicDir,
// registers each as a model.Fabric in a fresh arena (in binSpec order, so
// the resulting FabricIDs are reproducible from the bin specification
// alone), and returns a ready-to-pack Session. If highResDir is non-empty,
// a matching high-res scan is looked up by stripping each configured
// suffix from the low-res filename; a fabric with no high-res match is
// tracked at low-res only.
func LoadBins(publicDir string, binSpec []WireBin, highResDir string, cfg model.PackingConfig) (*Session, error) {
	arena := model.NewArena()
	ub := bin.NewUserFabricBins(arena)

	fabricPaths := make(map[model.FabricID]string)
	var layout []BinSpec

	for _, wb := range binSpec {
		var ids []model.FabricID
		var records []FabricRecord
		for _, wf := range wb.Fabrics {
			fid, rec, err := loadOneFabric(arena, publicDir, highResDir, wf.ImagePath, cfg.SA)
			if err != nil {
				return nil, fmt.Errorf("session: load bin %q fabric %q: %w", wb.Name, wf.ID, err)
			}
			fabricPaths[fid] = wf.ImagePath
			ids = append(ids, fid)
			records = append(records, rec)
		}
		ub.CreateBinFromFabrics(wb.Name, ids)
		layout = append(layout, BinSpec{Name: wb.Name, Fabrics: records})
	}

	core := &engine.Session{
		Arena:    arena,
		Bins:     ub.FabricBins,
		Strategy: cfg.Strategy,
		Config:   cfg,
	}
	return New(core, nil, fabricPaths, layout), nil
}

func loadOneFabric(arena *model.Arena, publicDir, highResDir, imagePath string, sa int) (model.FabricID, FabricRecord, error) {
	lowPath := filepath.Join(publicDir, imagePath)
	w, h, err := raster.Dimensions(lowPath)
	if err != nil {
		return 0, FabricRecord{}, err
	}

	mean, dominant, err := sampleFabricColors(lowPath)
	if err != nil {
		return 0, FabricRecord{}, err
	}

	var hw, hh int
	if highResDir != "" {
		if hrPath, ok := highResCounterpart(highResDir, imagePath); ok {
			hw, hh, err = raster.Dimensions(hrPath)
			if err != nil {
				return 0, FabricRecord{}, err
			}
		}
	}

	fid := model.NewFabric(arena, w, h, hw, hh, sa, mean, dominant)
	rec := FabricRecord{ID: fid, W: w, H: h, HighResW: hw, HighResH: hh, MeanColor: mean, DominantColor: dominant}
	return fid, rec, nil
}

func highResCounterpart(highResDir, imagePath string) (string, bool) {
	base := filepath.Base(imagePath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for _, suffix := range highResSuffixes {
		if !strings.HasSuffix(stem, suffix) {
			continue
		}
		candidate := filepath.Join(highResDir, strings.TrimSuffix(stem, suffix)+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// sampleFabricColors reads path's mean and dominant color so a fabric
// loaded through LoadBins is immediately eligible for
// EstimateNBins/GroupFabrics.
func sampleFabricColors(path string) (mean, dominant color.RGBA, err error) {
	img, err := raster.ReadPNG(path)
	if err != nil {
		return color.RGBA{}, color.RGBA{}, err
	}
	m, d := raster.SampleColors(img)
	return m, d, nil
}
