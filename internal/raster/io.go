package raster

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

// fileLocks serializes writes per target path so a concurrent reader never
// observes a torn snapshot file; the solver itself performs no I/O, so only
// the strip/composite snapshot writers described here need this.
var fileLocks sync.Map // map[string]*sync.Mutex

func lockFor(path string) *sync.Mutex {
	v, _ := fileLocks.LoadOrStore(path, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// WritePNG atomically (write-then-rename) saves img as a PNG to path,
// serialized per path so overlapping snapshot writes for the same file
// never interleave.
func WritePNG(path string, img image.Image) error {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", tmp, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("raster: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("raster: close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("raster: rename %s: %w", path, err)
	}
	return nil
}

// ReadPNG decodes a PNG fabric scan from path.
func ReadPNG(path string) (image.Image, error) {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s: %w", path, err)
	}
	return img, nil
}

// Dimensions reads a PNG file's size without decoding full pixel data,
// for quickly inventorying a folder of fabric scans.
func Dimensions(path string) (w, h int, err error) {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return 0, 0, fmt.Errorf("raster: decode config %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
