package worldgen

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/romxai/world-generation-sub000/various"
)

// ExportPng renders the entire world extent to a PNG file at the given
// pixel resolution, using the same palette as the tile renderer.
func (w *World) ExportPng(name string, width, height int, mode DisplayMode) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export size must be positive, got %dx%d", width, height)
	}
	g := w.gen.Load()
	colorFunc := g.displayColorFunc(mode)

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	various.KickOffChunkWorkers(height, func(startRow, endRow int) {
		for py := startRow; py < endRow; py++ {
			wy := (float64(py) + 0.5) / float64(height) * g.cfg.Height
			for px := 0; px < width; px++ {
				wx := (float64(px) + 0.5) / float64(width) * g.cfg.Width
				img.Set(px, py, colorFunc(wx, wy))
			}
		}
	})
	log.Println("Rendered", mode, "export in", time.Since(start).String())

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	return nil
}

// ElevationRange samples the shaped elevation on a coarse grid and
// returns the observed minimum and maximum. Useful for sanity-checking
// shape modifier settings; the engine itself never needs it since all
// fields are clamped to [0,1].
func (w *World) ElevationRange(samples int) (float64, float64) {
	g := w.gen.Load()
	vals := make([]float64, 0, samples*samples)
	for iy := 0; iy < samples; iy++ {
		wy := (float64(iy) + 0.5) / float64(samples) * g.cfg.Height
		for ix := 0; ix < samples; ix++ {
			wx := (float64(ix) + 0.5) / float64(samples) * g.cfg.Width
			vals = append(vals, g.elevationAt(wx, wy))
		}
	}
	return minMax(vals)
}
