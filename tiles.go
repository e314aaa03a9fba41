package worldgen

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"github.com/davvo/mercator"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"
	geojson "github.com/paulmach/go.geojson"

	"github.com/romxai/world-generation-sub000/various"
)

const tileSize = 256

// MaxZoom bounds the accepted slippy-map zoom levels. Beyond it the
// 1<<zoom tile count overflows and the sampling strides degenerate.
const MaxZoom = 30

func clampZoom(zoom int) int {
	if zoom < 0 {
		return 0
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// GetTile renders the slippy-map tile at the given coordinates and zoom
// level for one display mode. The world extent is mapped onto the full
// lat/lon range, so zoom 0 shows the whole world in one tile. Rendering
// fans the pixel rows out over workers; this is safe because every
// query is read-only. Zoom levels outside [0, MaxZoom] are clamped.
func (w *World) GetTile(x, y, zoom int, mode DisplayMode) image.Image {
	g := w.gen.Load()
	colorFunc := g.displayColorFunc(mode)

	zoom = clampZoom(zoom)
	x, y = wrapTileCoordinates(x, y, zoom)
	tbb := newTileBoundingBox(x, y, zoom)

	dest := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	various.KickOffChunkWorkers(tileSize, func(startRow, endRow int) {
		for py := startRow; py < endRow; py++ {
			for px := 0; px < tileSize; px++ {
				lat, lon := tbb.pixelToLatLon(float64(px), float64(py))
				wx, wy := g.latLonToWorld(lat, lon)
				dest.Set(px, py, colorFunc(wx, wy))
			}
		}
	})

	if mode == DisplayResource {
		g.drawDeposits(dest, tbb, zoom)
	}
	return dest
}

// displayColorFunc returns the per-coordinate color function for a
// display mode. Biomes use a fixed palette; scalar fields use a color
// gradient; water shows as blue shades in elevation mode.
func (g *generators) displayColorFunc(mode DisplayMode) func(wx, wy float64) color.Color {
	switch mode {
	case DisplayBiome:
		return func(wx, wy float64) color.Color {
			return biomeColor(g.biomeAt(wx, wy))
		}
	case DisplayElevation:
		grad := elevationGradient()
		return func(wx, wy float64) color.Color {
			elevation := g.elevationAt(wx, wy)
			if elevation < g.cfg.Biomes.ShallowWater {
				return genBlue(elevation / g.cfg.Biomes.ShallowWater)
			}
			return genColor(grad.At(elevation), 1)
		}
	case DisplayResource:
		return func(wx, wy float64) color.Color {
			// Dim biome backdrop, so deposit markers stand out.
			return genShaded(biomeColor(g.biomeAt(wx, wy)), 0.5)
		}
	default:
		grad := scalarGradient()
		return func(wx, wy float64) color.Color {
			v, err := g.displayValue(mode, wx, wy)
			if err != nil {
				return color.Black
			}
			return genColor(grad.At(v), 1)
		}
	}
}

// drawDeposits samples a world-aligned grid across the tile at a
// zoom-dependent stride and draws a circle per deposit, scaled by
// deposit size. Sampling in world units keeps the markers in place
// across zoom levels instead of swimming with the pixel grid.
func (g *generators) drawDeposits(dest *image.RGBA, tbb tileBoundingBox, zoom int) {
	gc := draw2dimg.NewGraphicContext(dest)
	gc.SetLineWidth(1)

	la1, lo1 := tbb.pixelToLatLon(0, 0)
	la2, lo2 := tbb.pixelToLatLon(tileSize, tileSize)
	wx1, wy1 := g.latLonToWorld(la1, lo1)
	wx2, wy2 := g.latLonToWorld(la2, lo2)

	// One sample per 8 tile pixels, snapped to the world grid.
	step := g.cfg.Width / float64(sizeFromZoom(zoom)) * 8
	for wy := math.Floor(wy1/step) * step; wy < wy2+step; wy += step {
		for wx := math.Floor(wx1/step) * step; wx < wx2+step; wx += step {
			elevation := g.elevationAt(wx, wy)
			moisture := g.moistureAt(wx, wy)
			temperature := g.climate.CalculateTemperature(wx, wy, elevation)
			biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
			dep := g.resourceAt(wx, wy, biome, elevation, moisture, temperature)
			if dep == nil {
				continue
			}
			lat, lon := g.worldToLatLon(wx, wy)
			apx, apy := latLonToPixels(lat, lon, zoom)
			px, py := apx-tbb.x1, apy-tbb.y1
			if px < 0 || px >= tileSize || py < 0 || py >= tileSize {
				continue
			}
			r := 1.5 + float64(dep.Size)*0.35
			gc.SetFillColor(resourceColor(dep.Kind))
			gc.SetStrokeColor(color.NRGBA{0, 0, 0, 255})
			gc.BeginPath()
			gc.ArcTo(px, py, r, r, 0, 2*math.Pi)
			gc.Close()
			gc.FillStroke()
		}
	}
}

// GetGeoJSONResources returns the resource deposits within the given
// lat/lon bounding box as a GeoJSON feature collection. The box is
// sampled at a zoom-derived stride, so lower zoom levels return a
// coarser selection of deposits.
func (w *World) GetGeoJSONResources(la1, lo1, la2, lo2 float64, zoom int) ([]byte, error) {
	if zoom < 0 || zoom > MaxZoom {
		return nil, fmt.Errorf("zoom must be in [0,%d], got %d", MaxZoom, zoom)
	}
	g := w.gen.Load()
	if la1 > la2 {
		la1, la2 = la2, la1
	}
	if lo1 > lo2 {
		lo1, lo2 = lo2, lo1
	}
	la1, lo1 = limitLatLon(la1, lo1)
	la2, lo2 = limitLatLon(la2, lo2)

	// Sample roughly one point per 8 tile pixels at this zoom.
	step := 360.0 / float64(sizeFromZoom(zoom)) * 8

	fc := geojson.NewFeatureCollection()
	for lat := la1; lat <= la2; lat += step {
		for lon := lo1; lon <= lo2; lon += step {
			wx, wy := g.latLonToWorld(lat, lon)
			elevation := g.elevationAt(wx, wy)
			moisture := g.moistureAt(wx, wy)
			temperature := g.climate.CalculateTemperature(wx, wy, elevation)
			biome := classifyBiome(elevation, moisture, temperature, g.cfg.Biomes)
			dep := g.resourceAt(wx, wy, biome, elevation, moisture, temperature)
			if dep == nil {
				continue
			}
			f := geojson.NewPointFeature([]float64{lon, lat})
			f.SetProperty("kind", dep.Kind)
			f.SetProperty("size", dep.Size)
			f.SetProperty("density", various.RoundToDecimals(dep.Density, 4))
			f.SetProperty("biome", biome.String())
			f.SetProperty("elevation", various.RoundToDecimals(elevation, 4))
			f.SetProperty("coordinates", fmt.Sprintf("x %.1f, y %.1f", wx, wy))
			fc.AddFeature(f)
		}
	}
	return fc.MarshalJSON()
}

// latLonToWorld maps WGS84 coordinates onto the world extent. North-west
// is world origin.
func (g *generators) latLonToWorld(lat, lon float64) (x, y float64) {
	x = (lon + 180) / 360 * g.cfg.Width
	y = (90 - lat) / 180 * g.cfg.Height
	return x, y
}

// worldToLatLon is the inverse of latLonToWorld.
func (g *generators) worldToLatLon(x, y float64) (lat, lon float64) {
	lon = x/g.cfg.Width*360 - 180
	lat = 90 - y/g.cfg.Height*180
	return lat, lon
}

// elevationGradient is the land part of the elevation ramp.
func elevationGradient() colorgrad.Gradient {
	grad := colorgrad.NewGradient()
	grad.Colors(
		color.RGBA{118, 153, 92, 255},
		color.RGBA{180, 185, 125, 255},
		color.RGBA{160, 130, 95, 255},
		color.RGBA{130, 120, 115, 255},
		color.RGBA{255, 255, 255, 255},
	)
	grad.Domain(0.45, 1)
	cb, err := grad.Build()
	if err != nil {
		log.Fatal(err)
	}
	return cb
}

// scalarGradient is a generic blue-to-red ramp for scalar fields.
func scalarGradient() colorgrad.Gradient {
	grad := colorgrad.NewGradient()
	grad.Colors(
		color.RGBA{0, 0, 255, 255},
		color.RGBA{0, 255, 255, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{255, 255, 0, 255},
		color.RGBA{255, 0, 0, 255},
	)
	cb, err := grad.Build()
	if err != nil {
		log.Fatal(err)
	}
	return cb
}

// biomeColor returns the display color of a biome.
func biomeColor(b Biome) color.NRGBA {
	switch b {
	case BiomeOceanDeep:
		return color.NRGBA{18, 38, 84, 255}
	case BiomeOceanMedium:
		return color.NRGBA{30, 62, 120, 255}
	case BiomeOceanShallow:
		return color.NRGBA{60, 104, 170, 255}
	case BiomeIce:
		return color.NRGBA{200, 230, 240, 255}
	case BiomeBeach:
		return color.NRGBA{218, 204, 160, 255}
	case BiomeRockyShore:
		return color.NRGBA{140, 138, 130, 255}
	case BiomeDesert:
		return color.NRGBA{227, 201, 138, 255}
	case BiomeSavanna:
		return color.NRGBA{188, 184, 107, 255}
	case BiomeGrassland:
		return color.NRGBA{136, 171, 85, 255}
	case BiomeForest:
		return color.NRGBA{70, 120, 65, 255}
	case BiomeRainforest:
		return color.NRGBA{35, 95, 55, 255}
	case BiomeSwamp:
		return color.NRGBA{72, 98, 70, 255}
	case BiomeShrubland:
		return color.NRGBA{150, 152, 102, 255}
	case BiomeTaiga:
		return color.NRGBA{92, 116, 92, 255}
	case BiomeTundra:
		return color.NRGBA{156, 158, 132, 255}
	case BiomeBare:
		return color.NRGBA{136, 136, 136, 255}
	case BiomeScorched:
		return color.NRGBA{90, 82, 74, 255}
	case BiomeSnow:
		return color.NRGBA{235, 238, 240, 255}
	}
	return color.NRGBA{255, 0, 255, 255}
}

// resourceColor returns the marker color for a resource kind. Unknown
// kinds get magenta so they are easy to spot.
func resourceColor(kind string) color.NRGBA {
	switch kind {
	case "coal":
		return color.NRGBA{40, 40, 40, 255}
	case "iron":
		return color.NRGBA{165, 110, 80, 255}
	case "gold":
		return color.NRGBA{230, 190, 50, 255}
	case "gems":
		return color.NRGBA{120, 60, 190, 255}
	case "oil":
		return color.NRGBA{25, 20, 35, 255}
	}
	return color.NRGBA{255, 0, 255, 255}
}

func wrapTileCoordinates(x, y, zoom int) (int, int) {
	x = x % (1 << uint(zoom))
	if x < 0 {
		x += 1 << uint(zoom)
	}
	y = y % (1 << uint(zoom))
	if y < 0 {
		y += 1 << uint(zoom)
	}
	return x, y
}

func limitLatLon(la, lo float64) (float64, float64) {
	if la < -90 {
		la = -90
	} else if la > 90 {
		la = 90
	}
	if lo < -180 {
		lo = -180
	} else if lo > 180 {
		lo = 180
	}
	return la, lo
}

// sizeFromZoom returns the pixel size of the world for the mercator
// projection used below.
func sizeFromZoom(zoom int) int {
	return int(math.Pow(2.0, float64(zoom)) * float64(tileSize))
}

func latLonToPixels(lat, lon float64, zoom int) (float64, float64) {
	return mercator.LatLonToPixels(-1*lat, lon, zoom)
}

// tileBoundingBox represents a bounding box in pixels for a tile.
type tileBoundingBox struct {
	x1, y1 float64
	x2, y2 float64
	zoom   int
	*merc
}

// pixelToLatLon returns the WGS84 coordinates of a pixel inside the
// tile. The latitude is mirrored so that pixel row 0 is the northern
// edge, matching latLonToPixels.
func (t *tileBoundingBox) pixelToLatLon(px, py float64) (float64, float64) {
	lat, lon := t.PixelsToLatLon(t.x1+px, t.y1+py, t.zoom)
	return -lat, lon
}

// newTileBoundingBox returns a new tile bounding box for the given tile
// coordinates and zoom level.
func newTileBoundingBox(tx, ty, zoom int) tileBoundingBox {
	return tileBoundingBox{
		x1:   float64(tx * tileSize),
		y1:   float64(ty * tileSize),
		x2:   float64((tx + 1) * tileSize),
		y2:   float64((ty + 1) * tileSize),
		zoom: zoom,
		merc: merc256,
	}
}

var merc256 = newMerc(tileSize)

type merc struct {
	tileSize          float64
	initialResolution float64
	originShift       float64
}

func newMerc(tileSize float64) *merc {
	return &merc{
		tileSize:          tileSize,
		initialResolution: 2 * math.Pi * 6378137 / tileSize,
		originShift:       2 * math.Pi * 6378137 / 2,
	}
}

// Resolution calculates the resolution (meters/pixel) for given zoom
// level (measured at Equator).
func (m *merc) Resolution(zoom int) float64 {
	return m.initialResolution / math.Pow(2, float64(zoom))
}

// PixelsToMeters converts pixel coordinates in given zoom level of
// pyramid to EPSG:900913.
func (m *merc) PixelsToMeters(px, py float64, zoom int) (float64, float64) {
	res := m.Resolution(zoom)
	x := px*res - m.originShift
	y := py*res - m.originShift
	return x, y
}

// PixelsToLatLon converts pixel coordinates in given zoom level to
// lat/lon in WGS84 Datum.
func (m *merc) PixelsToLatLon(px, py float64, zoom int) (float64, float64) {
	x, y := m.PixelsToMeters(px, py, zoom)
	return m.MetersToLatLon(x, y)
}

// MetersToLatLon converts XY point from Spherical Mercator EPSG:900913
// to lat/lon in WGS84 Datum.
func (m *merc) MetersToLatLon(x, y float64) (float64, float64) {
	lon := (x / m.originShift) * 180
	lat := (y / m.originShift) * 180
	lat = 180 / math.Pi * (2*math.Atan(math.Exp(lat*math.Pi/180)) - math.Pi/2)
	return lat, lon
}
