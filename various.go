package worldgen

import (
	"image/color"

	"github.com/Flokey82/go_gens/utils"
)

var minMax = utils.MinMax[float64]

// genBlue returns a blue color with the given intensity (0.0-1.0).
func genBlue(intensity float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(intensity * 255),
		G: uint8(intensity * 255),
		B: 255,
		A: 255,
	}
}

// genColor converts the given color to NRGBA.
func genColor(col color.Color, intensity float64) color.Color {
	var col2 color.NRGBA
	cr, cg, cb, _ := col.RGBA()
	col2.R = uint8(intensity * float64(255) * float64(cr) / float64(0xffff))
	col2.G = uint8(intensity * float64(255) * float64(cg) / float64(0xffff))
	col2.B = uint8(intensity * float64(255) * float64(cb) / float64(0xffff))
	col2.A = 255
	return col2
}

// genShaded darkens the given color by the given factor (0.0-1.0).
func genShaded(col color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(col.R) * factor),
		G: uint8(float64(col.G) * factor),
		B: uint8(float64(col.B) * factor),
		A: col.A,
	}
}
