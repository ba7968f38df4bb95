package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/phough-mcp/internal/hough"
)

// heatStops is the palette from zero votes to the maximum.
var heatStops = []colorful.Color{
	{R: 0, G: 0, B: 0},
	{R: 0.1, G: 0.1, B: 0.6},
	{R: 0.8, G: 0.1, B: 0.1},
	{R: 1, G: 0.9, B: 0.2},
	{R: 1, G: 1, B: 1},
}

// heatColor maps t in [0, 1] onto heatStops, blending in HCL.
func heatColor(t float64) colorful.Color {
	if t <= 0 {
		return heatStops[0]
	}
	if t >= 1 {
		return heatStops[len(heatStops)-1]
	}
	pos := t * float64(len(heatStops)-1)
	i := int(pos)
	return heatStops[i].BlendHcl(heatStops[i+1], pos-float64(i)).Clamped()
}

// AccumulatorOptions controls accumulator rendering.
type AccumulatorOptions struct {
	// Gray renders raw counts saturated at 255 instead of a normalized
	// heat map.
	Gray bool

	// Scale enlarges the grid by an integer factor (nearest neighbour).
	Scale int
}

// RenderAccumulator draws the vote grid with one column per distance bin
// and one row per angle bin. Negative cells render as zero.
func RenderAccumulator(acc *hough.Accumulator, opts AccumulatorOptions) image.Image {
	var img image.Image
	if opts.Gray {
		img = acc.Gray()
	} else {
		heat := image.NewRGBA(image.Rect(0, 0, acc.NumRho, acc.NumAngle))
		peak := float64(acc.Max())
		for n := 0; n < acc.NumAngle; n++ {
			for r := 0; r < acc.NumRho; r++ {
				t := 0.0
				if peak > 0 {
					t = float64(acc.At(n, r)) / peak
				}
				heat.Set(r, n, heatColor(t))
			}
		}
		img = heat
	}

	if opts.Scale > 1 {
		img = imaging.Resize(img, acc.NumRho*opts.Scale, acc.NumAngle*opts.Scale, imaging.NearestNeighbor)
	}
	return img
}
