package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/ironsheep/phough-mcp/internal/hough"
)

// OverlayOptions controls how segments are drawn.
type OverlayOptions struct {
	// Color of the segments, "#RRGGBB" or "#RRGGBBAA". Defaults to red.
	Color string

	// Width of the stroke in pixels. Defaults to 1.
	Width float64

	// Labels draws each segment's index next to its first endpoint.
	Labels bool
}

// DrawSegments returns a copy of img with segs drawn on top, anti-aliased.
// Segment coordinates are in img's coordinate space; the result has origin
// (0, 0).
func DrawSegments(img image.Image, segs []hough.Segment, opts OverlayOptions) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	lineColor, err := parseHexColor(opts.Color)
	if err != nil {
		lineColor = color.NRGBA{255, 0, 0, 255}
	}
	width := opts.Width
	if width <= 0 {
		width = 1
	}
	src := image.NewUniform(lineColor)

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, s := range segs {
		strokeSegment(z,
			float64(s.X0-b.Min.X)+0.5, float64(s.Y0-b.Min.Y)+0.5,
			float64(s.X1-b.Min.X)+0.5, float64(s.Y1-b.Min.Y)+0.5,
			width/2)
	}
	z.Draw(dst, dst.Bounds(), src, image.Point{})

	if opts.Labels {
		d := font.Drawer{Dst: dst, Src: src, Face: basicfont.Face7x13}
		for i, s := range segs {
			d.Dot = fixed.P(s.X0-b.Min.X+3, s.Y0-b.Min.Y-3)
			d.DrawString(strconv.Itoa(i))
		}
	}
	return dst
}

// strokeSegment adds a closed quad covering the segment, extended by half
// the stroke width past each end so end pixels are covered.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, hw float64) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	// extend along the direction, offset along the normal
	ex, ey := ux*hw, uy*hw
	nx, ny := -uy*hw, ux*hw

	z.MoveTo(float32(x0-ex+nx), float32(y0-ey+ny))
	z.LineTo(float32(x1+ex+nx), float32(y1+ey+ny))
	z.LineTo(float32(x1+ex-nx), float32(y1+ey-ny))
	z.LineTo(float32(x0-ex-nx), float32(y0-ey-ny))
	z.ClosePath()
}

// SideBySide places left and right next to each other with gap pixels
// between them on a black canvas, the way the workbench shows the edge
// mask next to the detected lines.
func SideBySide(left, right image.Image, gap int) *image.RGBA {
	lb, rb := left.Bounds(), right.Bounds()
	height := max(lb.Dy(), rb.Dy())
	canvas := image.NewRGBA(image.Rect(0, 0, lb.Dx()+gap+rb.Dx(), height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(canvas, image.Rect(lb.Dx()+gap, 0, lb.Dx()+gap+rb.Dx(), rb.Dy()), right, rb.Min, draw.Src)
	return canvas
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
