package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HexAt returns the "#rrggbb" color of img at (x, y), or "" outside bounds.
func HexAt(img image.Image, x, y int) string {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return ""
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// fully transparent
		return ""
	}
	return c.Hex()
}
