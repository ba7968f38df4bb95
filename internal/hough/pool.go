package hough

import (
	"image"
	"math/rand/v2"
)

// Pixel states in the activity mask. A pixel only moves forward through
// these states: inactive is permanent for the rest of the run.
const (
	pixelInactive uint8 = iota
	pixelActive
	pixelVoted // active, and its votes are currently in the accumulator
)

// activityMask marks which pixels may still vote or join a segment.
type activityMask struct {
	width, height int
	state         []uint8
}

func (m *activityMask) at(x, y int) uint8 {
	return m.state[y*m.width+x]
}

func (m *activityMask) set(x, y int, s uint8) {
	m.state[y*m.width+x] = s
}

func (m *activityMask) inside(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// pixelPool is the set of pixels not yet drawn. Entries are removed by
// swapping with the last live entry, so order is not preserved.
type pixelPool struct {
	points []image.Point
	count  int
}

// newMaskAndPool builds the activity mask and the pixel pool from the same
// scan of the edge image. Coordinates are relative to the image origin.
func newMaskAndPool(img *image.Gray) (*activityMask, *pixelPool) {
	b := img.Bounds()
	m := &activityMask{
		width:  b.Dx(),
		height: b.Dy(),
		state:  make([]uint8, b.Dx()*b.Dy()),
	}
	p := &pixelPool{}
	for y := 0; y < m.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.width]
		for x, v := range row {
			if v != 0 {
				m.state[y*m.width+x] = pixelActive
				p.points = append(p.points, image.Point{X: x, Y: y})
			}
		}
	}
	p.count = len(p.points)
	return m, p
}

// draw removes and returns a uniformly chosen remaining pixel.
func (p *pixelPool) draw(rng *rand.Rand) (image.Point, bool) {
	if p.count == 0 {
		return image.Point{}, false
	}
	idx := rng.IntN(p.count)
	pt := p.points[idx]
	p.count--
	p.points[idx] = p.points[p.count]
	return pt, true
}
