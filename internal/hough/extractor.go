package hough

import (
	"image"
	"math"
)

const (
	fixedShift = 16
	fixedOne   = 1 << fixedShift
	fixedHalf  = 1 << (fixedShift - 1)
)

// walker steps along a line through a seed pixel in 16.16 fixed point.
// The major axis advances one whole pixel per step; the minor axis carries
// the fractional part.
type walker struct {
	x0, y0 int
	dx, dy int
	xMajor bool
}

// newWalker orients a walk through (x, y) along the direction
// (-sin, cos) of angle bin n.
func newWalker(tab trigTable, n, x, y int) walker {
	a := -tab[n*2+1]
	b := tab[n*2]
	w := walker{x0: x, y0: y}
	if math.Abs(a) > math.Abs(b) {
		w.xMajor = true
		w.dx = 1
		if a <= 0 {
			w.dx = -1
		}
		w.dy = int(math.RoundToEven(b * fixedOne / math.Abs(a)))
		w.y0 = y<<fixedShift + fixedHalf
	} else {
		w.dy = 1
		if b <= 0 {
			w.dy = -1
		}
		w.dx = int(math.RoundToEven(a * fixedOne / math.Abs(b)))
		w.x0 = x<<fixedShift + fixedHalf
	}
	return w
}

// cursor is a position on a walk, k selecting the direction.
type cursor struct {
	w      *walker
	x, y   int
	dx, dy int
}

func (w *walker) start(k int) cursor {
	c := cursor{w: w, x: w.x0, y: w.y0, dx: w.dx, dy: w.dy}
	if k > 0 {
		c.dx, c.dy = -c.dx, -c.dy
	}
	return c
}

// pixel returns the image pixel under the cursor.
func (c *cursor) pixel() (int, int) {
	if c.w.xMajor {
		return c.x, c.y >> fixedShift
	}
	return c.x >> fixedShift, c.y
}

func (c *cursor) next() {
	c.x += c.dx
	c.y += c.dy
}

// endpoint is the last active pixel found in one walk direction.
type endpoint struct {
	image.Point
	found bool
}

// scan walks both directions from the seed and records the farthest active
// pixel before the border or a gap longer than maxGap.
func (d *detector) scan(w *walker) [2]endpoint {
	var ends [2]endpoint
	for k := 0; k < 2; k++ {
		gap := 0
		for c := w.start(k); ; c.next() {
			x, y := c.pixel()
			if !d.mask.inside(x, y) {
				break
			}
			if d.mask.at(x, y) != pixelInactive {
				gap = 0
				ends[k] = endpoint{Point: image.Point{X: x, Y: y}, found: true}
			} else if gap++; gap > d.params.MaxGap {
				break
			}
		}
	}
	return ends
}

// accepts reports whether the endpoints span at least MinLineLength along x or y.
func (d *detector) accepts(ends [2]endpoint) bool {
	if !ends[0].found || !ends[1].found {
		return false
	}
	return abs(ends[1].X-ends[0].X) >= d.params.MinLineLength ||
		abs(ends[1].Y-ends[0].Y) >= d.params.MinLineLength
}

// commit re-walks each direction out to its endpoint and clears every active
// pixel on the way. When good is set, pixels that voted are also removed
// from the accumulator. It returns the number of pixels cleared.
func (d *detector) commit(w *walker, ends [2]endpoint, good bool) int {
	cleared := 0
	for k := 0; k < 2; k++ {
		if !ends[k].found {
			continue
		}
		for c := w.start(k); ; c.next() {
			x, y := c.pixel()
			if s := d.mask.at(x, y); s != pixelInactive {
				if good && s == pixelVoted {
					d.acc.unvote(d.tab, x, y)
				}
				d.mask.set(x, y, pixelInactive)
				cleared++
			}
			if x == ends[k].X && y == ends[k].Y {
				break
			}
		}
	}
	return cleared
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
