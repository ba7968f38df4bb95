package hough

import (
	"fmt"
	"image"
	"math/rand/v2"
)

// Segment is an accepted line segment in image coordinates.
type Segment struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`

	// Votes is the accumulator count that triggered the walk.
	Votes int `json:"votes"`

	// AngleBin is the accumulator row of the segment's orientation.
	AngleBin int `json:"angle_bin"`

	// Pixels is the number of active pixels the segment consumed.
	Pixels int `json:"pixels"`
}

// Start returns the first endpoint.
func (s Segment) Start() image.Point { return image.Point{X: s.X0, Y: s.Y0} }

// End returns the second endpoint.
func (s Segment) End() image.Point { return image.Point{X: s.X1, Y: s.Y1} }

// Stats summarises what happened during a run.
type Stats struct {
	EdgePixels int `json:"edge_pixels"` // foreground pixels in the input
	Samples    int `json:"samples"`     // pixels drawn from the pool
	Stale      int `json:"stale"`       // draws already cleared by an earlier walk
	Weak       int `json:"weak"`        // draws whose best bin stayed under threshold
	Rejected   int `json:"rejected"`    // walks that failed the length check
	Accepted   int `json:"accepted"`    // segments emitted
	Cleared    int `json:"cleared"`     // pixels removed from the activity mask
}

// Result is the output of Detect.
type Result struct {
	Segments    []Segment
	Accumulator *Accumulator
	Stats       Stats
}

// detector bundles the state of one run. Nothing in it outlives Detect
// except the accumulator and the segments, which are handed to the caller.
type detector struct {
	params Params
	origin image.Point
	mask   *activityMask
	pool   *pixelPool
	tab    trigTable
	acc    *Accumulator
	rng    *rand.Rand
	stats  Stats
}

// Detect finds line segments in a binary edge image with the progressive
// probabilistic Hough transform.
//
// img must be an *image.Gray; any nonzero pixel is foreground. The image is
// never modified. The returned accumulator has NumAngle rows and NumRho
// columns and reflects the votes left after rollbacks of accepted segments.
func Detect(img image.Image, p Params) (*Result, error) {
	gray, ok := img.(*image.Gray)
	if !ok || gray == nil {
		return nil, fmt.Errorf("%w: source image must be 8-bit, single-channel, got %T", ErrInvalidArgument, img)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := newDetector(gray, p)
	segments := d.run()

	p.logger().Debug().
		Str("component", "hough").
		Int("width", d.mask.width).
		Int("height", d.mask.height).
		Int("num_angle", d.acc.NumAngle).
		Int("num_rho", d.acc.NumRho).
		Int("edge_pixels", d.stats.EdgePixels).
		Int("samples", d.stats.Samples).
		Int("stale", d.stats.Stale).
		Int("weak", d.stats.Weak).
		Int("rejected", d.stats.Rejected).
		Int("accepted", d.stats.Accepted).
		Msg("probabilistic hough finished")

	return &Result{
		Segments:    segments,
		Accumulator: d.acc,
		Stats:       d.stats,
	}, nil
}

func newDetector(img *image.Gray, p Params) *detector {
	b := img.Bounds()
	mask, pool := newMaskAndPool(img)
	acc := newAccumulator(b.Dx(), b.Dy(), p.Rho, p.Theta)
	return &detector{
		params: p,
		origin: b.Min,
		mask:   mask,
		pool:   pool,
		tab:    newTrigTable(acc.NumAngle, p.Rho, p.Theta),
		acc:    acc,
		rng:    rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)),
		stats:  Stats{EdgePixels: pool.count},
	}
}

func (d *detector) run() []Segment {
	var segments []Segment
	for {
		pt, ok := d.pool.draw(d.rng)
		if !ok {
			return segments
		}
		d.stats.Samples++

		if d.mask.at(pt.X, pt.Y) == pixelInactive {
			d.stats.Stale++
			continue
		}

		d.mask.set(pt.X, pt.Y, pixelVoted)
		votes, n, strong := d.acc.vote(d.tab, pt.X, pt.Y, d.params.Threshold)
		if !strong {
			d.stats.Weak++
			continue
		}

		w := newWalker(d.tab, n, pt.X, pt.Y)
		ends := d.scan(&w)
		good := d.accepts(ends)
		cleared := d.commit(&w, ends, good)
		d.stats.Cleared += cleared

		if !good {
			d.stats.Rejected++
			continue
		}

		segments = append(segments, Segment{
			X0:       ends[0].X + d.origin.X,
			Y0:       ends[0].Y + d.origin.Y,
			X1:       ends[1].X + d.origin.X,
			Y1:       ends[1].Y + d.origin.Y,
			Votes:    votes,
			AngleBin: n,
			Pixels:   cleared,
		})
		d.stats.Accepted++
		if d.params.MaxLines > 0 && len(segments) >= d.params.MaxLines {
			return segments
		}
	}
}
