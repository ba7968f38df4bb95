package hough

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"
)

func newEdges(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// drawRun marks count pixels starting at (x, y) and stepping by (dx, dy).
func drawRun(img *image.Gray, x, y, dx, dy, count int) {
	for i := 0; i < count; i++ {
		img.SetGray(x+i*dx, y+i*dy, color.Gray{Y: 255})
	}
}

func testParams(threshold, minLen, gap int) Params {
	return Params{
		Rho:           1,
		Theta:         math.Pi / 180,
		Threshold:     threshold,
		MinLineLength: minLen,
		MaxGap:        gap,
		Seed:          42,
	}
}

func near(a, b image.Point, tol int) bool {
	return abs(a.X-b.X) <= tol && abs(a.Y-b.Y) <= tol
}

func TestDetectDiagonal(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 10, 10, 1, 1, 81)

	res, err := Detect(img, testParams(50, 50, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldHaveLength, 1)

	seg := res.Segments[0]
	from, to := image.Pt(10, 10), image.Pt(90, 90)
	forward := near(seg.Start(), from, 1) && near(seg.End(), to, 1)
	backward := near(seg.Start(), to, 1) && near(seg.End(), from, 1)
	test.That(t, forward || backward, test.ShouldBeTrue)
	test.That(t, seg.Votes, test.ShouldBeGreaterThanOrEqualTo, 50)
	test.That(t, seg.Pixels, test.ShouldEqual, 81)
	test.That(t, res.Stats.Accepted, test.ShouldEqual, 1)
	test.That(t, res.Stats.Samples, test.ShouldEqual, 81)
}

func TestDetectThresholdAboveSupport(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 10, 10, 1, 1, 81)

	res, err := Detect(img, testParams(100, 10, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldBeEmpty)
	test.That(t, res.Stats.Weak, test.ShouldEqual, 81)
	test.That(t, res.Stats.Cleared, test.ShouldEqual, 0)
}

func TestDetectParallelSegments(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 10, 20, 1, 0, 80)
	drawRun(img, 10, 60, 1, 0, 80)

	p := testParams(30, 50, 0)
	res, err := Detect(img, p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldHaveLength, 2)

	rows := map[int]bool{}
	total := 0
	for _, seg := range res.Segments {
		test.That(t, seg.Y0, test.ShouldEqual, seg.Y1)
		test.That(t, abs(seg.X1-seg.X0), test.ShouldBeGreaterThanOrEqualTo, p.MinLineLength)
		test.That(t, seg.Pixels, test.ShouldBeLessThanOrEqualTo, 80)
		rows[seg.Y0] = true
		total += seg.Pixels
	}
	test.That(t, rows[20], test.ShouldBeTrue)
	test.That(t, rows[60], test.ShouldBeTrue)
	test.That(t, total, test.ShouldBeLessThanOrEqualTo, res.Stats.EdgePixels)
}

func TestDetectShortRunRejected(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 40, 50, 1, 0, 20)

	res, err := Detect(img, testParams(10, 50, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldBeEmpty)
	test.That(t, res.Stats.Rejected, test.ShouldBeGreaterThanOrEqualTo, 1)
	test.That(t, res.Stats.Cleared, test.ShouldBeGreaterThan, 0)
}

func TestDetectGapTolerance(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 10, 50, 1, 0, 30)
	drawRun(img, 43, 50, 1, 0, 30) // three-pixel hole at x=40..42

	bridged, err := Detect(img, testParams(20, 60, 3))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bridged.Segments, test.ShouldHaveLength, 1)
	seg := bridged.Segments[0]
	test.That(t, abs(seg.X1-seg.X0), test.ShouldEqual, 62)

	split, err := Detect(img, testParams(20, 60, 2))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, split.Segments, test.ShouldBeEmpty)
}

func TestDetectEmptyImage(t *testing.T) {
	res, err := Detect(newEdges(64, 48), testParams(1, 1, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldBeEmpty)
	test.That(t, res.Stats.Samples, test.ShouldEqual, 0)
	for _, v := range res.Accumulator.Cells {
		test.That(t, v, test.ShouldEqual, 0)
	}
	test.That(t, res.Accumulator.NumAngle, test.ShouldEqual, 180)
	test.That(t, res.Accumulator.NumRho, test.ShouldEqual, (64+48)*2+1)
}

// noisyScene draws a few lines over scattered noise.
func noisyScene(seed uint64) *image.Gray {
	img := newEdges(160, 120)
	drawRun(img, 5, 5, 1, 0, 140)
	drawRun(img, 20, 10, 0, 1, 100)
	drawRun(img, 30, 100, 1, -1, 80)
	rng := rand.New(rand.NewPCG(seed, seed))
	for i := 0; i < 400; i++ {
		img.SetGray(rng.IntN(160), rng.IntN(120), color.Gray{Y: 255})
	}
	return img
}

func TestDetectDeterministic(t *testing.T) {
	img := noisyScene(3)
	p := testParams(40, 30, 2)

	first, err := Detect(img, p)
	test.That(t, err, test.ShouldBeNil)
	second, err := Detect(img, p)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, second.Segments, test.ShouldResemble, first.Segments)
	test.That(t, second.Accumulator.Cells, test.ShouldResemble, first.Accumulator.Cells)
	test.That(t, second.Stats, test.ShouldResemble, first.Stats)
}

func TestDetectInvariants(t *testing.T) {
	for _, seed := range []uint64{0, 1, 7, 99} {
		img := noisyScene(seed)
		p := testParams(25, 20, 3)
		p.Seed = seed

		d := newDetector(img, p)
		segments := d.run()

		for _, seg := range segments {
			long := abs(seg.X1-seg.X0) >= p.MinLineLength || abs(seg.Y1-seg.Y0) >= p.MinLineLength
			test.That(t, long, test.ShouldBeTrue)
		}

		for _, v := range d.acc.Cells {
			test.That(t, v, test.ShouldBeGreaterThanOrEqualTo, 0)
		}

		// every cleared pixel was foreground, and each was cleared once
		cleared := 0
		for y := 0; y < d.mask.height; y++ {
			for x := 0; x < d.mask.width; x++ {
				fg := img.GrayAt(x, y).Y != 0
				if !fg {
					test.That(t, d.mask.at(x, y), test.ShouldEqual, pixelInactive)
					continue
				}
				if d.mask.at(x, y) == pixelInactive {
					cleared++
				}
			}
		}
		test.That(t, cleared, test.ShouldEqual, d.stats.Cleared)
		test.That(t, cleared, test.ShouldBeLessThanOrEqualTo, d.stats.EdgePixels)
	}
}

func TestDetectMaxLines(t *testing.T) {
	img := newEdges(100, 100)
	drawRun(img, 10, 10, 1, 0, 80)
	drawRun(img, 10, 50, 1, 0, 80)
	drawRun(img, 10, 90, 1, 0, 80)

	p := testParams(30, 50, 0)
	p.MaxLines = 1
	res, err := Detect(img, p)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldHaveLength, 1)
}

func TestDetectSubImageOrigin(t *testing.T) {
	parent := newEdges(200, 200)
	drawRun(parent, 110, 150, 1, 0, 60)
	sub := parent.SubImage(image.Rect(100, 100, 200, 200)).(*image.Gray)

	res, err := Detect(sub, testParams(20, 40, 0))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Segments, test.ShouldHaveLength, 1)
	seg := res.Segments[0]
	test.That(t, seg.Y0, test.ShouldEqual, 150)
	test.That(t, min(seg.X0, seg.X1), test.ShouldEqual, 110)
	test.That(t, max(seg.X0, seg.X1), test.ShouldEqual, 169)
}

func TestDetectInvalidArgument(t *testing.T) {
	gray := newEdges(10, 10)
	tests := []struct {
		name string
		img  image.Image
		edit func(*Params)
	}{
		{"rgba source", image.NewRGBA(image.Rect(0, 0, 10, 10)), func(*Params) {}},
		{"nil gray", (*image.Gray)(nil), func(*Params) {}},
		{"zero rho", gray, func(p *Params) { p.Rho = 0 }},
		{"negative theta", gray, func(p *Params) { p.Theta = -1 }},
		{"nan theta", gray, func(p *Params) { p.Theta = math.NaN() }},
		{"zero threshold", gray, func(p *Params) { p.Threshold = 0 }},
		{"negative gap", gray, func(p *Params) { p.MaxGap = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams(10, 10, 0)
			tt.edit(&p)
			res, err := Detect(tt.img, p)
			test.That(t, res, test.ShouldBeNil)
			test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)
		})
	}
}

func TestParamsValidateReportsAll(t *testing.T) {
	err := Params{}.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 3)

	test.That(t, DefaultParams().Validate(), test.ShouldBeNil)
}
