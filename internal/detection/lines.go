package detection

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/phough-mcp/internal/hough"
	imgtools "github.com/ironsheep/phough-mcp/internal/imaging"
)

// Point represents a 2D point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Line represents a detected line segment
type Line struct {
	Start        Point   `json:"start"`
	End          Point   `json:"end"`
	Length       float64 `json:"length"`
	AngleDegrees float64 `json:"angle_degrees"`
	Votes        int     `json:"votes"`
	AngleBin     int     `json:"angle_bin"`
	Pixels       int     `json:"pixels"`
	Color        string  `json:"color"`
}

// AccumulatorSummary describes the final vote grid without its cells.
type AccumulatorSummary struct {
	NumAngle     int     `json:"num_angle"`
	NumRho       int     `json:"num_rho"`
	Rho          float64 `json:"rho"`
	ThetaDegrees float64 `json:"theta_degrees"`
	MaxVotes     int     `json:"max_votes"`

	// Peak is the strongest remaining cell, as angle and signed distance.
	PeakAngleDegrees float64 `json:"peak_angle_degrees"`
	PeakDistance     float64 `json:"peak_distance"`
}

// LinesResult contains detected lines
type LinesResult struct {
	Lines       []Line             `json:"lines"`
	Count       int                `json:"count"`
	Accumulator AccumulatorSummary `json:"accumulator"`
	Stats       hough.Stats        `json:"stats"`
}

// Options configures a detection run over a source image.
type Options struct {
	Params hough.Params

	// CannyLow and CannyHigh are the hysteresis thresholds used to build the
	// edge mask. Ignored when EdgesPrecomputed is set.
	CannyLow  int
	CannyHigh int

	// EdgesPrecomputed treats the source as an edge mask, binarized at
	// MaskLevel, instead of running Canny.
	EdgesPrecomputed bool

	// Region restricts detection to a rectangle of the source. Coordinates
	// in the results stay in the source's coordinate space.
	Region *imgtools.Region
}

// MaskLevel is the luminance at or above which a precomputed mask pixel is
// foreground.
const MaskLevel = 128

// Detection is the raw outcome of Run.
type Detection struct {
	// Segments are in the source image's coordinate space.
	Segments    []hough.Segment
	Accumulator *hough.Accumulator
	Stats       hough.Stats

	// Edges is the mask handed to the detector, origin (0, 0). Offset maps
	// its coordinates back onto the source.
	Edges  *image.Gray
	Offset image.Point
}

// Run builds the edge mask for img according to opts and runs the
// probabilistic Hough transform over it.
func Run(img image.Image, opts Options) (*Detection, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", hough.ErrInvalidArgument)
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	src := img
	offset := img.Bounds().Min
	if opts.Region != nil {
		cropped, err := imgtools.CropRegion(img, *opts.Region)
		if err != nil {
			return nil, err
		}
		src = cropped
		offset = image.Point{X: opts.Region.X1, Y: opts.Region.Y1}
	} else if offset != (image.Point{}) {
		src = imaging.Clone(img)
	}

	var edges *image.Gray
	if opts.EdgesPrecomputed {
		edges = imgtools.BinaryMask(src, MaskLevel)
	} else {
		var err error
		edges, err = imgtools.Canny(src, opts.CannyLow, opts.CannyHigh)
		if err != nil {
			return nil, err
		}
	}

	res, err := hough.Detect(edges, opts.Params)
	if err != nil {
		return nil, err
	}

	segments := make([]hough.Segment, len(res.Segments))
	for i, s := range res.Segments {
		s.X0 += offset.X
		s.Y0 += offset.Y
		s.X1 += offset.X
		s.Y1 += offset.Y
		segments[i] = s
	}

	return &Detection{
		Segments:    segments,
		Accumulator: res.Accumulator,
		Stats:       res.Stats,
		Edges:       edges,
		Offset:      offset,
	}, nil
}

// DetectLines finds line segments in img and describes each one.
func DetectLines(img image.Image, opts Options) (*LinesResult, error) {
	det, err := Run(img, opts)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(det.Segments))
	for _, s := range det.Segments {
		length, angle := imgtools.SegmentGeometry(s.X0, s.Y0, s.X1, s.Y1)
		lines = append(lines, Line{
			Start:        Point{X: s.X0, Y: s.Y0},
			End:          Point{X: s.X1, Y: s.Y1},
			Length:       math.Round(length*10) / 10,
			AngleDegrees: math.Round(angle*10) / 10,
			Votes:        s.Votes,
			AngleBin:     s.AngleBin,
			Pixels:       s.Pixels,
			Color:        imgtools.HexAt(img, (s.X0+s.X1)/2, (s.Y0+s.Y1)/2),
		})
	}

	if l := opts.Params.Logger; l != nil {
		l.Debug().
			Str("component", "detection").
			Int("lines", len(lines)).
			Bool("edges_precomputed", opts.EdgesPrecomputed).
			Msg("lines detected")
	}

	return &LinesResult{
		Lines:       lines,
		Count:       len(lines),
		Accumulator: Summarize(det.Accumulator),
		Stats:       det.Stats,
	}, nil
}

// Summarize reports the shape and strongest cell of acc.
func Summarize(acc *hough.Accumulator) AccumulatorSummary {
	sum := AccumulatorSummary{
		NumAngle:     acc.NumAngle,
		NumRho:       acc.NumRho,
		Rho:          acc.Rho,
		ThetaDegrees: acc.Theta * 180 / math.Pi,
	}

	peakN, peakR := 0, 0
	for n := 0; n < acc.NumAngle; n++ {
		for r := 0; r < acc.NumRho; r++ {
			if v := acc.At(n, r); v > sum.MaxVotes {
				sum.MaxVotes = v
				peakN, peakR = n, r
			}
		}
	}
	sum.PeakAngleDegrees = math.Round(acc.Angle(peakN)*180/math.Pi*10) / 10
	sum.PeakDistance = acc.Distance(peakR)
	return sum
}
