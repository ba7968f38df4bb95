package hough

import (
	"image"
	"image/color"
	"math"
)

const degree = math.Pi / 180

// trigTable holds cos/rho and sin/rho for every angle bin, interleaved.
type trigTable []float64

func newTrigTable(numAngle int, rho, theta float64) trigTable {
	irho := 1 / rho
	tab := make(trigTable, numAngle*2)
	for n := 0; n < numAngle; n++ {
		ang := float64(n) * theta
		tab[n*2] = math.Cos(ang) * irho
		tab[n*2+1] = math.Sin(ang) * irho
	}
	return tab
}

// Accumulator is the vote grid over (angle bin, distance bin).
//
// Rows are angle bins spaced by Theta over [0, π); columns are distance bins
// of width Rho centred so that column (NumRho-1)/2 is distance zero.
type Accumulator struct {
	NumAngle int
	NumRho   int
	Rho      float64
	Theta    float64

	// Cells is row-major: Cells[n*NumRho+r].
	Cells []int
}

func newAccumulator(width, height int, rho, theta float64) *Accumulator {
	numAngle := int(math.RoundToEven(math.Pi / theta))
	if numAngle < 1 {
		numAngle = 1
	}
	numRho := int(math.RoundToEven(float64((width+height)*2+1) / rho))
	if numRho < 1 {
		numRho = 1
	}
	return &Accumulator{
		NumAngle: numAngle,
		NumRho:   numRho,
		Rho:      rho,
		Theta:    theta,
		Cells:    make([]int, numAngle*numRho),
	}
}

// project returns the distance bin of pixel (x, y) in angle bin n.
// Voting and rollback both go through here so the rounding always agrees.
func (a *Accumulator) project(tab trigTable, n, x, y int) int {
	r := int(math.RoundToEven(float64(x)*tab[n*2] + float64(y)*tab[n*2+1]))
	return r + (a.NumRho-1)/2
}

// vote adds (x, y) to every angle bin and returns the strongest bin whose
// count reached floor. found is false when no bin did.
func (a *Accumulator) vote(tab trigTable, x, y, floor int) (maxVal, maxN int, found bool) {
	maxVal = floor - 1
	for n := 0; n < a.NumAngle; n++ {
		r := a.project(tab, n, x, y)
		i := n*a.NumRho + r
		a.Cells[i]++
		if a.Cells[i] > maxVal {
			maxVal = a.Cells[i]
			maxN = n
			found = true
		}
	}
	return maxVal, maxN, found
}

// unvote removes a previous vote of (x, y) from every angle bin.
func (a *Accumulator) unvote(tab trigTable, x, y int) {
	for n := 0; n < a.NumAngle; n++ {
		a.Cells[n*a.NumRho+a.project(tab, n, x, y)]--
	}
}

// At returns the vote count of angle bin n and distance bin r.
func (a *Accumulator) At(n, r int) int {
	return a.Cells[n*a.NumRho+r]
}

// Max returns the largest cell value, or zero for an empty grid.
func (a *Accumulator) Max() int {
	m := 0
	for _, v := range a.Cells {
		if v > m {
			m = v
		}
	}
	return m
}

// Angle returns the angle in radians of bin n.
func (a *Accumulator) Angle(n int) float64 {
	return float64(n) * a.Theta
}

// Distance returns the signed distance in pixels of bin r.
func (a *Accumulator) Distance(r int) float64 {
	return float64(r-(a.NumRho-1)/2) * a.Rho
}

// Gray renders the grid as an 8-bit image, NumRho wide and NumAngle tall.
// Values are clamped to [0, 255].
func (a *Accumulator) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, a.NumRho, a.NumAngle))
	for n := 0; n < a.NumAngle; n++ {
		row := a.Cells[n*a.NumRho : (n+1)*a.NumRho]
		for r, v := range row {
			switch {
			case v <= 0:
				continue
			case v > 255:
				v = 255
			}
			img.SetGray(r, n, color.Gray{Y: uint8(v)})
		}
	}
	return img
}
