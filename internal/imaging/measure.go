package imaging

import (
	"image"
	"math"
)

// Point represents a 2D point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceResult contains measurement information
type DistanceResult struct {
	DistancePixels        float64 `json:"distance_pixels"`
	DeltaX                int     `json:"delta_x"`
	DeltaY                int     `json:"delta_y"`
	AngleDegrees          float64 `json:"angle_degrees"`
	DistancePercentWidth  float64 `json:"distance_percent_width"`
	DistancePercentHeight float64 `json:"distance_percent_height"`
}

// MeasureDistance calculates the distance between two points
func MeasureDistance(img image.Image, x1, y1, x2, y2 int) (*DistanceResult, error) {
	bounds := img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	length, angle := SegmentGeometry(x1, y1, x2, y2)

	return &DistanceResult{
		DistancePixels:        math.Round(length*100) / 100,
		DeltaX:                x2 - x1,
		DeltaY:                y2 - y1,
		AngleDegrees:          math.Round(angle*10) / 10,
		DistancePercentWidth:  math.Round(length/width*1000) / 10,
		DistancePercentHeight: math.Round(length/height*1000) / 10,
	}, nil
}

// SegmentGeometry returns the Euclidean length and the direction in degrees
// (0 = rightward, 90 = downward) of the segment from (x1, y1) to (x2, y2).
func SegmentGeometry(x1, y1, x2, y2 int) (length, angleDegrees float64) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Hypot(dx, dy), math.Atan2(dy, dx) * 180 / math.Pi
}
