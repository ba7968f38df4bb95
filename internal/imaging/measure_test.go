package imaging

import (
	"image"
	"math"
	"testing"
)

func TestMeasureDistance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		wantDist       float64
		wantAngle      float64
	}{
		{"horizontal", 0, 0, 30, 0, 30, 0},
		{"vertical down", 10, 0, 10, 40, 40, 90},
		{"pythagorean", 0, 0, 3, 4, 5, 53.1},
		{"leftward", 50, 10, 20, 10, 30, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := MeasureDistance(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err != nil {
				t.Fatalf("MeasureDistance failed: %v", err)
			}
			if res.DistancePixels != tt.wantDist {
				t.Errorf("distance: got %v, want %v", res.DistancePixels, tt.wantDist)
			}
			if res.AngleDegrees != tt.wantAngle {
				t.Errorf("angle: got %v, want %v", res.AngleDegrees, tt.wantAngle)
			}
			if res.DeltaX != tt.x2-tt.x1 || res.DeltaY != tt.y2-tt.y1 {
				t.Errorf("deltas: got %d,%d", res.DeltaX, res.DeltaY)
			}
		})
	}
}

func TestMeasureDistance_PercentValues(t *testing.T) {
	res, err := MeasureDistance(image.NewRGBA(image.Rect(0, 0, 200, 100)), 0, 0, 50, 0)
	if err != nil {
		t.Fatalf("MeasureDistance failed: %v", err)
	}
	if res.DistancePercentWidth != 25 {
		t.Errorf("percent width: got %v, want 25", res.DistancePercentWidth)
	}
	if res.DistancePercentHeight != 50 {
		t.Errorf("percent height: got %v, want 50", res.DistancePercentHeight)
	}
}

func TestSegmentGeometry(t *testing.T) {
	length, angle := SegmentGeometry(10, 10, 90, 90)
	if math.Abs(length-80*math.Sqrt2) > 1e-9 {
		t.Errorf("length: got %v", length)
	}
	if math.Abs(angle-45) > 1e-9 {
		t.Errorf("angle: got %v, want 45", angle)
	}

	length, _ = SegmentGeometry(3, 3, 3, 3)
	if length != 0 {
		t.Errorf("degenerate length: got %v", length)
	}
}
