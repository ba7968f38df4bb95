package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/phough-mcp/internal/hough"
)

func testAccumulator() *hough.Accumulator {
	acc := &hough.Accumulator{NumAngle: 3, NumRho: 4, Rho: 1, Theta: 0.1, Cells: make([]int, 12)}
	acc.Cells[0*4+1] = 10
	acc.Cells[1*4+2] = 300
	acc.Cells[2*4+3] = -2
	return acc
}

func TestRenderAccumulator_Gray(t *testing.T) {
	img := RenderAccumulator(testAccumulator(), AccumulatorOptions{Gray: true})
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	if gray.Bounds().Dx() != 4 || gray.Bounds().Dy() != 3 {
		t.Fatalf("size: got %v, want 4x3", gray.Bounds())
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{1, 0, 10},
		{2, 1, 255},
		{3, 2, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := gray.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("(%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderAccumulator_Heat(t *testing.T) {
	img := RenderAccumulator(testAccumulator(), AccumulatorOptions{})

	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("empty cell should be black, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(2, 1).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("peak cell should be white, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(3, 2).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("negative cell should render as zero, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderAccumulator_Scale(t *testing.T) {
	img := RenderAccumulator(testAccumulator(), AccumulatorOptions{Gray: true, Scale: 5})
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 15 {
		t.Fatalf("size: got %v, want 20x15", img.Bounds())
	}
	// nearest neighbour keeps the peak cell saturated across its block
	got := color.GrayModel.Convert(img.At(12, 7)).(color.Gray).Y
	if got != 255 {
		t.Errorf("scaled peak: got %d, want 255", got)
	}
}

func TestHeatColor(t *testing.T) {
	if heatColor(-1) != heatStops[0] {
		t.Error("below range should clamp to the first stop")
	}
	if heatColor(2) != heatStops[len(heatStops)-1] {
		t.Error("above range should clamp to the last stop")
	}
	mid := heatColor(0.5)
	if !mid.IsValid() {
		t.Errorf("blended color out of gamut: %v", mid)
	}
}
