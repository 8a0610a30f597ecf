package detection

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createDiscImage draws a filled white disc on a black background.
func createDiscImage(width, height int, cx, cy, r float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func testCircleParams() CircleParams {
	return CircleParams{
		DP:             1,
		MinDist:        20,
		CannyHigh:      120,
		AccumThreshold: 10,
		MinRadius:      20,
		MaxRadius:      40,
	}
}

func TestDetectCircles(t *testing.T) {
	img := createDiscImage(120, 120, 60, 60, 30)

	circles, err := DetectCircles(img, testCircleParams())
	if err != nil {
		t.Fatalf("DetectCircles failed: %v", err)
	}
	if len(circles) == 0 {
		t.Fatal("expected at least one circle")
	}

	best := circles[0]
	if d := math.Hypot(best.Center.X-60, best.Center.Y-60); d > 3 {
		t.Errorf("centre: got (%.1f, %.1f), want within 3px of (60, 60)", best.Center.X, best.Center.Y)
	}
	if math.Abs(best.Radius-30) > 2 {
		t.Errorf("radius: got %.1f, want ~30", best.Radius)
	}
	if best.Confidence <= 0 || best.Confidence > 1 {
		t.Errorf("confidence out of range: %f", best.Confidence)
	}
}

func TestDetectCircles_OrderedByVotes(t *testing.T) {
	img := createDiscImage(120, 120, 60, 60, 30)

	circles, err := DetectCircles(img, testCircleParams())
	if err != nil {
		t.Fatalf("DetectCircles failed: %v", err)
	}
	for i := 1; i < len(circles); i++ {
		if circles[i].Votes > circles[i-1].Votes {
			t.Errorf("circle %d has more votes (%d) than circle %d (%d)",
				i, circles[i].Votes, i-1, circles[i-1].Votes)
		}
	}
}

func TestDetectCircles_MinDist(t *testing.T) {
	img := createDiscImage(120, 120, 60, 60, 30)
	p := testCircleParams()
	p.MinDist = 200

	circles, err := DetectCircles(img, p)
	if err != nil {
		t.Fatalf("DetectCircles failed: %v", err)
	}
	if len(circles) > 1 {
		t.Errorf("MinDist larger than the image should leave one circle, got %d", len(circles))
	}
}

func TestDetectCircles_BlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))

	circles, err := DetectCircles(img, testCircleParams())
	if err != nil {
		t.Fatalf("DetectCircles failed: %v", err)
	}
	if len(circles) != 0 {
		t.Errorf("blank image should have no circles, got %d", len(circles))
	}
}

func TestDetectCircles_OffsetBounds(t *testing.T) {
	full := createDiscImage(220, 220, 160, 160, 30)
	sub := full.SubImage(image.Rect(100, 100, 220, 220)).(*image.Gray)

	circles, err := DetectCircles(sub, testCircleParams())
	if err != nil {
		t.Fatalf("DetectCircles failed: %v", err)
	}
	if len(circles) == 0 {
		t.Fatal("expected at least one circle")
	}
	if d := math.Hypot(circles[0].Center.X-160, circles[0].Center.Y-160); d > 3 {
		t.Errorf("centre should be in absolute coordinates: got (%.1f, %.1f)",
			circles[0].Center.X, circles[0].Center.Y)
	}
}

func TestDetectCircles_InvalidParams(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 50, 50))

	tests := []struct {
		name   string
		modify func(*CircleParams)
	}{
		{"zero min radius", func(p *CircleParams) { p.MinRadius = 0 }},
		{"max below min", func(p *CircleParams) { p.MaxRadius = p.MinRadius - 1 }},
		{"zero canny threshold", func(p *CircleParams) { p.CannyHigh = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testCircleParams()
			tt.modify(&p)
			if _, err := DetectCircles(img, p); err == nil {
				t.Error("expected error for invalid parameters")
			}
		})
	}
}
