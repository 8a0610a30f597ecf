package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestCanny_StepEdge(t *testing.T) {
	gray := createStepImage(100, 100, 50)

	edges := Canny(gray, 50, 150)
	if edges.Bounds() != gray.Bounds() {
		t.Fatalf("bounds: got %v, want %v", edges.Bounds(), gray.Bounds())
	}

	// The edge should be a single pixel wide column at the first bright pixel.
	for y := 1; y < 99; y++ {
		for x := 0; x < 100; x++ {
			got := edges.GrayAt(x, y).Y
			want := uint8(0)
			if x == 50 {
				want = 255
			}
			if got != want {
				t.Fatalf("edge at (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestCanny_UniformImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 50, 50))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}

	edges := Canny(gray, 50, 150)
	for i, v := range edges.Pix {
		if v != 0 {
			t.Fatalf("uniform image produced edge pixel at index %d", i)
		}
	}
}

func TestCanny_DifferentThresholds(t *testing.T) {
	// A faint step of 20 gray levels is below the 50/150 band but
	// above a permissive 5/15 band.
	gray := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := uint8(100)
			if x >= 20 {
				v = 120
			}
			gray.SetGray(x, y, color.Gray{Y: v})
		}
	}

	tests := []struct {
		name      string
		low, high int
		wantEdges bool
	}{
		{"strict thresholds", 50, 150, false},
		{"permissive thresholds", 5, 15, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := countNonZero(Canny(gray, tt.low, tt.high)) > 0
			if got != tt.wantEdges {
				t.Errorf("edges found: got %v, want %v", got, tt.wantEdges)
			}
		})
	}
}

func TestCanny_Hysteresis(t *testing.T) {
	// Upper half is a strong step, lower half a weak one. With a low
	// threshold that admits the weak half, the whole column is connected.
	gray := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		hi := uint8(255)
		if y >= 20 {
			hi = 40
		}
		for x := 0; x < 40; x++ {
			v := uint8(0)
			if x >= 20 {
				v = hi
			}
			gray.SetGray(x, y, color.Gray{Y: v})
		}
	}

	edges := Canny(gray, 100, 600)
	if edges.GrayAt(20, 10).Y != 255 {
		t.Fatal("strong edge pixel not marked")
	}
	if edges.GrayAt(20, 30).Y != 255 {
		t.Error("weak edge connected to a strong seed was not marked")
	}

	isolated := Canny(createStepImageLevel(40, 40, 20, 40), 100, 600)
	if countNonZero(isolated) != 0 {
		t.Error("weak edge without a strong seed should be dropped")
	}
}

func TestCanny_SmallImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	edges := Canny(gray, 50, 150)
	if edges.Bounds().Dx() != 2 || edges.Bounds().Dy() != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", edges.Bounds().Dx(), edges.Bounds().Dy())
	}
}

func TestSobel(t *testing.T) {
	g := Sobel(createStepImage(10, 10, 5))

	if g.Width != 10 || g.Height != 10 {
		t.Fatalf("dimensions: got %dx%d, want 10x10", g.Width, g.Height)
	}
	i := 5*10 + 5
	if g.X[i] <= 0 {
		t.Errorf("dark-to-bright step should give positive X gradient, got %f", g.X[i])
	}
	if g.Y[i] != 0 {
		t.Errorf("vertical step should give zero Y gradient, got %f", g.Y[i])
	}
	if g.X[2*10+1] != 0 {
		t.Errorf("flat region should give zero gradient, got %f", g.X[2*10+1])
	}
}

func TestEncodeEdges(t *testing.T) {
	edges := Canny(createStepImage(60, 40, 30), 50, 150)

	result, err := EncodeEdges(edges)
	if err != nil {
		t.Fatalf("EncodeEdges failed: %v", err)
	}
	if result.Width != 60 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 60x40", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.EdgePixels != countNonZero(edges) {
		t.Errorf("EdgePixels: got %d, want %d", result.EdgePixels, countNonZero(edges))
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Errorf("decoded dimensions: got %dx%d, want 60x40", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

// Helper functions

// createStepImage returns a black image whose columns from edgeX onward are white.
func createStepImage(width, height, edgeX int) *image.Gray {
	return createStepImageLevel(width, height, edgeX, 255)
}

func createStepImageLevel(width, height, edgeX int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := edgeX; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return img
}

func countNonZero(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
