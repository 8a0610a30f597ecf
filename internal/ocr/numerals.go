package ocr

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
)

// ErrOCRUnavailable is returned when the binary was built without Tesseract support.
var ErrOCRUnavailable = errors.New("ocr not compiled in (build with cgo and -tags tesseract)")

// minCropSide is the side length below which a face crop is upscaled before OCR.
// Tesseract does poorly on glyphs shorter than about 20 pixels.
const minCropSide = 400

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Numeral is one dial number recognised inside the face.
type Numeral struct {
	// Value is the numeral, 1-12.
	Value int `json:"value"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box in source image coordinates.
	Bounds Bounds `json:"bounds"`

	// Angle is the direction of the box centre from the face centre,
	// in degrees clockwise from 12.
	Angle float64 `json:"angle"`
}

// NumeralsResult contains the numerals found on a dial.
type NumeralsResult struct {
	Numerals []Numeral `json:"numerals"`
	Count    int       `json:"count"`

	// RawText is everything Tesseract returned for the crop, including rejects.
	RawText string `json:"raw_text"`
}

// word is a recognised word in crop coordinates, before filtering.
// recognizeWords returns them for a prepared crop.
type word struct {
	text       string
	confidence float64
	box        image.Rectangle
}

// ReadDialNumerals runs OCR over the bounding box of face in img and returns the
// numerals 1-12 it recognises.
//
// language is a Tesseract language code such as "eng".
func ReadDialNumerals(img image.Image, face clock.Circle, language string) (*NumeralsResult, error) {
	if face.Radius <= 0 {
		return nil, fmt.Errorf("invalid face radius %v", face.Radius)
	}

	region := image.Rect(
		int(math.Floor(face.Center.X-face.Radius)),
		int(math.Floor(face.Center.Y-face.Radius)),
		int(math.Ceil(face.Center.X+face.Radius)),
		int(math.Ceil(face.Center.Y+face.Radius)),
	).Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("face lies outside the image")
	}

	prepared, scale := prepareCrop(img, region)

	words, err := recognizeWords(prepared, language)
	if err != nil {
		return nil, err
	}

	return parseNumerals(words, region.Min, scale, face.Center), nil
}

// prepareCrop crops region, upscales it when small, and returns a sharpened
// grayscale copy together with the applied scale factor.
func prepareCrop(img image.Image, region image.Rectangle) (image.Image, float64) {
	cropped := imaging.Crop(img, region)

	scale := 1.0
	side := region.Dx()
	if region.Dy() < side {
		side = region.Dy()
	}
	if side < minCropSide {
		scale = float64(minCropSide) / float64(side)
		cropped = imaging.Resize(cropped,
			int(math.Round(float64(region.Dx())*scale)),
			int(math.Round(float64(region.Dy())*scale)),
			imaging.Lanczos)
	}

	gray := imaging.Grayscale(cropped)
	return imaging.Sharpen(gray, 1.0), scale
}

// parseNumerals keeps words that read as an integer 1-12 and maps their boxes
// back to source coordinates. Results are ordered by value, then confidence.
func parseNumerals(words []word, origin image.Point, scale float64, center clock.Point) *NumeralsResult {
	raw := make([]string, 0, len(words))
	numerals := make([]Numeral, 0, len(words))

	for _, w := range words {
		text := strings.TrimSpace(w.text)
		if text == "" {
			continue
		}
		raw = append(raw, text)

		v, err := strconv.Atoi(text)
		if err != nil || v < 1 || v > 12 {
			continue
		}

		b := Bounds{
			X1: origin.X + int(math.Round(float64(w.box.Min.X)/scale)),
			Y1: origin.Y + int(math.Round(float64(w.box.Min.Y)/scale)),
			X2: origin.X + int(math.Round(float64(w.box.Max.X)/scale)),
			Y2: origin.Y + int(math.Round(float64(w.box.Max.Y)/scale)),
		}
		mid := clock.Point{X: float64(b.X1+b.X2) / 2, Y: float64(b.Y1+b.Y2) / 2}

		numerals = append(numerals, Numeral{
			Value:      v,
			Confidence: w.confidence,
			Bounds:     b,
			Angle:      clock.AngleFrom12(center, mid),
		})
	}

	sort.SliceStable(numerals, func(i, j int) bool {
		if numerals[i].Value != numerals[j].Value {
			return numerals[i].Value < numerals[j].Value
		}
		return numerals[i].Confidence > numerals[j].Confidence
	})

	return &NumeralsResult{
		Numerals: numerals,
		Count:    len(numerals),
		RawText:  strings.Join(raw, " "),
	}
}
