// Package render rasterises clock overlay primitives onto an image.
//
// It is a pure consumer of clock.DescribeOverlay output; nothing in the analysis
// pipeline depends on it.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
)

// Result contains the annotated image encoded as base64 PNG.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Overlay draws prims over a copy of img and, if label is not empty, writes it
// in the top-left corner.
func Overlay(img image.Image, prims []clock.Primitive, label string) (*Result, error) {
	canvas := Draw(img, prims, label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	return &Result{
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Draw returns a copy of img with prims and label drawn on it.
// Primitives with an unparseable colour are skipped.
func Draw(img image.Image, prims []clock.Primitive, label string) *image.NRGBA {
	canvas := imaging.Clone(img)
	offset := img.Bounds().Min

	for _, p := range prims {
		c, alpha, err := parseColor(p.Color)
		if err != nil {
			continue
		}
		// imaging.Clone rebases to the origin; primitives are in source coordinates.
		shift := func(pt clock.Point) clock.Point {
			return clock.Point{X: pt.X - float64(offset.X), Y: pt.Y - float64(offset.Y)}
		}

		switch p.Kind {
		case clock.KindCircle:
			strokeCircle(canvas, shift(p.Center), p.Radius, p.Width, c, alpha)
		case clock.KindLine:
			strokeLine(canvas, shift(p.From), shift(p.To), p.Width, c, alpha)
		case clock.KindMarker:
			fillDisc(canvas, shift(p.Center), p.Radius, c, alpha)
		}
	}

	if label != "" {
		drawLabel(canvas, 8, 8, label)
	}
	return canvas
}

// parseColor splits "#RRGGBB" or "#RRGGBBAA" into a colour and an opacity in [0, 1].
func parseColor(hex string) (colorful.Color, float64, error) {
	hex = strings.TrimSpace(hex)
	if len(hex) != 7 && len(hex) != 9 {
		return colorful.Color{}, 0, fmt.Errorf("invalid colour %q: expected #RRGGBB or #RRGGBBAA", hex)
	}
	alpha := 1.0
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = float64(a) / 255
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, 0, err
	}
	return c, alpha, nil
}

// blend mixes c over the pixel at (x, y) with the given opacity.
func blend(dst *image.NRGBA, x, y int, c colorful.Color, alpha float64) {
	if !(image.Point{X: x, Y: y}).In(dst.Bounds()) {
		return
	}
	under, ok := colorful.MakeColor(dst.At(x, y))
	if !ok {
		under = colorful.Color{R: 0, G: 0, B: 0}
	}
	r, g, b := under.BlendRgb(c, alpha).Clamped().RGB255()
	dst.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
}

func strokeCircle(dst *image.NRGBA, center clock.Point, radius, width float64, c colorful.Color, alpha float64) {
	half := math.Max(width, 1) / 2
	outer := radius + half
	x0, y0, x1, y1 := box(center, outer)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-center.X, float64(y)-center.Y)
			if math.Abs(d-radius) <= half {
				blend(dst, x, y, c, alpha)
			}
		}
	}
}

func fillDisc(dst *image.NRGBA, center clock.Point, radius float64, c colorful.Color, alpha float64) {
	x0, y0, x1, y1 := box(center, radius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if math.Hypot(float64(x)-center.X, float64(y)-center.Y) <= radius {
				blend(dst, x, y, c, alpha)
			}
		}
	}
}

func strokeLine(dst *image.NRGBA, from, to clock.Point, width float64, c colorful.Color, alpha float64) {
	half := math.Max(width, 1) / 2
	x0 := int(math.Floor(math.Min(from.X, to.X) - half))
	x1 := int(math.Ceil(math.Max(from.X, to.X) + half))
	y0 := int(math.Floor(math.Min(from.Y, to.Y) - half))
	y1 := int(math.Ceil(math.Max(from.Y, to.Y) + half))

	dx, dy := to.X-from.X, to.Y-from.Y
	len2 := dx*dx + dy*dy
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px, py := float64(x)-from.X, float64(y)-from.Y
			t := 0.0
			if len2 > 0 {
				t = math.Max(0, math.Min(1, (px*dx+py*dy)/len2))
			}
			if math.Hypot(px-t*dx, py-t*dy) <= half {
				blend(dst, x, y, c, alpha)
			}
		}
	}
}

func box(center clock.Point, extent float64) (x0, y0, x1, y1 int) {
	return int(math.Floor(center.X - extent)), int(math.Floor(center.Y - extent)),
		int(math.Ceil(center.X + extent)), int(math.Ceil(center.Y + extent))
}

// drawLabel writes text in white on a translucent dark box.
func drawLabel(dst *image.NRGBA, x, y int, text string) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()

	bg := image.Rect(x-3, y-3, x+w+3, y+h+3).Intersect(dst.Bounds())
	draw.Draw(dst, bg, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + face.Metrics().Ascent},
	}
	d.DrawString(text)
}
