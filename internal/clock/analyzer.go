package clock

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/clock-reader-mcp/internal/imaging"
)

// Analyzer runs the full pipeline against a Vision implementation.
// It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	vision Vision
	opts   Options
}

// NewAnalyzer validates opts and returns an Analyzer using v for the low-level detectors.
func NewAnalyzer(v Vision, opts Options) (*Analyzer, error) {
	if v == nil {
		return nil, errors.New("vision implementation is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Analyzer{vision: v, opts: opts}, nil
}

// Options returns the thresholds the analyzer was built with.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Inspection records every intermediate result of one run. Stages after a
// failure are left empty.
type Inspection struct {
	Circles []Circle `json:"circles"`
	Face    *Circle  `json:"face,omitempty"`

	// Edges is the masked edge map handed to the segment detector.
	Edges *image.Gray `json:"-"`

	Segments     []Segment       `json:"segments"`
	Candidates   []HandCandidate `json:"candidates"`
	UsedFallback bool            `json:"used_fallback"`
	Band         *Band           `json:"band,omitempty"`
	Clusters     []Cluster       `json:"clusters"`

	Reading *Reading `json:"reading,omitempty"`
}

// Analyze returns the time shown on the clock in gray, or a *Failure.
func (a *Analyzer) Analyze(ctx context.Context, gray *image.Gray) (*Reading, error) {
	insp, err := a.Inspect(ctx, gray)
	if err != nil {
		return nil, err
	}
	return insp.Reading, nil
}

// Inspect runs the pipeline and returns all intermediate results alongside the
// outcome. The Inspection is never nil.
//
// The pipeline short-circuits at the first failing stage. Errors and panics raised
// by the Vision implementation are reported as StatusProcessingError. ctx is only
// consulted between stages.
func (a *Analyzer) Inspect(ctx context.Context, gray *image.Gray) (insp *Inspection, err error) {
	insp = &Inspection{}
	defer func() {
		if rec := recover(); rec != nil {
			insp.Reading = nil
			err = processingError(fmt.Errorf("%v", rec))
		}
	}()

	if gray == nil || gray.Bounds().Empty() {
		return insp, processingError(errors.New("empty image"))
	}
	b := gray.Bounds()

	circles, err := a.vision.DetectCircles(gray, CircleParamsFor(b.Dx(), b.Dy()))
	if err != nil {
		return insp, processingError(fmt.Errorf("circle detection: %w", err))
	}
	insp.Circles = circles

	face, err := LocateFace(circles)
	if err != nil {
		return insp, err
	}
	insp.Face = &face

	if err := ctx.Err(); err != nil {
		return insp, processingError(err)
	}

	masked := imaging.MaskDisc(gray, face.Center.X, face.Center.Y, face.Radius*a.opts.MaskRatio)
	edges, err := a.vision.DetectEdges(masked, a.opts.EdgeLow, a.opts.EdgeHigh)
	if err != nil {
		return insp, processingError(fmt.Errorf("edge detection: %w", err))
	}
	insp.Edges = edges

	segments, err := a.vision.DetectLineSegments(edges, SegmentParamsFor(face.Radius))
	if err != nil {
		return insp, processingError(fmt.Errorf("segment detection: %w", err))
	}
	insp.Segments = segments
	if len(segments) == 0 {
		return insp, &Failure{Status: StatusNoHandsDetected, Err: ErrNoHands}
	}

	if err := ctx.Err(); err != nil {
		return insp, processingError(err)
	}

	candidates, usedFallback := FilterHands(segments, face, a.opts)
	insp.Candidates = candidates
	insp.UsedFallback = usedFallback
	band := a.opts.Primary
	if usedFallback {
		band = a.opts.Fallback
	}
	insp.Band = &band
	if len(candidates) == 0 {
		return insp, &Failure{Status: StatusNoValidHandCandidates, Err: ErrNoValidHands}
	}

	insp.Clusters = ClusterByAngle(candidates, a.opts.ClusterTolerance)
	minute, hour := ClassifyHands(insp.Clusters, a.opts)

	h, m, estimated := ComputeTime(*minute, hour)
	insp.Reading = &Reading{
		Hour:          h,
		Minute:        m,
		HourEstimated: estimated,
		UsedFallback:  usedFallback,
		Face:          face,
		MinuteHand:    *minute,
		HourHand:      hour,
	}
	return insp, nil
}
