package clock

import (
	"errors"
	"fmt"
)

// Empirically tuned heuristics. Ratios are fractions of the face radius, angles are degrees.
const (
	// DefaultMaskRatio shrinks the analysis disc to keep the rim out of the edge map.
	DefaultMaskRatio = 0.95

	DefaultPrimaryBaseMax = 0.22
	DefaultPrimaryTipMin  = 0.28
	DefaultPrimaryTipMax  = 0.92

	// Fallback band for clocks whose hands pivot through a hub offset from the true centre.
	DefaultFallbackBaseMax = 0.36
	DefaultFallbackTipMin  = 0.22
	DefaultFallbackTipMax  = 0.95

	// DefaultClusterTolerance is the largest angular distance merged into one cluster.
	DefaultClusterTolerance = 8.0

	// An hour hand must be more than DefaultHourSeparation from the minute hand,
	// or shorter than DefaultHourLengthRatio of it.
	DefaultHourSeparation  = 10.0
	DefaultHourLengthRatio = 0.9

	DefaultEdgeLow  = 50
	DefaultEdgeHigh = 150
)

// Band is one set of hand-filter thresholds, expressed as fractions of the face radius.
type Band struct {
	// BaseMax is the farthest the base endpoint may sit from the centre.
	BaseMax float64 `json:"base_max"`

	// TipMin and TipMax bound the tip distance from the centre (inclusive).
	TipMin float64 `json:"tip_min"`
	TipMax float64 `json:"tip_max"`
}

// Options carries every tunable constant of the pipeline.
type Options struct {
	MaskRatio float64

	Primary  Band
	Fallback Band

	ClusterTolerance float64
	HourSeparation   float64
	HourLengthRatio  float64

	EdgeLow  int
	EdgeHigh int
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MaskRatio: DefaultMaskRatio,
		Primary: Band{
			BaseMax: DefaultPrimaryBaseMax,
			TipMin:  DefaultPrimaryTipMin,
			TipMax:  DefaultPrimaryTipMax,
		},
		Fallback: Band{
			BaseMax: DefaultFallbackBaseMax,
			TipMin:  DefaultFallbackTipMin,
			TipMax:  DefaultFallbackTipMax,
		},
		ClusterTolerance: DefaultClusterTolerance,
		HourSeparation:   DefaultHourSeparation,
		HourLengthRatio:  DefaultHourLengthRatio,
		EdgeLow:          DefaultEdgeLow,
		EdgeHigh:         DefaultEdgeHigh,
	}
}

// Validate reports the first inconsistent setting.
func (o Options) Validate() error {
	if o.MaskRatio <= 0 || o.MaskRatio > 1 {
		return fmt.Errorf("mask ratio %.3f outside (0, 1]", o.MaskRatio)
	}
	if err := o.Primary.validate(); err != nil {
		return fmt.Errorf("primary band: %w", err)
	}
	if err := o.Fallback.validate(); err != nil {
		return fmt.Errorf("fallback band: %w", err)
	}
	if o.ClusterTolerance < 0 || o.ClusterTolerance >= 180 {
		return fmt.Errorf("cluster tolerance %.1f outside [0, 180)", o.ClusterTolerance)
	}
	if o.HourSeparation < 0 || o.HourSeparation >= 180 {
		return fmt.Errorf("hour separation %.1f outside [0, 180)", o.HourSeparation)
	}
	if o.HourLengthRatio <= 0 {
		return errors.New("hour length ratio must be positive")
	}
	if o.EdgeLow <= 0 || o.EdgeHigh < o.EdgeLow {
		return fmt.Errorf("edge thresholds %d/%d invalid", o.EdgeLow, o.EdgeHigh)
	}
	return nil
}

func (b Band) validate() error {
	if b.BaseMax <= 0 || b.TipMin <= 0 || b.TipMax <= 0 {
		return errors.New("ratios must be positive")
	}
	if b.TipMin > b.TipMax {
		return fmt.Errorf("tip min %.2f exceeds tip max %.2f", b.TipMin, b.TipMax)
	}
	return nil
}
