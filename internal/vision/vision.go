// Package vision provides the low-level detectors behind clock.Vision.
//
// Two backends exist. The pure-Go backend is always available. The OpenCV backend
// wraps gocv and is compiled only with the "gocv" build tag, since it needs the
// OpenCV shared libraries at build and run time.
package vision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/clock-reader-mcp/internal/clock"
)

const (
	BackendPureGo = "purego"
	BackendOpenCV = "opencv"
)

// ErrOpenCVUnavailable is returned when the OpenCV backend is requested from a
// binary built without the gocv tag.
var ErrOpenCVUnavailable = errors.New("opencv backend not compiled in (build with -tags gocv)")

// New returns the backend named by name. An empty name selects the pure-Go backend.
func New(name string) (clock.Vision, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendPureGo:
		return NewPureGo(), nil
	case BackendOpenCV:
		return NewOpenCV()
	default:
		return nil, fmt.Errorf("unknown vision backend %q", name)
	}
}
