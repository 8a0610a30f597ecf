//go:build !gocv

package vision

import "github.com/ironsheep/clock-reader-mcp/internal/clock"

// NewOpenCV reports that this binary was built without the gocv tag.
func NewOpenCV() (clock.Vision, error) {
	return nil, ErrOpenCVUnavailable
}
