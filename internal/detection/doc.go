// Package detection provides pure-Go circle and line-segment detectors.
//
// These are the low-level vision primitives the clock pipeline consumes when
// OpenCV is not available. They report raw detections only; deciding which
// circle is a clock face or which segment is a hand happens elsewhere.
//
// # Detectors
//
//   - Circles: Hough gradient transform (edge pixels vote along their gradient)
//   - Segments: progressive probabilistic Hough transform over a binary edge map
//
// # Algorithm Overview
//
// Both detectors follow a similar pipeline:
//
//  1. Edge Pixels: Canny edges (circles) or a caller-supplied edge map (segments)
//  2. Accumulator Voting: centre votes or (rho, theta) votes
//  3. Peak Extraction: local maxima above a vote threshold
//  4. Refinement: radius estimation, or tracing the segment through the edge map
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Results are in absolute coordinates of the input image's bounds
//
// # Determinism
//
// The segment detector visits edge pixels in a pseudo-random order drawn from a
// fixed seed, so repeated calls on the same input return identical segments.
//
// # Limitations
//
// The detectors work best on reasonably clean images. Heavy texture behind the
// dial produces many spurious segments; strong perspective turns the face into an
// ellipse that the circle transform only partially supports.
package detection
