// Package clock infers the time shown on an analog clock face from a grayscale image.
//
// The package owns the geometric inference pipeline. Low-level circle, edge and
// line-segment detection are delegated to a Vision implementation supplied by the
// caller; this package decides how their raw output is interpreted.
//
// # Pipeline
//
//  1. Circle Locator: the largest candidate circle is taken as the clock face.
//  2. Region Masker: analysis is restricted to a disc slightly smaller than the face
//     so the rim does not produce near-tangent line detections.
//  3. Line segments are requested from the Vision implementation.
//  4. Hand Candidate Filter: segments must pivot near the centre and stop short of the rim.
//     A relaxed threshold set is tried only when the primary set accepts nothing.
//  5. Angular Clustering: near-duplicate detections of one physical hand are merged.
//  6. Hand Classifier: the longest cluster is the minute hand, the next distinct one the hour hand.
//  7. Time Computation: hand angles become an hour (1-12) and a minute (0-59).
//  8. Overlay Description: drawable primitives describing what was detected.
//
// # Angles
//
// All hand angles are "angle-from-12": degrees measured clockwise from the
// 12 o'clock position, normalized into [0, 360). Pixel coordinates follow the
// standard image convention (origin top-left, Y increasing downward).
//
// # Failures
//
// Analysis never panics out to the caller. Failures are returned as *Failure values
// carrying a Status (NoFaceDetected, NoHandsDetected, NoValidHandCandidates or
// ProcessingError); use StatusOf to map any error to its Status.
//
// # Concurrency
//
// An Analyzer holds no mutable state. Analyze may be called concurrently; every
// invocation works on its own intermediate data.
package clock
