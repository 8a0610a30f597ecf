package clock

import (
	"errors"
	"fmt"
)

// Status is the outcome of one analysis run.
type Status string

const (
	StatusOK                    Status = "OK"
	StatusNoFaceDetected        Status = "NoFaceDetected"
	StatusNoHandsDetected       Status = "NoHandsDetected"
	StatusNoValidHandCandidates Status = "NoValidHandCandidates"
	StatusProcessingError       Status = "ProcessingError"
)

// Message returns the human-readable text shown for a status.
func (s Status) Message() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoFaceDetected:
		return "No clock face detected"
	case StatusNoHandsDetected:
		return "No clock hands detected"
	case StatusNoValidHandCandidates:
		return "No valid hand-like lines found"
	default:
		return "Processing error"
	}
}

var (
	ErrNoFace       = errors.New("no clock face detected")
	ErrNoHands      = errors.New("no clock hands detected")
	ErrNoValidHands = errors.New("no valid hand-like lines found")
)

// Failure is a recoverable analysis outcome. Err is the sentinel for the geometric
// statuses, or the underlying cause for StatusProcessingError.
type Failure struct {
	Status Status
	Err    error
}

func (f *Failure) Error() string {
	if f.Status == StatusProcessingError {
		return fmt.Sprintf("processing error: %v", f.Err)
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// StatusOf maps an error returned by this package to its Status.
// A nil error is StatusOK; errors of unknown origin are StatusProcessingError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Status
	}
	return StatusProcessingError
}

func processingError(err error) *Failure {
	return &Failure{Status: StatusProcessingError, Err: err}
}
