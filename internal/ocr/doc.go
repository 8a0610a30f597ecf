// Package ocr reads the printed numerals of a clock dial using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). It is used only
// by the clock_dial_numerals tool to confirm that a detected circle really is a
// dial; time reading never depends on it.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//
// Language data files are required for the configured language (default "eng").
//
// The Tesseract bindings are compiled only with cgo and the "tesseract" build tag
// (go build -tags tesseract). Other builds keep the preparation and parsing code
// but ReadDialNumerals returns ErrOCRUnavailable, so the rest of the server
// builds and tests without the C libraries.
//
// # Preparation
//
// The face bounding box is cropped, upscaled when small, converted to grayscale
// and sharpened before recognition. Recognition runs with a digit whitelist and
// sparse-text page segmentation, since dial numerals are isolated words scattered
// around a ring.
package ocr
