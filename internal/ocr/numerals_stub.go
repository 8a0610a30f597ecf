//go:build !cgo || !tesseract

package ocr

import "image"

// recognizeWords reports that this binary was built without Tesseract.
func recognizeWords(image.Image, string) ([]word, error) {
	return nil, ErrOCRUnavailable
}
