//go:build ocr

// Package ocr recovers positioned text fragments from scanned page images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/folio/model"

	// Register decoders for the image formats scanners commonly produce
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, BMP, WebP).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeFragments performs OCR on one page image and returns a fragment
// per recognized text line, with coordinates scaled to the given page size
// in points. Image pixel coordinates grow downward; fragment coordinates
// grow upward, so the boxes are flipped during conversion.
func (c *Client) RecognizeFragments(imageData []byte, pageWidth, pageHeight float64) ([]model.Fragment, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decoding image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("degenerate image %dx%d", cfg.Width, cfg.Height)
	}

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	scaleX := pageWidth / float64(cfg.Width)
	scaleY := pageHeight / float64(cfg.Height)

	var fragments []model.Fragment
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		r := box.Box
		fragments = append(fragments, model.Fragment{
			Text: text,
			BBox: model.BBox{
				X:      float64(r.Min.X) * scaleX,
				Y:      pageHeight - float64(r.Max.Y)*scaleY,
				Width:  float64(r.Dx()) * scaleX,
				Height: float64(r.Dy()) * scaleY,
			},
			Confidence: box.Confidence,
		})
	}
	return fragments, nil
}
