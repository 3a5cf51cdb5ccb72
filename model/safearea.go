package model

import "errors"

// ErrInvalidRegion is returned when a safe area rectangle is degenerate or
// extends outside the page bounds.
var ErrInvalidRegion = errors.New("model: invalid safe area rectangle")

// SafeArea is a page-normalized rectangle restricting which fragments are
// considered for paragraph reconstruction. Coordinates are in the range 0..1
// with Y increasing upward; the same rectangle applies to every page of a
// document.
type SafeArea struct {
	X0 float64 `json:"x0" yaml:"x0"` // Left edge
	Y0 float64 `json:"y0" yaml:"y0"` // Bottom edge
	X1 float64 `json:"x1" yaml:"x1"` // Right edge
	Y1 float64 `json:"y1" yaml:"y1"` // Top edge
}

// DefaultSafeArea returns the default content region, which excludes typical
// header, footer, and binding margins.
func DefaultSafeArea() SafeArea {
	return SafeArea{X0: 0.15, Y0: 0.08, X1: 0.85, Y1: 0.92}
}

// FullPage returns a safe area covering the entire page.
func FullPage() SafeArea {
	return SafeArea{X0: 0, Y0: 0, X1: 1, Y1: 1}
}

// Validate reports whether the safe area is a usable region. It returns
// ErrInvalidRegion for degenerate rectangles and for coordinates outside the
// normalized page bounds.
func (s SafeArea) Validate() error {
	if s.X0 < 0 || s.Y0 < 0 || s.X1 > 1 || s.Y1 > 1 {
		return ErrInvalidRegion
	}
	if s.X0 >= s.X1 || s.Y0 >= s.Y1 {
		return ErrInvalidRegion
	}
	return nil
}

// Rect converts the normalized safe area to page coordinates.
func (s SafeArea) Rect(pageWidth, pageHeight float64) BBox {
	return BBox{
		X:      s.X0 * pageWidth,
		Y:      s.Y0 * pageHeight,
		Width:  (s.X1 - s.X0) * pageWidth,
		Height: (s.Y1 - s.Y0) * pageHeight,
	}
}

// Includes reports whether a fragment is eligible for paragraph membership:
// the center of its bounding box must lie inside the safe area.
func (s SafeArea) Includes(f Fragment, pageWidth, pageHeight float64) bool {
	if pageWidth <= 0 || pageHeight <= 0 {
		return false
	}
	return s.Rect(pageWidth, pageHeight).Contains(f.BBox.Center())
}
