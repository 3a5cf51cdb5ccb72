// Package model provides the leaf data types shared by every stage of the
// document reconstruction pipeline.
//
// # Fragments
//
// A [Fragment] is one atomic positioned text unit produced by native PDF
// extraction or OCR. Fragments are immutable once created and are owned by a
// [FragmentStore], which holds the raw fragment set and dimensions for every
// page of a source document:
//
//	store := model.NewFragmentStore()
//	store.AddPage(612, 792, fragments)
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - bounding box with union, intersection, and containment checks
//   - [Point] - 2D point
//
// Coordinates follow the PDF convention: the origin is the bottom-left corner
// of the page and Y increases upward.
//
// # Safe area
//
// A [SafeArea] is a page-normalized rectangle (coordinates in 0..1) that
// restricts which fragments participate in paragraph reconstruction. A
// fragment is included when the center of its bounding box lies inside the
// safe area:
//
//	safe := model.DefaultSafeArea()
//	if safe.Includes(frag, pageWidth, pageHeight) { ... }
package model
