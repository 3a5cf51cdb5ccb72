// Package folio provides a fluent API for reconstructing an interactive
// paragraph model from positioned text fragments.
//
// Basic usage:
//
//	store := model.NewFragmentStore()
//	store.AddPage(width, height, fragments)
//
//	doc, err := folio.FromFragments(store).Document()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	doc, err := folio.FromFragments(store).
//	    SafeArea(model.SafeArea{X0: 0.1, Y0: 0.1, X1: 0.9, Y1: 0.9}).
//	    GapFactor(1.8).
//	    Document()
//
// For advanced use cases, the lower-level layout and document packages are
// also available.
package folio

import (
	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// DocumentBuilder accumulates configuration for building a document.
// Create one with FromFragments, chain options, then call Document().
type DocumentBuilder struct {
	store  *model.FragmentStore
	safe   model.SafeArea
	config layout.BuilderConfig
}

// FromFragments starts a builder over a populated fragment store.
func FromFragments(store *model.FragmentStore) *DocumentBuilder {
	return &DocumentBuilder{
		store:  store,
		safe:   model.DefaultSafeArea(),
		config: layout.DefaultBuilderConfig(),
	}
}

// SafeArea sets the content region used for reconstruction.
func (b *DocumentBuilder) SafeArea(safe model.SafeArea) *DocumentBuilder {
	b.safe = safe
	return b
}

// Config replaces the full clustering configuration.
func (b *DocumentBuilder) Config(config layout.BuilderConfig) *DocumentBuilder {
	b.config = config
	return b
}

// GapFactor overrides the paragraph-break threshold multiplier.
func (b *DocumentBuilder) GapFactor(factor float64) *DocumentBuilder {
	b.config.GapFactor = factor
	return b
}

// ClassifyBands toggles default header/footer classification.
func (b *DocumentBuilder) ClassifyBands(enabled bool) *DocumentBuilder {
	b.config.ClassifyBands = enabled
	return b
}

// Document runs layout reconstruction and returns the interactive document.
func (b *DocumentBuilder) Document() (*document.Document, error) {
	return document.New(b.store, b.safe, b.config)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := folio.Must(folio.FromFragments(store).Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
