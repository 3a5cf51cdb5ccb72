package translate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Translator translates one text into the configured target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, text string) (string, error)

// Translate calls the wrapped function
func (f TranslatorFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Error reports a translation failure for one paragraph.
type Error struct {
	// Paragraph is the id of the paragraph that failed
	Paragraph uuid.UUID

	// Err is the underlying failure
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("translate: paragraph %s: %v", e.Paragraph, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
