// Package translate fills paragraph translation slots through a pluggable
// [Translator] backend.
//
// The built-in [Client] talks to an HTTP translation endpoint and tolerates
// the response field variations common across hosted translators. [Apply]
// drives a whole document: it reads the untranslated body paragraphs, calls
// the backend outside the document lock, and writes each result back
// atomically. Results for paragraphs that no longer exist, because the
// layout was rebuilt mid-flight, are discarded.
package translate
