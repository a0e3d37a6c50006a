package model

import "context"

// TextExtractor turns image bytes into recognized text. Implementations may
// retry internally; the data slice must therefore be fully buffered and
// replayable.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, data []byte) (string, error)
}
