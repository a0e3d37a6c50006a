package model

import (
	"context"
	"io"
)

// Storage persists binary attachments (original scan images).
type Storage interface {
	Upload(ctx context.Context, key string, contentType string, data []byte) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
