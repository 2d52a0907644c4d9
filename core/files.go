package core

import (
	"context"
	"io"
)

// FileStorage stores uploaded documents and hands back a public URL to keep
// on the owning entity.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
