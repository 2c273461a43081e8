package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ImageStore persists a processed candidate portrait and returns the URL
// clients should use to fetch it.
type ImageStore interface {
	Save(ctx context.Context, data []byte, contentType string) (string, error)
}

func objectName(contentType string) string {
	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/gif":
		ext = ".gif"
	}
	return fmt.Sprintf("candidate-%s%s", uuid.NewString(), ext)
}
