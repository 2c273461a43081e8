package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// DiskStore writes images under Dir; the router serves Dir at PublicPrefix.
type DiskStore struct {
	Dir          string
	PublicPrefix string
}

func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, PublicPrefix: publicPrefix}, nil
}

func (s *DiskStore) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := objectName(contentType)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.PublicPrefix, name), nil
}
