package export

import (
	"context"
	"os"
	"path/filepath"
)

// DirUploader writes exported files under a local root directory.
type DirUploader struct {
	Root string
}

func (d DirUploader) Put(_ context.Context, key string, body []byte, _ string) error {
	dest := filepath.Join(d.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, body, 0o644)
}
