package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore is a filesystem-backed Store used in development and tests.
// Objects are written under Dir and referenced as BaseURL/<key>.png.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore creates the backing directory if needed and returns the store.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *LocalStore) Upload(_ context.Context, data []byte) (string, error) {
	key := uuid.New().String()
	path := filepath.Join(s.Dir, key+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media object: %w", err)
	}
	return s.BaseURL + "/" + key + ".png", nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	key := DeleteKey(ref)
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, key+".png"))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
