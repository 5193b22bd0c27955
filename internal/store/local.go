package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xxxsen/mauth/internal/model"
)

type localConfig struct {
	Path string `json:"path"`
}

type localStore struct {
	path string
}

func init() {
	Register("local", createLocalStore)
}

func createLocalStore(args interface{}) (Store, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Path == "" {
		return nil, fmt.Errorf("local store path is required")
	}
	return NewLocal(config.Path), nil
}

func NewLocal(path string) Store {
	return &localStore{path: path}
}

func (s *localStore) LoadAll(ctx context.Context) ([]model.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.User{}, nil
		}
		return nil, storageErr("read "+s.path, err)
	}
	users, err := decodeUsers(data)
	if err != nil {
		return nil, storageErr("decode "+s.path, err)
	}
	return users, nil
}

func (s *localStore) SaveAll(ctx context.Context, users []model.User) error {
	data, err := encodeUsers(users)
	if err != nil {
		return storageErr("encode users", err)
	}
	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return storageErr("write "+s.path, err)
	}
	return nil
}

// writeFileAtomic replaces path through a temp file in the same directory,
// so readers see either the old or the new collection.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".mauth-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
