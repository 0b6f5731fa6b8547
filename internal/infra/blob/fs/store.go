// Package fs implements the artifact store on the local filesystem.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"genepack/internal/blob/core"
)

// Store implements core.Store using the local filesystem. Keys map to
// relative file paths under the root, which is the artifact output directory
// consumed directly by downstream visualization tooling, so no sidecar files
// are written next to the artifacts.
type Store struct {
	root string
}

// DefaultRoot is the output directory used when none is configured.
const DefaultRoot = "./genes_optimized"

// New returns a filesystem-backed store rooted at path, creating the
// directory if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = DefaultRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &Store{root: root}, nil
}

// Driver returns the backend identifier.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Root returns the directory artifacts are written under.
func (s *Store) Root() string { return s.root }

// sanitizeKey forbids path traversal and absolute paths so a key can never
// escape the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("empty key")
	}
	if strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key contains '..'")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid absolute key")
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid key traversal")
	}
	return clean, nil
}

func (s *Store) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, k), nil
}

// Put writes the object, replacing any previous content under the key. The
// payload is staged to a temp file and renamed into place so readers never
// observe a half-written artifact.
func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return core.Info{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return core.Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	h := sha256.New()
	size, copyErr := io.Copy(io.MultiWriter(tmp, h), r)
	if copyErr != nil {
		_ = tmp.Close()
		return core.Info{}, copyErr
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return core.Info{}, err
	}
	if err := tmp.Close(); err != nil {
		return core.Info{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return core.Info{}, err
	}
	st, err := os.Stat(dataPath)
	if err != nil {
		return core.Info{}, err
	}
	return core.Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(h.Sum(nil)),
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: st.ModTime().UTC(),
	}, nil
}

// Get returns object metadata and a reader over its content.
func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return core.Info{}, nil, err
	}
	dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return core.Info{}, nil, err
	}
	return info, f, nil
}

// Head returns object metadata only.
func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return core.Info{}, err
	}
	st, err := os.Stat(dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.Info{}, fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
		}
		return core.Info{}, err
	}
	return core.Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()}, nil
}

// Delete removes the object, returning true if it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	dataPath, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(dataPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns objects under the prefix in key order. Temp staging files are
// excluded.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, core.Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func cloneMetadata(md map[string]string) map[string]string {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
