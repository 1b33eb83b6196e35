package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// ErrNotFound is returned by Read when no document is stored under the key.
var ErrNotFound = errors.New("store: document not found")

// Documents defines the persistence contract for small named documents, the
// durable equivalent of browser local storage.
type Documents interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Erase(key string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates Documents backed by diskv using the provided config.
func Load(cfg Config) (Documents, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *persistence) Write(key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if strings.HasPrefix(key, ".") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func validKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return errors.New("store: document key required")
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("store: invalid document key %q", key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("store: invalid document key %q", key)
	}
	return nil
}

// Documents are stored flat, one file per key, directly under the base path.
func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
