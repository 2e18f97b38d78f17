// Package storage persists uploaded files (company logos, business
// branding) and hands back URLs the web app can serve.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/speedisha/speedisha/internal/config"
)

// Provider stores an uploaded blob under a key and returns its public
// URL.
type Provider interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, key string) error
}

// Key builds a storage key from path segments, slugifying the final
// filename segment while preserving its extension.
func Key(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	ext := strings.ToLower(filepath.Ext(last))
	base := slug.Make(strings.TrimSuffix(last, ext))
	if base == "" {
		base = "file"
	}
	segments[len(segments)-1] = base + ext
	return path.Join(segments...)
}

// Filesystem stores uploads under a local directory served at
// /uploads/. Suitable for single-node deployments; the Provider
// interface leaves room for an object store behind the same call sites.
type Filesystem struct {
	root string
	log  *zap.Logger
}

func NewFilesystem(cfg config.Config, log *zap.Logger) (*Filesystem, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Filesystem{root: cfg.UploadDir, log: log}, nil
}

func (f *Filesystem) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	full, err := f.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	f.log.Debug("stored upload",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)
	return "/uploads/" + key, nil
}

func (f *Filesystem) Remove(ctx context.Context, key string) error {
	full, err := f.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// resolve rejects keys that would escape the upload root.
func (f *Filesystem) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(f.root, clean), nil
}

var Module = fx.Module("storage",
	fx.Provide(
		fx.Annotate(NewFilesystem, fx.As(new(Provider))),
	),
)
