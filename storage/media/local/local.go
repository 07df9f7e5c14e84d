// Package local stores uploads on disk and derives optimized variants
// alongside them. Derivation is best effort: the original file is the
// correctness requirement, every transformed copy is a value-add that
// degrades to the original when it cannot be produced.
package local

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/storage/media"
	storageutil "github.com/mechtronglobal/backend/storage/util"
)

const optimizedSubdir = "optimized"

// StoreImpl persists uploaded images under a local directory tree:
// originals in the uploads dir, derived variants in uploads/optimized.
type StoreImpl struct {
	uploadsDir   string
	optimizedDir string
	publicPath   string
}

// NewLocalMediaStore creates the uploads directory tree if missing and
// returns a ready store. Directory creation happens once here, never per
// request.
func NewLocalMediaStore(cfg *config.LocalMediaStrategy) (*StoreImpl, error) {
	if cfg == nil {
		return nil, fmt.Errorf("local media config is nil")
	}

	optimizedDir := filepath.Join(cfg.UploadsDir, optimizedSubdir)
	for _, dir := range []string{cfg.UploadsDir, optimizedDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	return &StoreImpl{
		uploadsDir:   cfg.UploadsDir,
		optimizedDir: optimizedDir,
		publicPath:   strings.TrimRight(cfg.PublicPath, "/"),
	}, nil
}

// Save writes the original upload to disk, then derives an optimized copy and
// a WebP copy. A failed write of the original is an error; failed derivations
// only narrow which of the returned URLs are distinct.
func (fs *StoreImpl) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*media.StoredAsset, error) {
	filename := storageutil.UniqueFilename(header.Filename, header.Header.Get("Content-Type"), time.Now())
	absPath := filepath.Join(fs.uploadsDir, filename)

	// Filenames are timestamped, so a collision means two uploads hit the
	// same nanosecond. Re-suffix rather than overwrite.
	if _, err := os.Stat(absPath); err == nil {
		ext := filepath.Ext(filename)
		filename = fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filename, ext), uuid.New().String()[:8], ext)
		absPath = filepath.Join(fs.uploadsDir, filename)
	}

	outFile, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(outFile, file); err != nil {
		outFile.Close()
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if err := outFile.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	originalURL := fs.publicPath + "/" + filename
	optimizedURL, webpURL := fs.deriveVariants(absPath, filename, originalURL)

	return &media.StoredAsset{
		Filename:  filename,
		Original:  originalURL,
		Optimized: optimizedURL,
		WebP:      webpURL,
	}, nil
}

// Delete is unsupported: local assets are referenced by opaque URLs from
// content documents and are never removed through the upload API.
func (fs *StoreImpl) Delete(ctx context.Context, key string) error {
	return media.ErrNotConfigured
}

func (fs *StoreImpl) Kind() string {
	return config.MediaStrategyLocal
}

func (fs *StoreImpl) optimizedURL(filename string) string {
	return fs.publicPath + "/" + path.Join(optimizedSubdir, filename)
}
