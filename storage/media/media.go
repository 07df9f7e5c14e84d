package media

import (
	"context"
	"errors"
	"mime/multipart"
)

// ErrNotConfigured is returned when an operation requires the remote strategy
// while the local strategy is active.
var ErrNotConfigured = errors.New("remote media storage is not configured")

// StoredAsset is the result of persisting one uploaded file. Original is
// always a retrievable URL. When a derived variant could not be produced its
// URL aliases the next best one: Optimized falls back to Original, WebP to
// Optimized.
type StoredAsset struct {
	Filename  string `json:"filename"`
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	WebP      string `json:"webp"`
}

// Variants returns the three variant URLs as the wire-level detail object.
type Variants struct {
	Original  string `json:"original"`
	Optimized string `json:"optimized"`
	WebP      string `json:"webp"`
}

func (a *StoredAsset) Variants() Variants {
	return Variants{Original: a.Original, Optimized: a.Optimized, WebP: a.WebP}
}

// Store persists uploaded images under one storage strategy.
type Store interface {
	// Save persists one file and returns its asset. Derivation failures
	// degrade to aliased URLs and never surface as errors; only a failure to
	// persist the original itself is an error.
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*StoredAsset, error)

	// Delete removes a previously stored asset by its strategy-specific key.
	// Stores that cannot delete return ErrNotConfigured.
	Delete(ctx context.Context, key string) error

	// Kind reports the strategy name carried in upload responses.
	Kind() string
}
