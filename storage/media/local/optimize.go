package local

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Bounding box and encode settings for derived variants. Images are fit
// inside the box preserving aspect ratio and are never enlarged.
const (
	boundWidth  = 1920
	boundHeight = 1080
	jpegQuality = 85
	webpQuality = 85
)

// attemptOrFallback runs one derivation step and returns its URL, or the
// fallback URL when the step fails. This is the only place a derivation
// error is consumed; nothing past this point can fail an upload.
func attemptOrFallback(op string, filename string, fallbackURL string, step func() (string, error)) string {
	url, err := step()
	if err != nil {
		log.Printf("media: %s for %q failed, falling back: %v", op, filename, err)
		return fallbackURL
	}

	return url
}

// deriveVariants produces the optimized and WebP copies of a stored original
// and returns their URLs. Each step degrades independently: a failed resize
// leaves the original URL in both slots, a failed WebP encode aliases the
// optimized URL.
func (fs *StoreImpl) deriveVariants(inputPath string, filename string, originalURL string) (optimizedURL string, webpURL string) {
	optimizedURL = originalURL
	webpURL = originalURL

	if _, err := os.Stat(inputPath); err != nil {
		log.Printf("media: derivation skipped, %q not readable: %v", filename, err)
		return optimizedURL, webpURL
	}

	src, err := imaging.Open(inputPath)
	if err != nil {
		log.Printf("media: decode %q failed, serving original only: %v", filename, err)
		return optimizedURL, webpURL
	}

	resized := imaging.Fit(src, boundWidth, boundHeight, imaging.Lanczos)

	optimizedURL = attemptOrFallback("optimize", filename, originalURL, func() (string, error) {
		return fs.encodeOptimized(resized, filename)
	})

	webpURL = attemptOrFallback("webp encode", filename, optimizedURL, func() (string, error) {
		return fs.encodeWebP(resized, filename)
	})

	return optimizedURL, webpURL
}

// encodeOptimized re-encodes the resized image next to the original:
// JPEG at quality 85, PNG at best compression, anything else in its own
// format with no re-encode settings.
func (fs *StoreImpl) encodeOptimized(img image.Image, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	optimizedName := fmt.Sprintf("%s-opt%s", base, ext)
	optimizedPath := filepath.Join(fs.optimizedDir, optimizedName)

	var err error
	switch ext {
	case ".jpg", ".jpeg":
		err = imaging.Save(img, optimizedPath, imaging.JPEGQuality(jpegQuality))
	case ".png":
		err = imaging.Save(img, optimizedPath, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		err = imaging.Save(img, optimizedPath)
	}

	if err != nil {
		_ = os.Remove(optimizedPath)
		return "", err
	}

	return fs.optimizedURL(optimizedName), nil
}

func (fs *StoreImpl) encodeWebP(img image.Image, filename string) (string, error) {
	webpName := strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp"
	webpPath := filepath.Join(fs.optimizedDir, webpName)

	out, err := os.Create(webpPath)
	if err != nil {
		return "", err
	}

	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		out.Close()
		_ = os.Remove(webpPath)
		return "", err
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(webpPath)
		return "", err
	}

	return fs.optimizedURL(webpName), nil
}
