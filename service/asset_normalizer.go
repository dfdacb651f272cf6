package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"lmt-crm/metrics"
	"lmt-crm/models"
)

// ErrUnsupportedImage is returned when the uploaded bytes cannot be
// decoded as a raster image.
var ErrUnsupportedImage = errors.New("unsupported image format")

const (
	// maxAssetWidth bounds embedded photography so PDF rasterization
	// stays within budget. Wider uploads are scaled down to this width.
	maxAssetWidth = 1000

	// assetQuality is the JPEG re-encode quality. Deliberate size over
	// fidelity tradeoff: keeps typical travel photos under ~200KB.
	assetQuality = 75

	assetCacheDir = "cache/assets"
)

// NormalizeImage converts an arbitrary raster upload into a bounded,
// white-backed JPEG payload safe to embed in a proposal and rasterize
// at export time. The pipeline is decode -> proportional resize ->
// composite on white -> re-encode; ctx is checked between stages since
// large uploads run well past a UI frame budget.
func NormalizeImage(ctx context.Context, data []byte) (*models.NormalizedAsset, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		metrics.NormalizationsTotal.WithLabelValues("unsupported").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	log.Debug().Str("format", format).Stringer("bounds", img.Bounds()).Msg("asset decoded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Only the width threshold triggers a resize; aspect ratio is
	// preserved exactly by letting imaging derive the height.
	if width > maxAssetWidth {
		img = imaging.Resize(img, maxAssetWidth, 0, imaging.Lanczos)
		log.Debug().
			Int("fromWidth", width).Int("fromHeight", height).
			Int("toWidth", img.Bounds().Dx()).Int("toHeight", img.Bounds().Dy()).
			Msg("asset resized")
		width = img.Bounds().Dx()
		height = img.Bounds().Dy()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Transparent sources would rasterize with undefined backgrounds in
	// the PDF stage; compose onto opaque white first.
	canvas := imaging.New(width, height, color.White)
	canvas = imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: assetQuality}); err != nil {
		metrics.NormalizationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to encode asset: %w", err)
	}

	metrics.NormalizationsTotal.WithLabelValues("ok").Inc()
	log.Info().Int("width", width).Int("height", height).Int("bytes", buf.Len()).
		Msg("✓ asset normalized")

	return &models.NormalizedAsset{
		Width:  width,
		Height: height,
		MIME:   "image/jpeg",
		Data:   buf.Bytes(),
	}, nil
}

// NormalizeImageCached consults the content-addressed cache before
// running the pipeline. Re-uploads of the same original skip decode and
// resize entirely; the bool reports whether the cache served the asset.
func NormalizeImageCached(ctx context.Context, data []byte) (*models.NormalizedAsset, bool, error) {
	path := AssetCachePath(data)
	if cached, ok := ReadCachedAsset(path); ok {
		if cfg, err := jpeg.DecodeConfig(bytes.NewReader(cached)); err == nil {
			metrics.NormalizationsTotal.WithLabelValues("cache_hit").Inc()
			log.Debug().Str("path", path).Msg("🔄 asset cache hit")
			return &models.NormalizedAsset{
				Width:  cfg.Width,
				Height: cfg.Height,
				MIME:   "image/jpeg",
				Data:   cached,
			}, true, nil
		}
		// Unreadable cache entry: fall through and regenerate it.
	}

	asset, err := NormalizeImage(ctx, data)
	if err != nil {
		return nil, false, err
	}
	if err := CacheAsset(path, asset.Data); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("asset cache write failed")
	}
	return asset, false, nil
}

// DataURI renders the asset as a self-contained embeddable payload.
func DataURI(a *models.NormalizedAsset) string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIME, base64.StdEncoding.EncodeToString(a.Data))
}

// AssetCachePath keys a normalized payload by content hash of the
// original upload, so re-uploads of the same photo skip the pipeline.
func AssetCachePath(original []byte) string {
	sum := sha256.Sum256(original)
	return filepath.Join(assetCacheDir, fmt.Sprintf("%x.jpg", sum[:8]))
}

// ReadCachedAsset returns the cached normalized payload, if present.
func ReadCachedAsset(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheAsset stores a normalized payload for future uploads of the
// same original.
func CacheAsset(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create asset cache directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write asset cache: %w", err)
	}
	log.Debug().Str("path", path).Msg("asset cached")
	return nil
}
