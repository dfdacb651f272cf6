package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 120, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestNormalizeImageScalesWideUploads(t *testing.T) {
	data := encodeJPEG(t, 2000, 1000)

	asset, err := NormalizeImage(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 1000, asset.Width)
	// Aspect ratio preserved within a pixel of rounding.
	assert.InDelta(t, 500, asset.Height, 1)
	assert.Equal(t, "image/jpeg", asset.MIME)

	decoded, format, err := image.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, asset.Width, decoded.Bounds().Dx())
}

func TestNormalizeImageKeepsSmallUploads(t *testing.T) {
	data := encodeJPEG(t, 640, 480)

	asset, err := NormalizeImage(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, 640, asset.Width)
	assert.Equal(t, 480, asset.Height)
}

func TestNormalizeImageCompositesTransparencyOnWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	// Fully transparent source.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	asset, err := NormalizeImage(context.Background(), buf.Bytes())
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(5, 5).RGBA()
	// JPEG round trip, so near-white rather than exact.
	assert.Greater(t, r>>8, uint32(250))
	assert.Greater(t, g>>8, uint32(250))
	assert.Greater(t, b>>8, uint32(250))
}

func TestNormalizeImageRejectsGarbage(t *testing.T) {
	_, err := NormalizeImage(context.Background(), []byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedImage))
}

func TestNormalizeImageHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NormalizeImage(ctx, encodeJPEG(t, 50, 50))
	require.Error(t, err)
}

func TestDataURI(t *testing.T) {
	data := encodeJPEG(t, 20, 20)
	asset, err := NormalizeImage(context.Background(), data)
	require.NoError(t, err)

	uri := DataURI(asset)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	raw, ok := decodeInlineImage(uri)
	require.True(t, ok)
	assert.Equal(t, asset.Data, raw)
}

func TestNormalizeImageCachedServesRepeatUploads(t *testing.T) {
	t.Chdir(t.TempDir())
	data := encodeJPEG(t, 2000, 1000)

	first, cached, err := NormalizeImageCached(context.Background(), data)
	require.NoError(t, err)
	assert.False(t, cached, "first upload runs the pipeline")

	second, cached, err := NormalizeImageCached(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, cached, "same original must be served from the cache")
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Width, second.Width)
	assert.Equal(t, first.Height, second.Height)
}

func TestAssetCachePathIsContentAddressed(t *testing.T) {
	a := AssetCachePath([]byte("photo-one"))
	b := AssetCachePath([]byte("photo-one"))
	c := AssetCachePath([]byte("photo-two"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}
