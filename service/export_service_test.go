package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lmt-crm/config"
)

func TestFallbackPDFDrawsEveryPage(t *testing.T) {
	svc := NewExportService("http://localhost:8080", config.ExportConfig{TimeoutSeconds: 30})
	layout := testLayout(t)
	pages := layout.BuildPages(quotationModel())

	out, err := svc.fallbackPDF(pages)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "fallback must emit a valid PDF header")

	// One physical page per layout page: the page count is embedded in
	// the document catalog.
	assert.Contains(t, string(out), "/Count 4")
}

func TestDecodeInlineImage(t *testing.T) {
	raw, ok := decodeInlineImage("data:image/jpeg;base64,aGVsbG8=")
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), raw)

	_, ok = decodeInlineImage("https://example.com/photo.jpg")
	assert.False(t, ok, "remote URLs are not inline payloads")

	_, ok = decodeInlineImage("data:image/jpeg;base64,!!!not-base64!!!")
	assert.False(t, ok)
}

func TestDetectChromePathPrefersConfigured(t *testing.T) {
	// A configured path that does not exist falls through to the
	// common locations rather than being trusted blindly.
	svc := NewExportService("http://localhost:8080", config.ExportConfig{
		ChromePath:     "/definitely/not/here/chrome",
		TimeoutSeconds: 30,
	})
	path := svc.detectChromePath()
	assert.NotEqual(t, "/definitely/not/here/chrome", path)
}
