package controller

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"lmt-crm/service"
)

// GalleryController handles HTTP requests for the shared image gallery.
type GalleryController struct {
	gallery service.GalleryServiceInterface
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(gallery service.GalleryServiceInterface) *GalleryController {
	return &GalleryController{gallery: gallery}
}

// Sync handles POST /admin/gallery/sync
func (c *GalleryController) Sync(w http.ResponseWriter, r *http.Request) {
	total, downloaded, skipped, errs, err := c.gallery.SyncFromDrive(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("❌ gallery sync failed")
		http.Error(w, "gallery sync failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"downloaded": downloaded,
		"skipped":    skipped,
		"errors":     errs,
	})
}

// List handles GET /admin/gallery
func (c *GalleryController) List(w http.ResponseWriter, r *http.Request) {
	names, err := c.gallery.ListLocal()
	if err != nil {
		http.Error(w, "failed to list gallery", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": names})
}

// GetImage handles GET /admin/gallery/:name
func (c *GalleryController) GetImage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/admin/gallery/")
	data, err := c.gallery.Read(name)
	if err != nil {
		http.Error(w, "image not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
