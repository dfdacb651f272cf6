package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"lmt-crm/config"
)

const galleryDir = "static/gallery"

// GalleryService keeps a local mirror of the agency's shared photo
// folder on Google Drive. Agents drop destination photography into the
// folder; a sync pulls each image down, normalizes it, and stores the
// result so the proposal builder can attach it without re-processing.
// Implements GalleryServiceInterface.
type GalleryService struct {
	client   *drive.Service
	folderID string
}

// NewGalleryService creates the Drive-backed gallery.
// credentialsPath should be the path to the Service Account JSON file.
func NewGalleryService(ctx context.Context, cfg config.DriveConfig) (*GalleryService, error) {
	client, err := drive.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &GalleryService{client: client, folderID: cfg.GalleryFolderID}, nil
}

// Ensure GalleryService implements GalleryServiceInterface
var _ GalleryServiceInterface = (*GalleryService)(nil)

// SyncFromDrive lists the gallery folder, downloads each image not yet
// mirrored locally, and normalizes it before saving. Per-file failures
// are collected, not fatal.
func (gs *GalleryService) SyncFromDrive(ctx context.Context) (int, int, int, []string, error) {
	log.Info().Str("folder", gs.folderID).Msg("🔄 starting gallery sync")

	if err := os.MkdirAll(galleryDir, 0755); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	files, err := gs.listImages(ctx)
	if err != nil {
		return 0, 0, 0, nil, err
	}

	total := len(files)
	downloaded := 0
	skipped := 0
	var errs []string

	for _, file := range files {
		name := localName(file.Name)
		path := filepath.Join(galleryDir, name)

		if _, err := os.Stat(path); err == nil {
			skipped++
			continue
		}

		data, err := gs.download(ctx, file.Id)
		if err != nil {
			msg := fmt.Sprintf("failed to download %s (%s): %v", file.Name, file.Id, err)
			log.Error().Msg("❌ " + msg)
			errs = append(errs, msg)
			continue
		}

		asset, err := NormalizeImage(ctx, data)
		if err != nil {
			msg := fmt.Sprintf("failed to normalize %s (%s): %v", file.Name, file.Id, err)
			log.Error().Msg("❌ " + msg)
			errs = append(errs, msg)
			continue
		}

		if err := os.WriteFile(path, asset.Data, 0644); err != nil {
			msg := fmt.Sprintf("failed to save %s: %v", name, err)
			log.Error().Msg("❌ " + msg)
			errs = append(errs, msg)
			continue
		}

		log.Info().Str("file", name).Int("width", asset.Width).Msg("✓ gallery image synced")
		downloaded++
	}

	log.Info().Int("total", total).Int("downloaded", downloaded).Int("skipped", skipped).
		Int("failed", len(errs)).Msg("🎉 gallery sync completed")
	return total, downloaded, skipped, errs, nil
}

// listImages pages through the folder and keeps only image files.
func (gs *GalleryService) listImages(ctx context.Context) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", gs.folderID)

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/webp": true,
	}

	var images []*drive.File
	pageToken := ""
	for {
		call := gs.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list gallery files: %w", err)
		}

		for _, file := range r.Files {
			if imageMimeTypes[strings.ToLower(file.MimeType)] {
				images = append(images, file)
			}
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return images, nil
}

func (gs *GalleryService) download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := gs.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// ListLocal returns the mirrored gallery filenames, sorted for stable
// presentation in the builder's picker.
func (gs *GalleryService) ListLocal() ([]string, error) {
	entries, err := os.ReadDir(galleryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read gallery directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jpg") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns one gallery image. The name is sanitized to its base so
// a crafted path cannot escape the gallery directory.
func (gs *GalleryService) Read(name string) ([]byte, error) {
	path := filepath.Join(galleryDir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery image %s: %w", name, err)
	}
	return data, nil
}

// localName converts any source extension to .jpg, the only format the
// normalizer emits.
func localName(driveName string) string {
	ext := filepath.Ext(driveName)
	return strings.TrimSuffix(driveName, ext) + ".jpg"
}
