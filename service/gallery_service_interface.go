package service

import "context"

// GalleryServiceInterface defines the contract for the shared image
// gallery backing the proposal builder.
type GalleryServiceInterface interface {
	// SyncFromDrive pulls every image from the configured Drive folder,
	// normalizes it, and stores it in the local gallery.
	// Returns: total images found, downloaded count, skipped count,
	// list of per-file errors, and error if fatal.
	SyncFromDrive(ctx context.Context) (int, int, int, []string, error)

	// ListLocal returns the gallery image filenames currently on disk.
	ListLocal() ([]string, error)

	// Read returns the bytes of one gallery image by filename.
	Read(name string) ([]byte, error)
}
