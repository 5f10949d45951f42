// Package storage holds product and site media behind a driver
// interface. Two drivers exist: "local" keeps files under a directory
// served by the app, "s3" targets any S3-compatible object store
// (AWS S3, MinIO, R2, Spaces). The active driver is chosen with
// STORAGE_DISK at boot.
//
//	storage.Connect()
//	storage.PutStream("uploads/products/frock.jpg", file)
//	url := storage.URL("uploads/products/frock.jpg")
package storage

import "io"

// Disk is the media store driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// URL returns the public URL the storefront embeds for path.
	URL(path string) string

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(path string) error
}
