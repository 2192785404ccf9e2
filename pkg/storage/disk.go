// Package storage provides the image asset store.
//
// Two drivers are available:
//   - "local": a directory on the local filesystem, served under /uploads
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once with Connect, then use the default disk:
//
//	disk := storage.Default()
//	_ = disk.Put("1718000000-ab12.jpg", data)
//	url := disk.URL("1718000000-ab12.jpg")
package storage

import (
	"io"
)

// Disk is the filesystem driver interface. Paths are slash-separated and
// relative to the disk root.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

// Rooted is implemented by disks backed by a local directory that can be
// served with http.FileServer.
type Rooted interface {
	Root() string
}
