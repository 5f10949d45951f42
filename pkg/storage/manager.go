package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the media store. The local driver is always
// available; the s3 driver registers only when S3_BUCKET is set, so a
// missing bucket config degrades to local files instead of failing
// the boot.
func Connect() {
	defaultDisk = config.Get("STORAGE_DISK", "local")

	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named driver ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk, used by tests to swap in an
// in-memory store.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Package-level helpers proxy to the STORAGE_DISK driver.

func defaultD() Disk { return Use(defaultDisk) }

// Put writes content to path on the active driver.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the active driver.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the active driver.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// GetStream returns a ReadCloser from the active driver.
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

// Exists reports whether path exists on the active driver.
func Exists(path string) bool { return defaultD().Exists(path) }

// Size returns the file size in bytes on the active driver.
func Size(path string) (int64, error) { return defaultD().Size(path) }

// Delete removes path from the active driver.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the active driver.
func URL(path string) string { return defaultD().URL(path) }
