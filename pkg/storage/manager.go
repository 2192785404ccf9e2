package storage

import (
	"fmt"
	"sync"

	"github.com/orderdesk/delivery/config"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the disks from configuration. The local disk always exists;
// the s3 disk is booted when S3_BUCKET is set. Selecting s3 as the default
// without a working configuration is an error.
func Connect() error {
	RegisterDisk("local", NewLocalDisk(config.UploadsDir(), config.PublicURL()+"/uploads"))

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk(s3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			return err
		}
		RegisterDisk("s3", d)
	}

	name := config.StorageDefault()
	managerMu.RLock()
	_, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return fmt.Errorf("storage: default disk %q is not configured", name)
	}

	managerMu.Lock()
	defaultDisk = name
	managerMu.Unlock()
	return nil
}

// Use returns the named disk, or an error if it was never registered.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// RegisterDisk plugs in a Disk implementation under name.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default returns the disk selected by STORAGE_DISK. It panics if Connect
// has not registered it, which only happens on a startup bug.
func Default() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()

	d, err := Use(name)
	if err != nil {
		panic(err)
	}
	return d
}
