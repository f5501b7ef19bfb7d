package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// DirSize calculates the total size of a directory tree,
// skipping entries it cannot access.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// FormatSize renders a byte count for display.
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// ShouldSkipDir reports whether a directory is off-limits for scanning.
func ShouldSkipDir(path string) bool {
	skip := []string{
		"/System/", "/usr/", "/bin/", "/sbin/", "/proc/", "/sys/",
		"/.git/", "/Applications/",
	}
	for _, pattern := range skip {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
