package atomic

import (
	"path/filepath"
	"strings"

	"github.com/moby/sys/mountinfo"
)

// MountPoint returns the mount point that contains path, i.e. the longest
// mount point that is a prefix of the cleaned absolute path.
func MountPoint(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	mounts, err := mountinfo.GetMounts(nil)
	if err != nil {
		return "", err
	}

	var best string
	for _, m := range mounts {
		if !within(abs, m.Mountpoint) {
			continue
		}
		if len(m.Mountpoint) > len(best) {
			best = m.Mountpoint
		}
	}
	return best, nil
}

// SameFilesystem reports whether a and b live under the same mount point.
// When mount information is unavailable it optimistically returns true;
// Move still falls back to copying on EXDEV.
func SameFilesystem(a, b string) bool {
	ma, err := MountPoint(a)
	if err != nil || ma == "" {
		return true
	}
	mb, err := MountPoint(b)
	if err != nil || mb == "" {
		return true
	}
	return ma == mb
}

func within(path, root string) bool {
	if root == "/" {
		return strings.HasPrefix(path, "/")
	}
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
