//go:build !windows

package atomic

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// isSamePartition reports whether src and the directory that will receive
// dst have the same st_dev.
func isSamePartition(src, dst string) (bool, error) {
	a, err := device(src)
	if err != nil {
		return false, err
	}
	b, err := device(filepath.Dir(dst))
	if err != nil {
		return false, err
	}
	return a == b, nil
}

func device(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("%s: no device information", path)
	}
	return uint64(st.Dev), nil
}
