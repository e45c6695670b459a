//go:build linux || darwin || freebsd || netbsd || openbsd

package monitoring

import "golang.org/x/sys/unix"

// fsUsage reports the size and free space of the filesystem holding path.
func fsUsage(path string) (totalBytes uint64, freeBytes uint64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	bsize := uint64(stat.Bsize)
	return stat.Blocks * bsize, stat.Bavail * bsize
}
