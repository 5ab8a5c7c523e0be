//go:build unix

package arena

import "golang.org/x/sys/unix"

// mapChunk reserves size bytes of zeroed, anonymous, private memory.
func mapChunk(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

// unmapChunk returns a chunk obtained from mapChunk to the OS.
func unmapChunk(b []byte) error {
	if b == nil {
		return nil
	}
	return unix.Munmap(b)
}
