//go:build !unix

package arena

// mapChunk falls back to ordinary heap allocation on platforms without
// anonymous mmap support.
func mapChunk(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// unmapChunk is a no-op for heap-backed chunks; the GC reclaims them.
func unmapChunk(b []byte) error { return nil }
