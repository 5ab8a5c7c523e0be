// Package format houses the binary layout of the runtime object header and
// the list payload. The layout is the ABI surface generated code links
// against: field order, widths, and byte order are frozen. All multi-byte
// fields are little-endian; the target word size is 64 bits.
package format

import "fmt"

const (
	// DepthOffset is the offset of the 32-bit scope depth stamp.
	// Layout of the common object header:
	//   0x00  4  depth (uint32); 0 is the escape sentinel, live scopes start at 1
	//   0x04  4  reserved, must be zero (alignment pad)
	//   0x08  8  reference count (word-sized unsigned)
	//   0x10  8  dispatch table ID (0 = no table)
	DepthOffset = 0x00

	// ReservedOffset is the alignment pad between the depth and the
	// reference count. Writers must leave it zero.
	ReservedOffset = 0x04

	// RefCountOffset is the offset of the word-sized reference count.
	RefCountOffset = 0x08

	// DispatchOffset is the offset of the dispatch table ID. The ID stands
	// in for the nullable table pointer of the C layout; ID 0 means nil.
	DispatchOffset = 0x10

	// HeaderSize is the total size of the common object header in bytes.
	// Every heap block handed out by the allocator begins with one.
	HeaderSize = 0x18
)

// CheckHeader reports an error when b cannot hold a full object header.
func CheckHeader(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("header: %w: have=%d need=%d", ErrTruncated, len(b), HeaderSize)
	}
	return nil
}

// ReadDepth reads the scope depth stamp from a block's header.
func ReadDepth(b []byte) uint32 { return ReadU32(b, DepthOffset) }

// PutDepth writes the scope depth stamp into a block's header.
func PutDepth(b []byte, v uint32) { PutU32(b, DepthOffset, v) }

// ReadRefCount reads the reference count from a block's header.
func ReadRefCount(b []byte) uint64 { return ReadU64(b, RefCountOffset) }

// PutRefCount writes the reference count into a block's header.
func PutRefCount(b []byte, v uint64) { PutU64(b, RefCountOffset, v) }

// ReadDispatch reads the dispatch table ID from a block's header.
func ReadDispatch(b []byte) uint64 { return ReadU64(b, DispatchOffset) }

// PutDispatch writes the dispatch table ID into a block's header.
func PutDispatch(b []byte, v uint64) { PutU64(b, DispatchOffset, v) }
