package format

// List payload layout. The payload immediately follows the common object
// header inside a list block:
//
//	0x00  8  length (number of stored elements)
//	0x08  8  capacity (element slots in the element buffer)
//	0x10  8  element buffer handle (separate arena block)
//
// Elements are 8-byte handles stored contiguously in the element buffer.
const (
	// ListLenOffset is the offset of the element count within the payload.
	ListLenOffset = 0x00

	// ListCapOffset is the offset of the capacity within the payload.
	ListCapOffset = 0x08

	// ListElemsOffset is the offset of the element buffer handle.
	ListElemsOffset = 0x10

	// ListPayloadSize is the size of a list's payload in bytes.
	ListPayloadSize = 0x18

	// ListElemSize is the size of one stored element (a handle) in bytes.
	ListElemSize = 8
)

// ReadListLen reads the element count from a list payload.
func ReadListLen(p []byte) uint64 { return ReadU64(p, ListLenOffset) }

// PutListLen writes the element count into a list payload.
func PutListLen(p []byte, v uint64) { PutU64(p, ListLenOffset, v) }

// ReadListCap reads the capacity from a list payload.
func ReadListCap(p []byte) uint64 { return ReadU64(p, ListCapOffset) }

// PutListCap writes the capacity into a list payload.
func PutListCap(p []byte, v uint64) { PutU64(p, ListCapOffset, v) }

// ReadListElems reads the element buffer handle from a list payload.
func ReadListElems(p []byte) uint64 { return ReadU64(p, ListElemsOffset) }

// PutListElems writes the element buffer handle into a list payload.
func PutListElems(p []byte, v uint64) { PutU64(p, ListElemsOffset, v) }
