package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestList_LayoutFrozen pins the list payload ABI.
func TestList_LayoutFrozen(t *testing.T) {
	assert.Equal(t, 0x00, ListLenOffset)
	assert.Equal(t, 0x08, ListCapOffset)
	assert.Equal(t, 0x10, ListElemsOffset)
	assert.Equal(t, 0x18, ListPayloadSize)
	assert.Equal(t, 8, ListElemSize)
}

// TestList_PayloadRoundTrip verifies the three payload fields are
// independent.
func TestList_PayloadRoundTrip(t *testing.T) {
	p := make([]byte, ListPayloadSize)

	PutListLen(p, 3)
	PutListCap(p, 16)
	PutListElems(p, 0x0000000100000002)

	assert.Equal(t, uint64(3), ReadListLen(p))
	assert.Equal(t, uint64(16), ReadListCap(p))
	assert.Equal(t, uint64(0x0000000100000002), ReadListElems(p))

	PutListLen(p, 4)
	assert.Equal(t, uint64(16), ReadListCap(p), "neighbors unaffected")
}
