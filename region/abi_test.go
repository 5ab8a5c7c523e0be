package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scopekit/internal/format"
)

// TestABI_Lifecycle drives the package-level entry points through their
// whole lifecycle in one sequential test: the process-wide runtime is
// init-once state, so ordering matters and subtests would race it.
func TestABI_Lifecycle(t *testing.T) {
	require.Panics(t, func() { Enter() }, "use before Init is a contract violation")

	Init()
	require.Panics(t, func() { Init() }, "Init must run exactly once")

	Enter()
	v := Malloc(format.HeaderSize)
	o, err := Default().Object(v)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), o.Depth())

	Enter()
	x := Malloc(format.HeaderSize)
	x = Ret(x)
	o, err = Default().Object(x)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), o.Depth(), "Ret demoted x to the parent scope")

	Exit()
	assert.Equal(t, BaseDepth, Default().Depth())
	assert.False(t, Default().Live(v))
	assert.False(t, Default().Live(x))

	s := Default().Stats()
	assert.Equal(t, 2, s.Allocs)
	assert.Equal(t, 1, s.Escaped)
	assert.Zero(t, s.TrackerLen)
}
