package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scopekit/region"
)

// TestRunScript_NestedEscape replays the canonical nested-return sequence
// and checks the runtime lands in the expected state.
func TestRunScript_NestedEscape(t *testing.T) {
	script := `
# outer scope
enter
malloc v 64
enter
malloc x 24
ret x
exit
`
	rt := region.New(nil)
	var out bytes.Buffer
	require.NoError(t, runScript(rt, strings.NewReader(script), &out))

	s := rt.Stats()
	assert.Equal(t, uint32(1), rt.Depth())
	assert.Equal(t, 2, s.Allocs)
	assert.Equal(t, 1, s.Escaped)
	assert.Equal(t, 2, s.Reclaimed, "v and the demoted x both die at the outer exit")
	assert.Zero(t, s.TrackerLen)
}

// TestRunScript_ListOps verifies the dispatch-driven list commands.
func TestRunScript_ListOps(t *testing.T) {
	script := `
list xs
object o
append xs o
get xs 0
get xs 5
`
	rt := region.New(nil)
	var out bytes.Buffer
	require.NoError(t, runScript(rt, strings.NewReader(script), &out))

	assert.Contains(t, out.String(), "get xs[0] = 0x")
	assert.Contains(t, out.String(), "get xs[5] = <absent>")
}

// TestRunScript_Errors verifies bad scripts report with line context
// instead of crashing the tool.
func TestRunScript_Errors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "frob x", "unknown command"},
		{"unknown name", "ret ghost", "unknown name"},
		{"bad size", "malloc v twelve", "bad size"},
		{"unbalanced exit", "exit", "contract violation"},
		{"undersized malloc", "malloc v 8", "contract violation"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := region.New(nil)
			err := runScript(rt, strings.NewReader(tc.script), &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}
