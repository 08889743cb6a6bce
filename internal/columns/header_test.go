package columns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntheticName(t *testing.T) {
	cases := map[int]string{
		0:  "a",
		1:  "b",
		25: "z",
		26: "aa",
		27: "bb",
		51: "zz",
		52: "aaa",
		99: "vvvv",
	}
	for i, want := range cases {
		require.Equal(t, want, SyntheticName(i), "index %d", i)
	}
}

func TestSyntheticHeaderHundredColumns(t *testing.T) {
	h := SyntheticHeader(100)
	require.True(t, h.Synthetic())
	require.Equal(t, 100, h.Len())
	names := h.Names()
	require.Equal(t, "a", names[0])
	require.Equal(t, "vvvv", names[99])
	require.True(t, strings.HasPrefix(strings.Join(names, ","), "a,b,c,"))
}

func TestHeaderLookupAndSelect(t *testing.T) {
	src := []string{"id", "name", "id"}
	h := NewHeader(src)
	src[0] = "changed"

	i, ok := h.Lookup("id")
	require.True(t, ok)
	require.Equal(t, 0, i)

	_, ok = h.Lookup("missing")
	require.False(t, ok)

	require.Equal(t, []string{"id", "id", "name"}, h.Select([]int{0, 2, 1}))
	require.Equal(t, "", h.Name(7))
	require.False(t, h.Synthetic())
}

func TestProjector(t *testing.T) {
	p := NewProjector([]int{2, 0, 2})
	require.Equal(t, 3, p.Width())
	require.Equal(t, []string{"c", "a", "c"}, p.Project([]string{"a", "b", "c"}))
	// short record under flexible mode
	require.Equal(t, []string{"", "x", ""}, p.Project([]string{"x"}))
}
