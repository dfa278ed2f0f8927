package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	values []uint32
	i      int
}

func (f *fakeSource) Micros() uint32 {
	v := f.values[f.i]
	if f.i < len(f.values)-1 {
		f.i++
	}
	return v
}

func TestExtendedNondecreasing(t *testing.T) {
	src := &fakeSource{values: []uint32{10, 20, 30, 5, 15, 4294967290, 3}}
	ext := NewExtended(src)

	var prev uint64
	for i := range src.values {
		src.i = i
		now := ext.Now()
		require.GreaterOrEqual(t, now, prev, "extended clock must never decrease")
		prev = now
	}
}

func TestExtendedComposesOverflow(t *testing.T) {
	src := &fakeSource{values: []uint32{100}}
	ext := NewExtended(src)
	require.Equal(t, uint64(100), ext.Now())

	src.values = []uint32{50}
	got := ext.Now()
	require.Equal(t, uint64(1)<<32|50, got)
}

func TestExtendedNoWrapWithinEpoch(t *testing.T) {
	src := &fakeSource{values: []uint32{0}}
	ext := NewExtended(src)
	require.Equal(t, uint64(0), ext.Now())

	src.values = []uint32{1000}
	require.Equal(t, uint64(1000), ext.Now())
}
