package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRotationRejectsEmpty(t *testing.T) {
	_, err := NewRotation([]string{})
	require.ErrorIs(t, err, ErrEmptySequence)
}

func TestAdvanceIsCyclic(t *testing.T) {
	for n := 1; n <= 6; n++ {
		items := make([]int, n)
		for start := 0; start < n; start++ {
			r, err := NewRotation(items)
			require.NoError(t, err)
			r.Advance(start)
			for i := 0; i < n; i++ {
				r.Advance(1)
			}
			assert.Equal(t, start, r.Index(), "len=%d start=%d", n, start)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	r, err := NewRotation([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Advance(-1))
	assert.Equal(t, "c", r.Current())
	assert.Equal(t, 0, r.Advance(1))
	assert.Equal(t, 1, r.Advance(7))
	assert.Equal(t, 2, r.Advance(-5))
}

func TestReplaceEmptyLeavesStateUntouched(t *testing.T) {
	r, err := NewRotation([]string{"a", "b", "c"})
	require.NoError(t, err)
	r.Advance(2)

	require.ErrorIs(t, r.Replace(nil), ErrEmptySequence)
	assert.Equal(t, 2, r.Index())
	assert.Equal(t, []string{"a", "b", "c"}, r.Items())
}

func TestReplaceResetsIndex(t *testing.T) {
	r, err := NewRotation([]string{"a", "b", "c"})
	require.NoError(t, err)
	r.Advance(2)

	require.NoError(t, r.Replace([]string{"x", "y"}))
	assert.Equal(t, 0, r.Index())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 1, r.Advance(-1))
}

func TestRotationCopiesInput(t *testing.T) {
	in := []string{"a", "b"}
	r, err := NewRotation(in)
	require.NoError(t, err)
	in[0] = "z"
	assert.Equal(t, "a", r.Current())
}
