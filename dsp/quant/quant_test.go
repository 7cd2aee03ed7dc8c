package quant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultTable(t *testing.T) {
	q := Default()

	levels := q.Levels()
	mid := q.Midpoints()
	require.Len(t, levels, 129)
	require.Len(t, mid, 128)
	assert.Equal(t, 128, q.Size())

	assert.InDelta(t, -0.3, levels[0], 1e-12)
	assert.InDelta(t, -0.3+128*0.0047, levels[128], 1e-12)
	assert.InDelta(t, -0.3+0.0047/2, mid[0], 1e-12)
	for i := 1; i < len(mid); i++ {
		assert.InDelta(t, 0.0047, mid[i]-mid[i-1], 1e-12)
	}
}

func TestIndex(t *testing.T) {
	q := Default()
	mid := q.Midpoints()

	tests := []struct {
		name    string
		x       float64
		want    int
		clipped bool
	}{
		{"far below", -1, 1, false},
		{"below first midpoint", mid[0] - 1e-6, 1, false},
		{"on first midpoint", mid[0], 2, false},
		{"between", (mid[9] + mid[10]) / 2, 11, false},
		{"just below last", mid[127] - 1e-6, 128, false},
		{"on last midpoint", mid[127], 128, true},
		{"far above", 1, 128, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, clipped := q.IndexChecked(tc.x)
			if got != tc.want || clipped != tc.clipped {
				t.Fatalf("IndexChecked(%g) = (%d, %v), want (%d, %v)", tc.x, got, clipped, tc.want, tc.clipped)
			}
		})
	}
}

func TestEncodeCountsClipped(t *testing.T) {
	q := Default()
	indices, clipped := q.Encode([]float64{-0.5, 0, 0.5, 0.9})
	assert.Equal(t, 2, clipped)
	assert.Equal(t, 1, indices[0])
	assert.Equal(t, 128, indices[2])
	assert.Equal(t, 128, indices[3])
}

func TestValueAndDecode(t *testing.T) {
	q := Default()

	v, err := q.Value(1)
	require.NoError(t, err)
	assert.InDelta(t, q.Midpoints()[0], v, 0)

	_, err = q.Value(0)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = q.Value(129)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = q.Decode([]int{1, 200})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCodeword(t *testing.T) {
	tests := map[int]string{1: "1", 2: "10", 5: "101", 128: "10000000"}
	for idx, want := range tests {
		if got := Codeword(idx); got != want {
			t.Fatalf("Codeword(%d) = %q, want %q", idx, got, want)
		}
	}
}

func TestUniformErrors(t *testing.T) {
	_, err := Uniform(0, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidIncrement)
	_, err = Uniform(0, 0.1, 1)
	assert.ErrorIs(t, err, ErrTooFewLevels)
}

func TestIndexMonotone(t *testing.T) {
	q := Default()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(-1, 1).Draw(t, "a")
		b := rapid.Float64Range(-1, 1).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		ia, ib := q.Index(a), q.Index(b)
		assert.LessOrEqual(t, ia, ib)
		assert.GreaterOrEqual(t, ia, 1)
		assert.LessOrEqual(t, ib, q.Size())
	})
}

func TestQuantizationErrorBounded(t *testing.T) {
	q := Default()
	mid := q.Midpoints()
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(mid[0], mid[len(mid)-1]).Draw(t, "x")
		idx, clipped := q.IndexChecked(x)
		if clipped {
			return
		}
		v, err := q.Value(idx)
		require.NoError(t, err)
		// The chosen midpoint sits at most one spacing above x.
		assert.Greater(t, v, x)
		assert.LessOrEqual(t, v-x, DefaultIncrement+1e-12)
	})
}
