package seedrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDeterministic(t *testing.T) {
	for _, seed := range []int{1, 2, 42, 1337, 1 << 20, 1<<31 - 1} {
		assert.Equal(t, Next(seed), Next(seed), "seed %d", seed)
	}
}

func TestNextRange(t *testing.T) {
	for seed := 0; seed < 10000; seed++ {
		v := Next(seed)
		require.GreaterOrEqual(t, v, 0.0, "seed %d", seed)
		require.Less(t, v, 1.0, "seed %d", seed)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		seed int
		want int
	}{
		{name: "positive unchanged", seed: 7, want: 7},
		{name: "negative flipped", seed: -7, want: 7},
		{name: "zero becomes one", seed: 0, want: 1},
		{name: "large seed reduced", seed: 1 << 40, want: (1 << 40) % (1 << 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.seed))
		})
	}
}

func TestNextNegativeSeedMatchesPositive(t *testing.T) {
	assert.Equal(t, Next(12345), Next(-12345))
}

// Selecting one of ten buckets from sequential seeds should land in
// every bucket at a rate reasonably close to uniform; daily selection
// over a few thousand answers relies on this.
func TestNextRoughlyUniform(t *testing.T) {
	const n = 5000
	var buckets [10]int
	for seed := 1; seed <= n; seed++ {
		buckets[int(Next(seed)*10)]++
	}
	for i, c := range buckets {
		assert.Greater(t, c, n/10-200, "bucket %d", i)
		assert.Less(t, c, n/10+200, "bucket %d", i)
	}
}
