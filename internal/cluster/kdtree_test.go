package cluster

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTree_RangeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	entries := randomEntries(rng, 200)

	tree := newKDTree(entries, 8)

	for i := 0; i < 20; i++ {
		minX := rng.Float64() * 0.8
		minY := rng.Float64() * 0.8
		maxX := minX + rng.Float64()*0.2
		maxY := minY + rng.Float64()*0.2

		got := tree.Range(minX, minY, maxX, maxY)

		var expected []int
		for j, e := range tree.entries {
			if e.x >= minX && e.x <= maxX && e.y >= minY && e.y <= maxY {
				expected = append(expected, j)
			}
		}

		sort.Ints(got)
		assert.Equal(t, expected, got)
	}
}

func TestKDTree_WithinMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	entries := randomEntries(rng, 200)

	tree := newKDTree(entries, 8)

	for i := 0; i < 20; i++ {
		x := rng.Float64()
		y := rng.Float64()
		r := rng.Float64() * 0.15

		got := tree.Within(x, y, r)

		var expected []int
		for j, e := range tree.entries {
			if sqDist(e.x, e.y, x, y) <= r*r {
				expected = append(expected, j)
			}
		}

		sort.Ints(got)
		assert.Equal(t, expected, got)
	}
}

func TestKDTree_DeterministicQueryOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	entries := randomEntries(rng, 150)

	tree := newKDTree(entries, 8)

	first := tree.Range(0.2, 0.2, 0.8, 0.8)
	second := tree.Range(0.2, 0.2, 0.8, 0.8)

	require.Equal(t, first, second)
}

func TestKDTree_Empty(t *testing.T) {
	tree := newKDTree(nil, 8)

	assert.Empty(t, tree.Range(0, 0, 1, 1))
	assert.Empty(t, tree.Within(0.5, 0.5, 0.5))
}

func TestKDTree_SingleEntry(t *testing.T) {
	entries := []entry{{x: 0.5, y: 0.5, numPoints: 1}}
	tree := newKDTree(entries, 8)

	assert.Equal(t, []int{0}, tree.Range(0.4, 0.4, 0.6, 0.6))
	assert.Empty(t, tree.Range(0.6, 0.6, 0.9, 0.9))
	assert.Equal(t, []int{0}, tree.Within(0.5, 0.5, 0.01))
}

// Helper to build random level entries inside the unit square
func randomEntries(rng *rand.Rand, n int) []entry {
	entries := make([]entry, n)
	for i := range entries {
		entries[i] = entry{
			x:         rng.Float64(),
			y:         rng.Float64(),
			zoom:      zoomInfinity,
			source:    i,
			parent:    -1,
			numPoints: 1,
		}
	}
	return entries
}
