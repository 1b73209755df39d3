package data

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFixtureSizes(t *testing.T) {
	c := NewCleaner()
	c.AllowMissingDrops = true
	X, y, err := c.Clean(legacyFixture())
	require.NoError(t, err)

	s, err := TrainTestSplit(X, y, DefaultSplitConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, s.XTrain.Len())
	assert.Equal(t, 1, s.XTest.Len())
	assert.Len(t, s.YTrain, 3)
	assert.Len(t, s.YTest, 1)
}

func TestSplitPartitionsAreDisjointAndComplete(t *testing.T) {
	X, y := seqFeatures(53)
	s, err := TrainTestSplit(X, y, SplitConfig{TestRatio: 0.25, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, X.Len(), s.XTrain.Len()+s.XTest.Len())
	seen := map[int]bool{}
	for _, i := range append(append([]int{}, s.TrainIndex...), s.TestIndex...) {
		assert.False(t, seen[i], "row %d in both partitions", i)
		seen[i] = true
	}
	assert.Len(t, seen, X.Len())

	// X and y stay aligned inside each partition
	for k, i := range s.TrainIndex {
		assert.Equal(t, X.Rows[i], s.XTrain.Rows[k])
		assert.Equal(t, y[i], s.YTrain[k])
	}
	for k, i := range s.TestIndex {
		assert.Equal(t, X.Rows[i], s.XTest.Rows[k])
		assert.Equal(t, y[i], s.YTest[k])
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	X, y := seqFeatures(40)
	cfg := SplitConfig{TestRatio: 0.2, Seed: 1234}
	a, err := TrainTestSplit(X, y, cfg)
	require.NoError(t, err)
	b, err := TrainTestSplit(X, y, cfg)
	require.NoError(t, err)
	assert.Equal(t, rowIDs(a.XTest), rowIDs(b.XTest))
	assert.Equal(t, a.TrainIndex, b.TrainIndex)

	cfg.Stratify = true
	a, err = TrainTestSplit(X, y, cfg)
	require.NoError(t, err)
	b, err = TrainTestSplit(X, y, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.TestIndex, b.TestIndex)
}

func TestSplitStratifiedKeepsProportions(t *testing.T) {
	X := Features{Columns: []string{"v"}}
	var y Labels
	for i := 0; i < 100; i++ {
		X.Rows = append(X.Rows, []float64{float64(i)})
		if i < 10 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	s, err := TrainTestSplit(X, y, SplitConfig{TestRatio: 0.2, Seed: 3, Stratify: true})
	require.NoError(t, err)
	require.Len(t, s.YTest, 20)

	pos := 0
	for _, v := range s.YTest {
		pos += v
	}
	assert.Equal(t, 2, pos)

	idx := append(append([]int{}, s.TrainIndex...), s.TestIndex...)
	sort.Ints(idx)
	for i, v := range idx {
		assert.Equal(t, i, v)
	}
}

func TestSplitErrors(t *testing.T) {
	X, y := seqFeatures(1)
	_, err := TrainTestSplit(X, y, DefaultSplitConfig())
	assert.ErrorIs(t, err, ErrTooFewRows)

	X, y = seqFeatures(5)
	_, err = TrainTestSplit(X, y[:4], DefaultSplitConfig())
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = TrainTestSplit(X, y, SplitConfig{TestRatio: 1})
	assert.ErrorIs(t, err, ErrInvalidRatio)

	// one member of class 1 cannot be stratified
	_, err = TrainTestSplit(X, Labels{0, 0, 0, 0, 1}, SplitConfig{TestRatio: 0.2, Stratify: true})
	assert.ErrorIs(t, err, ErrTooFewRows)
}
