package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable returns 40 two-feature rows where the class is decided by the
// sign of the first feature; the second is noise-free filler.
func separable() ([][]float64, []int) {
	var X [][]float64
	var y []int
	for i := 0; i < 40; i++ {
		v := (float64(i) - 19.5) / 20
		X = append(X, []float64{v, float64(i%3) / 3})
		if v > 0 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return X, y
}

func allModels() []Model {
	return []Model{
		NewLogisticRegression(),
		NewKNN(3),
		NewDecisionTree(),
		NewRandomForest(),
		NewGradientBoosting(),
	}
}

func TestModelsLearnSeparableData(t *testing.T) {
	X, y := separable()
	probe := [][]float64{{-0.9, 0}, {-0.5, 0.3}, {0.5, 0.3}, {0.9, 0.6}}
	want := []int{0, 0, 1, 1}

	for _, m := range allModels() {
		t.Run(m.Name(), func(t *testing.T) {
			require.NoError(t, m.Fit(X, y))
			assert.Equal(t, want, m.Predict(probe))
			for _, p := range m.PredictProba(probe) {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		})
	}
}

func TestModelsRejectBadTrainingSets(t *testing.T) {
	for _, m := range allModels() {
		assert.ErrorIs(t, m.Fit(nil, nil), ErrEmptyTrainingSet, m.Name())
		assert.ErrorIs(t, m.Fit([][]float64{{1}, {2}}, []int{1}), ErrLengthMismatch, m.Name())
	}
}

func TestModelsTrainOnThreeRows(t *testing.T) {
	X := [][]float64{{55, 3, 49}, {38, 6, 81}, {40, 7, 63}}
	y := []int{0, 1, 0}
	for _, m := range allModels() {
		require.NoError(t, m.Fit(X, y), m.Name())
		assert.Len(t, m.Predict(X), 3, m.Name())
	}
}

func TestSeededEnsemblesAreReproducible(t *testing.T) {
	X, y := separable()
	a, b := NewRandomForest(), NewRandomForest()
	a.Seed, b.Seed = 11, 11
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.PredictProba(X), b.PredictProba(X))

	dt1, dt2 := NewDecisionTree(), NewDecisionTree()
	dt1.MaxThresholdsPerFe, dt2.MaxThresholdsPerFe = 4, 4
	require.NoError(t, dt1.Fit(X, y))
	require.NoError(t, dt2.Fit(X, y))
	assert.Equal(t, dt1.PredictProba(X), dt2.PredictProba(X))
}

func TestKNNClampsK(t *testing.T) {
	m := NewKNN(5)
	require.NoError(t, m.Fit([][]float64{{0}, {1}, {2}}, []int{1, 1, 0}))
	assert.InDelta(t, 2.0/3.0, m.PredictProba([][]float64{{0}})[0], 1e-9)
}

func TestGradientBoostingConstantFeaturesFallsBackToPrior(t *testing.T) {
	gb := NewGradientBoosting()
	X := [][]float64{{1}, {1}, {1}, {1}}
	require.NoError(t, gb.Fit(X, []int{1, 0, 0, 0}))
	assert.Empty(t, gb.Trees)
	assert.InDelta(t, 0.25, gb.PredictProba(X)[0], 1e-9)
}

func TestUnfittedEnsemblesAreUndecided(t *testing.T) {
	assert.Equal(t, []float64{0.5}, NewRandomForest().PredictProba([][]float64{{1}}))
	assert.Equal(t, []float64{0.5}, NewDecisionTree().PredictProba([][]float64{{1}}))
}
