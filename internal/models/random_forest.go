package models

import (
	"math"
	"math/rand"
)

type RandomForest struct {
	NEstimators        int
	MaxDepth           int
	MinSamples         int
	MaxThresholdsPerFe int
	MaxFeatures        int
	Seed               int64
	Trees              []*DecisionTree
}

func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 100, MaxDepth: 8, MinSamples: 2, MaxThresholdsPerFe: 32}
}

func (rf *RandomForest) Name() string { return "RandomForest" }

func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if rf.NEstimators <= 0 {
		rf.NEstimators = 100
	}
	nFeats := len(X[0])
	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Max(1, math.Sqrt(float64(nFeats))))
	}

	rng := rand.New(rand.NewSource(rf.Seed))
	rf.Trees = make([]*DecisionTree, 0, rf.NEstimators)
	for k := 0; k < rf.NEstimators; k++ {
		Xb, yb := bootstrap(X, y, rng)
		dt := &DecisionTree{
			MaxDepth:           rf.MaxDepth,
			MinSamplesSplit:    rf.MinSamples,
			MaxThresholdsPerFe: rf.MaxThresholdsPerFe,
			MaxFeatures:        maxFeatures,
		}
		dt.fit(Xb, yb, rng)
		rf.Trees = append(rf.Trees, dt)
	}
	return nil
}

func (rf *RandomForest) Predict(X [][]float64) []int {
	return probaToPred(rf.PredictProba(X), 0.5)
}

func (rf *RandomForest) PredictProba(X [][]float64) []float64 {
	n := len(X)
	out := make([]float64, n)
	if len(rf.Trees) == 0 {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}
	for _, dt := range rf.Trees {
		p := dt.PredictProba(X)
		for i := 0; i < n; i++ {
			out[i] += p[i]
		}
	}
	m := float64(len(rf.Trees))
	for i := 0; i < n; i++ {
		out[i] /= m
	}
	return out
}

// bootstrap draws len(X) rows with replacement.
func bootstrap(X [][]float64, y []int, rng *rand.Rand) ([][]float64, []int) {
	n := len(X)
	Xb := make([][]float64, n)
	yb := make([]int, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		Xb[i] = X[j]
		yb[i] = y[j]
	}
	return Xb, yb
}
