package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyTrainingSet = errors.New("models: empty training set")
	ErrLengthMismatch   = errors.New("models: features and labels differ in length")
)

// Model is a binary classifier over dense float rows. PredictProba returns P(y=1).
type Model interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	PredictProba(X [][]float64) []float64
	Name() string
}

func checkTrainingSet(X [][]float64, y []int) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrLengthMismatch, len(X), len(y))
	}
	return nil
}

func probaToPred(ps []float64, thr float64) []int {
	out := make([]int, len(ps))
	for i := range ps {
		if ps[i] >= thr {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 { return 1.0 / (1.0 + math.Exp(-z)) }
