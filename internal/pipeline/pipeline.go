// Package pipeline builds and fits preprocessing-plus-estimator pipelines for
// the supported loan-approval algorithms.
package pipeline

import (
	"encoding/gob"
	"errors"
	"fmt"
	"sort"
	"time"

	"bankloan/internal/data"
	"bankloan/internal/models"
)

var (
	ErrUnsupportedAlgorithm = errors.New("pipeline: unsupported algorithm")
	ErrShape                = errors.New("pipeline: feature shape mismatch")
	ErrNotFitted            = errors.New("pipeline: not fitted")
)

func init() {
	gob.Register(&StandardScaler{})
	gob.Register(&Identity{})
	gob.Register(&models.LogisticRegression{})
	gob.Register(&models.KNN{})
	gob.Register(&models.RandomForest{})
	gob.Register(&models.GradientBoosting{})
}

// Pipeline is a fitted preprocessing stage followed by an estimator. It is
// not modified after Train returns.
type Pipeline struct {
	Algorithm Algorithm
	// ID is the identifier the pipeline was trained under, e.g. "xgboost".
	ID        string
	Features  []string
	Classes   []int
	Stage     Transformer
	Estimator models.Model
	FittedAt  time.Time
}

// Train builds the pipeline registered for id and fits it on X, y.
func Train(id string, X data.Features, y data.Labels, params Params) (*Pipeline, error) {
	alg, err := ParseAlgorithm(id)
	if err != nil {
		return nil, err
	}
	if X.Len() != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", data.ErrLengthMismatch, X.Len(), len(y))
	}

	stage, est := builders[alg](params)
	if err := stage.Fit(X.Rows); err != nil {
		return nil, err
	}
	Xt, err := stage.Transform(X.Rows)
	if err != nil {
		return nil, err
	}
	if err := est.Fit(Xt, y); err != nil {
		return nil, fmt.Errorf("fit %s: %w", alg, err)
	}

	return &Pipeline{
		Algorithm: alg,
		ID:        id,
		Features:  append([]string(nil), X.Columns...),
		Classes:   distinct(y),
		Stage:     stage,
		Estimator: est,
		FittedAt:  time.Now().UTC(),
	}, nil
}

func (p *Pipeline) transform(X [][]float64) ([][]float64, error) {
	if p == nil || p.Stage == nil || p.Estimator == nil {
		return nil, ErrNotFitted
	}
	return p.Stage.Transform(X)
}

func (p *Pipeline) Predict(X [][]float64) ([]int, error) {
	Xt, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.Estimator.Predict(Xt), nil
}

// PredictProba returns P(approved) per row.
func (p *Pipeline) PredictProba(X [][]float64) ([]float64, error) {
	Xt, err := p.transform(X)
	if err != nil {
		return nil, err
	}
	return p.Estimator.PredictProba(Xt), nil
}

// KnowsClass reports whether c was among the training labels.
func (p *Pipeline) KnowsClass(c int) bool {
	i := sort.SearchInts(p.Classes, c)
	return i < len(p.Classes) && p.Classes[i] == c
}

func (p *Pipeline) Name() string {
	return fmt.Sprintf("%s(%s)", p.Algorithm, p.Estimator.Name())
}

func distinct(y []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}
