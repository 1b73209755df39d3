package models

import "sort"

// KNN votes among the K nearest training rows by Euclidean distance.
// K is clamped to the training size.
type KNN struct {
	K int
	X [][]float64
	Y []int
}

func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

func (m *KNN) Name() string { return "KNearestNeighbors" }

// Fit stores the training rows.
func (m *KNN) Fit(X [][]float64, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	if m.K <= 0 {
		m.K = 5
	}
	m.X = make([][]float64, len(X))
	for i, row := range X {
		m.X[i] = append([]float64(nil), row...)
	}
	m.Y = append([]int(nil), y...)
	return nil
}

func (m *KNN) Predict(X [][]float64) []int {
	return probaToPred(m.PredictProba(X), 0.5)
}

func (m *KNN) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = m.predictProbaOne(x)
	}
	return out
}

func (m *KNN) predictProbaOne(x []float64) float64 {
	type pair struct {
		d float64
		v int
	}
	k := m.K
	if k > len(m.X) {
		k = len(m.X)
	}
	if k == 0 {
		return 0.5
	}
	nbrs := make([]pair, 0, k)
	for j, xj := range m.X {
		d := euclidSquared(x, xj)
		switch {
		case len(nbrs) < k:
			nbrs = append(nbrs, pair{d, m.Y[j]})
		case d < nbrs[len(nbrs)-1].d:
			nbrs[len(nbrs)-1] = pair{d, m.Y[j]}
		default:
			continue
		}
		sort.SliceStable(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
	}
	sum := 0
	for _, p := range nbrs {
		sum += p.v
	}
	return float64(sum) / float64(len(nbrs))
}

func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
