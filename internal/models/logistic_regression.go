package models

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a binary logistic model fitted by full-batch gradient
// descent with an L2 penalty on the weights.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int
	L2           float64
	Weights      []float64
	Bias         float64
}

func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{LearningRate: 0.1, Epochs: 500, L2: 1e-3}
}

func (m *LogisticRegression) Name() string { return "LogisticRegression" }

func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	n, d := len(X), len(X[0])
	A := mat.NewDense(n, d, nil)
	for i, row := range X {
		A.SetRow(i, row)
	}
	target := make([]float64, n)
	for i, v := range y {
		target[i] = float64(v)
	}

	w := mat.NewVecDense(d, nil)
	b := 0.0
	resid := make([]float64, n)
	var z, grad mat.VecDense
	for ep := 0; ep < m.Epochs; ep++ {
		z.MulVec(A, w)
		for i := 0; i < n; i++ {
			resid[i] = sigmoid(z.AtVec(i)+b) - target[i]
		}
		grad.MulVec(A.T(), mat.NewVecDense(n, resid))
		grad.ScaleVec(1/float64(n), &grad)
		grad.AddScaledVec(&grad, m.L2, w)
		w.AddScaledVec(w, -m.LearningRate, &grad)
		b -= m.LearningRate * floats.Sum(resid) / float64(n)
	}

	m.Weights = make([]float64, d)
	copy(m.Weights, w.RawVector().Data)
	m.Bias = b
	return nil
}

func (m *LogisticRegression) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = sigmoid(floats.Dot(m.Weights, row) + m.Bias)
	}
	return out
}

func (m *LogisticRegression) Predict(X [][]float64) []int {
	return probaToPred(m.PredictProba(X), 0.5)
}
