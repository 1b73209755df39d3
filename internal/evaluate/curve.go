package evaluate

import (
	"fmt"
	"math"

	"bankloan/internal/data"
)

// Classifier is a fitted model that can score rows.
type Classifier interface {
	Predict(X [][]float64) ([]int, error)
	PredictProba(X [][]float64) ([]float64, error)
}

// FitFunc fits a fresh classifier on a training subset.
type FitFunc func(X data.Features, y data.Labels) (Classifier, error)

type CurvePoint struct {
	Size     int
	TrainAcc float64
	TestAcc  float64
	TrainF1  float64
	TestF1   float64
	TrainROC float64
	TestROC  float64
	TrainPR  float64
	TestPR   float64
}

// CurveSizes spreads points training sizes between min and totalTrain,
// linearly or geometrically. Sizes are strictly increasing and the last one
// is always totalTrain.
func CurveSizes(totalTrain, points, min int, useLog bool) []int {
	if totalTrain <= 0 {
		return nil
	}
	if points <= 1 {
		points = 2
	}
	if min < 1 {
		min = 1
	}
	if min > totalTrain {
		min = int(math.Max(1, float64(totalTrain)/2))
	}
	sizes := make([]int, 0, points)
	if useLog {
		ratio := math.Pow(float64(totalTrain)/float64(min), 1.0/float64(points-1))
		for i := 0; i < points; i++ {
			sizes = append(sizes, int(math.Round(float64(min)*math.Pow(ratio, float64(i)))))
		}
	} else {
		step := float64(totalTrain-min) / float64(points-1)
		for i := 0; i < points; i++ {
			sizes = append(sizes, int(math.Round(float64(min)+float64(i)*step)))
		}
	}

	cleaned := make([]int, 0, len(sizes))
	last := 0
	for _, s := range sizes {
		if s <= last {
			s = last + 1
		}
		if s > totalTrain {
			s = totalTrain
		}
		if s != last {
			cleaned = append(cleaned, s)
			last = s
		}
	}
	cleaned[len(cleaned)-1] = totalTrain
	return cleaned
}

// LearningCurve refits on the first n training rows for every n in sizes and
// scores each fit on that subset and on the full test split.
func LearningCurve(fit FitFunc, s *data.Split, sizes []int) ([]CurvePoint, error) {
	out := make([]CurvePoint, 0, len(sizes))
	for _, n := range sizes {
		if n < 1 || n > s.XTrain.Len() {
			return nil, fmt.Errorf("curve size %d outside [1, %d]", n, s.XTrain.Len())
		}
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		Xs, ys := s.XTrain.Subset(idx), s.YTrain.Subset(idx)
		m, err := fit(Xs, ys)
		if err != nil {
			return nil, fmt.Errorf("curve size %d: %w", n, err)
		}

		pt := CurvePoint{Size: n}
		if pt.TrainAcc, pt.TrainF1, pt.TrainROC, pt.TrainPR, err = score(m, Xs, ys); err != nil {
			return nil, err
		}
		if pt.TestAcc, pt.TestF1, pt.TestROC, pt.TestPR, err = score(m, s.XTest, s.YTest); err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

func score(m Classifier, X data.Features, y data.Labels) (acc, f1, roc, pr float64, err error) {
	pred, err := m.Predict(X.Rows)
	if err != nil {
		return
	}
	ps, err := m.PredictProba(X.Rows)
	if err != nil {
		return
	}
	r := BuildReport(y, pred)
	pos, _ := r.Class(1)
	return r.Accuracy, pos.F1, ROCAUC(y, ps), PRAUC(y, ps), nil
}
