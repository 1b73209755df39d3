// Package evaluate scores fitted pipelines: classification reports, ranking
// metrics and learning curves.
package evaluate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"bankloan/internal/data"
)

var ErrUnknownLabel = errors.New("evaluate: label not seen during training")

const (
	KeyAccuracy    = "accuracy"
	KeyMacroAvg    = "macro avg"
	KeyWeightedAvg = "weighted avg"
)

// Predictor is the part of a fitted pipeline the evaluator needs.
type Predictor interface {
	Predict(X [][]float64) ([]int, error)
	KnowsClass(c int) bool
}

type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1-score"`
	Support   int     `json:"support"`
}

// Report is a classification report. Classes is keyed by the label rendered
// as a string ("0", "1").
type Report struct {
	Classes     map[string]ClassMetrics
	Accuracy    float64
	MacroAvg    ClassMetrics
	WeightedAvg ClassMetrics
}

// ClassificationReport predicts X with p and scores the result against y.
func ClassificationReport(p Predictor, X data.Features, y data.Labels) (*Report, error) {
	if X.Len() != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", data.ErrLengthMismatch, X.Len(), len(y))
	}
	for _, c := range y {
		if !p.KnowsClass(c) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, c)
		}
	}
	pred, err := p.Predict(X.Rows)
	if err != nil {
		return nil, err
	}
	return BuildReport(y, pred), nil
}

// BuildReport scores yPred against yTrue. Every label present in either
// slice gets an entry; undefined ratios are reported as 0.
func BuildReport(yTrue, yPred []int) *Report {
	labelSet := map[int]bool{}
	for _, v := range yTrue {
		labelSet[v] = true
	}
	for _, v := range yPred {
		labelSet[v] = true
	}
	labels := make([]int, 0, len(labelSet))
	for v := range labelSet {
		labels = append(labels, v)
	}
	sort.Ints(labels)

	r := &Report{Classes: make(map[string]ClassMetrics, len(labels))}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	if len(yTrue) > 0 {
		r.Accuracy = float64(correct) / float64(len(yTrue))
	}

	total := len(yTrue)
	for _, c := range labels {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yPred[i] == c && yTrue[i] == c:
				tp++
			case yPred[i] == c:
				fp++
			case yTrue[i] == c:
				fn++
			}
		}
		m := ClassMetrics{Support: tp + fn}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		r.Classes[strconv.Itoa(c)] = m

		k := float64(len(labels))
		r.MacroAvg.Precision += m.Precision / k
		r.MacroAvg.Recall += m.Recall / k
		r.MacroAvg.F1 += m.F1 / k
		if total > 0 {
			w := float64(m.Support) / float64(total)
			r.WeightedAvg.Precision += m.Precision * w
			r.WeightedAvg.Recall += m.Recall * w
			r.WeightedAvg.F1 += m.F1 * w
		}
	}
	r.MacroAvg.Support = total
	r.WeightedAvg.Support = total
	return r
}

// Keys lists the class keys in label order followed by the aggregate keys.
func (r *Report) Keys() []string {
	keys := make([]string, 0, len(r.Classes)+3)
	for k := range r.Classes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return append(keys, KeyAccuracy, KeyMacroAvg, KeyWeightedAvg)
}

func (r *Report) Has(key string) bool {
	switch key {
	case KeyAccuracy, KeyMacroAvg, KeyWeightedAvg:
		return true
	}
	_, ok := r.Classes[key]
	return ok
}

// Class returns the metrics of one label.
func (r *Report) Class(label int) (ClassMetrics, bool) {
	m, ok := r.Classes[strconv.Itoa(label)]
	return m, ok
}

// MarshalJSON renders the flat mapping: one object per class and average,
// plus the scalar "accuracy".
func (r *Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Classes)+3)
	for k, m := range r.Classes {
		out[k] = m
	}
	out[KeyAccuracy] = r.Accuracy
	out[KeyMacroAvg] = r.MacroAvg
	out[KeyWeightedAvg] = r.WeightedAvg
	return json.Marshal(out)
}

func (r *Report) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = Report{Classes: map[string]ClassMetrics{}}
	for k, v := range raw {
		var err error
		switch k {
		case KeyAccuracy:
			err = json.Unmarshal(v, &r.Accuracy)
		case KeyMacroAvg:
			err = json.Unmarshal(v, &r.MacroAvg)
		case KeyWeightedAvg:
			err = json.Unmarshal(v, &r.WeightedAvg)
		default:
			var m ClassMetrics
			err = json.Unmarshal(v, &m)
			r.Classes[k] = m
		}
		if err != nil {
			return fmt.Errorf("report key %q: %w", k, err)
		}
	}
	return nil
}
