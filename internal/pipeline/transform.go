package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Transformer is the preprocessing stage of a pipeline.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
	Width() int
}

// StandardScaler centres each column and scales it to unit variance.
// Constant columns keep a scale of 1.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: scaler needs at least one row", ErrShape)
	}
	c := len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	col := make([]float64, len(X))
	for j := 0; j < c; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		s.Mean[j] = mean
		s.Std[j] = 1
		if std > 0 {
			s.Std[j] = std
		}
	}
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("%w: row %d has %d columns, scaler fitted on %d", ErrShape, i, len(row), len(s.Mean))
		}
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = r
	}
	return out, nil
}

func (s *StandardScaler) Width() int { return len(s.Mean) }

// Identity passes rows through unchanged; it only checks their width.
type Identity struct {
	Columns int
}

func (p *Identity) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("%w: identity stage needs at least one row", ErrShape)
	}
	p.Columns = len(X[0])
	return nil
}

func (p *Identity) Transform(X [][]float64) ([][]float64, error) {
	for i, row := range X {
		if len(row) != p.Columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), p.Columns)
		}
	}
	return X, nil
}

func (p *Identity) Width() int { return p.Columns }
