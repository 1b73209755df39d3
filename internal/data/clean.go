package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/multierr"
)

var (
	DefaultDropColumns = []string{"ID", "ZIP Code"}
	DefaultLabelColumn = "Personal Loan"
)

// Cleaner drops non-predictive columns and splits the table into features
// and the binary target.
type Cleaner struct {
	DropColumns []string
	LabelColumn string
	// PositiveLabel maps textual labels ("approved") to 1; empty means labels are 0/1.
	PositiveLabel string
	// AllowMissingDrops tolerates drop columns that are already absent.
	AllowMissingDrops bool
}

func NewCleaner() Cleaner {
	return Cleaner{
		DropColumns: append([]string(nil), DefaultDropColumns...),
		LabelColumn: DefaultLabelColumn,
	}
}

func (c Cleaner) Clean(df dataframe.DataFrame) (Features, Labels, error) {
	if df.Err != nil {
		return Features{}, nil, fmt.Errorf("%w: %v", ErrSchema, df.Err)
	}
	present := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		present[n] = true
	}

	var errs error
	drop := make(map[string]bool, len(c.DropColumns)+1)
	for _, col := range c.DropColumns {
		if !present[col] {
			if !c.AllowMissingDrops {
				errs = multierr.Append(errs, fmt.Errorf("%w: missing column %q", ErrSchema, col))
			}
			continue
		}
		drop[col] = true
	}
	if !present[c.LabelColumn] {
		errs = multierr.Append(errs, fmt.Errorf("%w: missing label column %q", ErrSchema, c.LabelColumn))
	}
	if errs != nil {
		return Features{}, nil, errs
	}
	drop[c.LabelColumn] = true

	y, err := c.labels(df.Col(c.LabelColumn).Records())
	if err != nil {
		return Features{}, nil, err
	}

	n := df.Nrow()
	X := Features{Rows: make([][]float64, n)}
	for i := range X.Rows {
		X.Rows[i] = make([]float64, 0, df.Ncol()-len(drop))
	}
	for _, name := range df.Names() {
		if drop[name] {
			continue
		}
		vals := df.Col(name).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				errs = multierr.Append(errs, fmt.Errorf("%w: column %q row %d is not numeric", ErrSchema, name, i))
				break
			}
			X.Rows[i] = append(X.Rows[i], v)
		}
		X.Columns = append(X.Columns, name)
	}
	if errs != nil {
		return Features{}, nil, errs
	}
	return X, y, nil
}

func (c Cleaner) labels(raw []string) (Labels, error) {
	y := make(Labels, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if c.PositiveLabel != "" {
			if strings.EqualFold(s, c.PositiveLabel) {
				y[i] = 1
			}
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || (v != 0 && v != 1) {
			return nil, fmt.Errorf("%w: label %q at row %d is not binary", ErrSchema, s, i)
		}
		y[i] = int(v)
	}
	return y, nil
}
