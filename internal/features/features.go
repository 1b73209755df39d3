// Package features turns applicants into feature rows ordered by a fitted
// pipeline's column names.
package features

import (
	"errors"
	"fmt"
	"strings"

	"bankloan/internal/data"
)

var ErrUnknownColumn = errors.New("features: unknown column")

var extractors = map[string]func(data.Applicant) float64{
	"id":                func(a data.Applicant) float64 { return float64(a.ID) },
	"age":               func(a data.Applicant) float64 { return float64(a.Age) },
	"experience":        func(a data.Applicant) float64 { return float64(a.Experience) },
	"income":            func(a data.Applicant) float64 { return a.Income },
	"zipcode":           func(a data.Applicant) float64 { return float64(a.ZIPCode) },
	"family":            func(a data.Applicant) float64 { return float64(a.Family) },
	"ccavg":             func(a data.Applicant) float64 { return a.CCAvg },
	"education":         func(a data.Applicant) float64 { return float64(a.Education) },
	"mortgage":          func(a data.Applicant) float64 { return a.Mortgage },
	"personalloan":      func(a data.Applicant) float64 { return float64(a.PersonalLoan) },
	"securitiesaccount": func(a data.Applicant) float64 { return float64(a.SecuritiesAccount) },
	"cdaccount":         func(a data.Applicant) float64 { return float64(a.CDAccount) },
	"online":            func(a data.Applicant) float64 { return float64(a.Online) },
	"creditcard":        func(a data.Applicant) float64 { return float64(a.CreditCard) },
}

// Older exports of the dataset misspell some headers.
var aliases = map[string]string{
	"exprience": "experience",
	"zip":       "zipcode",
}

// Normalize folds a header to the lookup key: lower case without spaces,
// underscores or hyphens.
func Normalize(column string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	key := r.Replace(strings.ToLower(strings.TrimSpace(column)))
	if a, ok := aliases[key]; ok {
		return a
	}
	return key
}

// Vectorize reads the given columns off a in order.
func Vectorize(a data.Applicant, columns []string) ([]float64, error) {
	vec := make([]float64, len(columns))
	for i, c := range columns {
		fn, ok := extractors[Normalize(c)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		vec[i] = fn(a)
	}
	return vec, nil
}

func VectorizeAll(as []data.Applicant, columns []string) ([][]float64, error) {
	out := make([][]float64, len(as))
	for i, a := range as {
		v, err := Vectorize(a, columns)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
