package data

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

var zipCodes = []int{91107, 90089, 94720, 94112, 91330, 92121, 95616, 94305, 93106, 92037}

// SyntheticApplicants draws n applicants with an approval rate of roughly approvalRate.
func SyntheticApplicants(n int, approvalRate float64, seed int64) []Applicant {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Applicant, n)
	for i := range out {
		age := 23 + rng.Intn(45)
		exp := age - 23 - rng.Intn(3)
		if exp < 0 {
			exp = 0
		}
		income := math.Round(8 + rng.ExpFloat64()*60)
		if income > 224 {
			income = 224
		}
		a := Applicant{
			ID:         i + 1,
			Age:        age,
			Experience: exp,
			Income:     income,
			ZIPCode:    zipCodes[rng.Intn(len(zipCodes))],
			Family:     1 + rng.Intn(4),
			CCAvg:      math.Round(income/15*rng.Float64()*10) / 10,
			Education:  1 + rng.Intn(3),
			Online:     boolToInt(rng.Float64() < 0.6),
			CreditCard: boolToInt(rng.Float64() < 0.3),
		}
		if rng.Float64() < 0.3 {
			a.Mortgage = math.Round(50 + rng.Float64()*400)
		}
		a.SecuritiesAccount = boolToInt(rng.Float64() < 0.1)
		a.CDAccount = boolToInt(rng.Float64() < 0.06)

		score := -3.5 + approvalRate*4
		score += (a.Income - 100) / 25
		score += (a.CCAvg - 2) / 2
		score += float64(a.Education-1) * 0.8
		score += float64(a.Family-2) * 0.3
		if a.CDAccount == 1 {
			score += 1.5
		}
		p := 1 / (1 + math.Exp(-score))
		if rng.Float64() < p {
			a.PersonalLoan = 1
		}
		out[i] = a
	}
	return out
}

// Record renders an applicant in Header order.
func (a Applicant) Record() []string {
	return []string{
		strconv.Itoa(a.ID),
		strconv.Itoa(a.Age),
		strconv.Itoa(a.Experience),
		strconv.FormatFloat(a.Income, 'f', -1, 64),
		strconv.Itoa(a.ZIPCode),
		strconv.Itoa(a.Family),
		strconv.FormatFloat(a.CCAvg, 'f', -1, 64),
		strconv.Itoa(a.Education),
		strconv.FormatFloat(a.Mortgage, 'f', -1, 64),
		strconv.Itoa(a.PersonalLoan),
		strconv.Itoa(a.SecuritiesAccount),
		strconv.Itoa(a.CDAccount),
		strconv.Itoa(a.Online),
		strconv.Itoa(a.CreditCard),
	}
}

// WriteApplicants writes applicants as CSV or as a spreadsheet, picked by extension.
func WriteApplicants(path string, rows []Applicant) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, rows)
	case ".csv":
		return writeCSV(path, rows)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}
}

func writeCSV(path string, rows []Applicant) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, a := range rows {
		if err := w.Write(a.Record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

const sheetName = "Data"

func writeXLSX(path string, rows []Applicant) (err error) {
	f := excelize.NewFile()
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, a := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := []interface{}{
			a.ID, a.Age, a.Experience, a.Income, a.ZIPCode, a.Family, a.CCAvg, a.Education,
			a.Mortgage, a.PersonalLoan, a.SecuritiesAccount, a.CDAccount, a.Online, a.CreditCard,
		}
		if err := sw.SetRow(cell, vals); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
