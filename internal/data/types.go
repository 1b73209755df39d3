package data

import "errors"

var (
	ErrFileAccess     = errors.New("data: source file unreadable")
	ErrSchema         = errors.New("data: schema mismatch")
	ErrLengthMismatch = errors.New("data: features and labels differ in length")
	ErrTooFewRows     = errors.New("data: too few rows to split")
	ErrInvalidRatio   = errors.New("data: test ratio must be in (0, 1)")
)

// Applicant is one row of the bank-loan dataset.
type Applicant struct {
	ID                int     `json:"id"`
	Age               int     `json:"age"`
	Experience        int     `json:"experience"`
	Income            float64 `json:"income"`
	ZIPCode           int     `json:"zip_code"`
	Family            int     `json:"family"`
	CCAvg             float64 `json:"ccavg"`
	Education         int     `json:"education"`
	Mortgage          float64 `json:"mortgage"`
	PersonalLoan      int     `json:"personal_loan"`
	SecuritiesAccount int     `json:"securities_account"`
	CDAccount         int     `json:"cd_account"`
	Online            int     `json:"online"`
	CreditCard        int     `json:"credit_card"`
}

// Header is the column layout of the bank-loan spreadsheet.
var Header = []string{
	"ID", "Age", "Experience", "Income", "ZIP Code", "Family", "CCAvg", "Education",
	"Mortgage", "Personal Loan", "Securities Account", "CD Account", "Online", "CreditCard",
}

// Features is the numeric design matrix, columns in table order.
type Features struct {
	Columns []string
	Rows    [][]float64
}

func (f Features) Len() int { return len(f.Rows) }

// Subset returns the rows at idx, sharing the underlying row slices.
func (f Features) Subset(idx []int) Features {
	rows := make([][]float64, len(idx))
	for i, j := range idx {
		rows[i] = f.Rows[j]
	}
	return Features{Columns: f.Columns, Rows: rows}
}

// Labels holds one binary class per row (1 = approved).
type Labels []int

func (l Labels) Subset(idx []int) Labels {
	out := make(Labels, len(idx))
	for i, j := range idx {
		out[i] = l[j]
	}
	return out
}

// Split is a train/test partition of (X, y). TrainIndex and TestIndex point
// back into the rows passed to Split.
type Split struct {
	XTrain, XTest Features
	YTrain, YTest Labels

	TrainIndex []int
	TestIndex  []int
}
