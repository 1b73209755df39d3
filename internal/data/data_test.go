package data

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
)

// bankFixture mirrors the bank-loan sheet: ID and ZIP Code are present and
// dropped by the default cleaner, leaving 11 feature columns.
func bankFixture() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		Header,
		{"30", "55", "3", "49", "91107", "4", "1.6", "2", "0", "0", "1", "1", "0", "0"},
		{"40", "38", "6", "81", "90089", "3", "1.5", "1", "155", "1", "1", "0", "1", "1"},
		{"50", "40", "7", "63", "94720", "1", "2.7", "3", "104", "0", "0", "0", "1", "0"},
		{"60", "29", "4", "120", "94112", "2", "3.1", "2", "0", "1", "0", "1", "1", "0"},
	}, dataframe.DetectTypes(true), dataframe.HasHeader(true))
}

// legacyFixture is the 13-column table of the older pipeline: identifiers are
// already excluded, leaving 12 features and the label.
func legacyFixture() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"Age", "Experience", "Income", "Family", "CCAvg", "Education", "Mortgage",
			"Personal Loan", "Securities Account", "CD Account", "Online", "CreditCard", "Gender"},
		{"55", "3", "49", "4", "1.6", "2", "0", "0", "1", "1", "0", "0", "1"},
		{"38", "6", "81", "3", "1.5", "1", "155", "1", "1", "0", "1", "1", "0"},
		{"40", "7", "63", "1", "2.7", "3", "104", "0", "0", "0", "1", "0", "0"},
		{"29", "4", "120", "2", "3.1", "2", "0", "1", "0", "1", "1", "0", "1"},
	}, dataframe.DetectTypes(true), dataframe.HasHeader(true))
}

func seqFeatures(n int) (Features, Labels) {
	X := Features{Columns: []string{"row"}}
	y := make(Labels, n)
	for i := 0; i < n; i++ {
		X.Rows = append(X.Rows, []float64{float64(i)})
		y[i] = i % 2
	}
	return X, y
}

func rowIDs(f Features) []string {
	out := make([]string, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = strconv.FormatFloat(r[0], 'f', -1, 64)
	}
	return out
}
