package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

type LoadOptions struct {
	// Sheet selects the worksheet of a spreadsheet source; empty means the first one.
	Sheet string
}

// Load reads a spreadsheet (.xlsx/.xlsm) or CSV source into a table, unmodified.
func Load(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadSpreadsheet(path, opts.Sheet)
	case ".csv":
		return loadCSV(path)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: unsupported format", ErrFileAccess, path)
	}
}

func loadCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	defer f.Close()
	df := dataframe.ReadCSV(f, dataframe.DetectTypes(true), dataframe.HasHeader(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: no data rows", ErrFileAccess, path)
	}
	return df, nil
}

func loadSpreadsheet(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %v", ErrFileAccess, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s: workbook has no sheets", ErrFileAccess, path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, err)
	}
	if len(rows) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: no data rows", ErrFileAccess, path)
	}

	// excelize trims trailing empty cells, gota needs a rectangle
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		if len(r) < width {
			padded := make([]string, width)
			copy(padded, r)
			r = padded
		}
		records = append(records, r[:width])
	}
	df := dataframe.LoadRecords(records, dataframe.DetectTypes(true), dataframe.HasHeader(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %v", ErrFileAccess, path, df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: no data rows", ErrFileAccess, path)
	}
	return df, nil
}
