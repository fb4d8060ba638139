// Package ioinput reads species names submitted for cross-referencing.
//
// Names come from the first column of the first sheet of an .xlsx
// workbook, or one name per line from a text or CSV file. The first
// cell is read as a name unless skipHeader is set.
package ioinput

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Read returns unique, trimmed names in the order of the input file.
func Read(path string, skipHeader bool) ([]string, error) {
	var names []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		names, err = readXLSX(path)
	case ".csv":
		names, err = readCSV(path)
	case ".txt", "":
		names, err = readLines(path)
	default:
		return nil, InputFormatError(path)
	}
	if err != nil {
		return nil, err
	}

	if skipHeader && len(names) > 0 {
		names = names[1:]
	}

	res := unique(names)
	if dups := len(names) - len(res); dups > 0 {
		slog.Info("Dropped duplicate names", "path", path, "duplicates", dups)
	}
	if len(res) == 0 {
		return nil, InputEmptyError(path)
	}
	return res, nil
}

func readXLSX(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, InputOpenError(path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, InputEmptyError(path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, InputOpenError(path, err)
	}

	res := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		res = append(res, row[0])
	}
	return res, nil
}

func readCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, InputOpenError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var res []string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, InputOpenError(path, err)
		}
		if len(row) > 0 {
			res = append(res, row[0])
		}
	}
	return res, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, InputOpenError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		res = append(res, sc.Text())
	}
	if err = sc.Err(); err != nil {
		return nil, InputOpenError(path, err)
	}
	return res, nil
}

// unique trims names, drops empty ones and keeps the first occurrence
// of every name. Names are compared as given, without case folding.
func unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	res := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		res = append(res, n)
	}
	return res
}
