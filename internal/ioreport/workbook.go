package ioreport

import (
	"fmt"
	"path/filepath"

	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/xuri/excelize/v2"
)

// SheetName returns the primary sheet name of a report.
func SheetName(n int) string {
	return fmt.Sprintf("Planilha %d", n)
}

// NotFoundSheetName returns the name of the sheet with names that were
// not found.
func NotFoundSheetName(n int) string {
	return SheetName(n) + " " + crossref.NotFoundHeader
}

// FileName returns the file name of a report.
func FileName(n int) string {
	return SheetName(n) + ".xlsx"
}

// workbook streams a report to a temporary file until it is saved. It
// has a primary sheet and a sheet for names that were not found. Rows of
// each sheet are written in order, so rows can be added but not changed.
type workbook struct {
	f       *excelize.File
	path    string
	main    *excelize.StreamWriter
	missing *excelize.StreamWriter
	mainRow int
	missRow int
}

func newWorkbook(dir string, n int, header []string) (*workbook, error) {
	f := excelize.NewFile()
	res := &workbook{
		f:    f,
		path: filepath.Join(dir, FileName(n)),
	}

	main, missing := SheetName(n), NotFoundSheetName(n)
	if err := f.SetSheetName(f.GetSheetName(0), main); err != nil {
		return nil, ReportSheetError(main, err)
	}
	if _, err := f.NewSheet(missing); err != nil {
		return nil, ReportSheetError(missing, err)
	}

	var err error
	if res.main, err = f.NewStreamWriter(main); err != nil {
		return nil, ReportSheetError(main, err)
	}
	if res.missing, err = f.NewStreamWriter(missing); err != nil {
		return nil, ReportSheetError(missing, err)
	}

	if err = res.addRow(cells(header)); err != nil {
		return nil, err
	}
	if err = res.addMissing(crossref.NotFoundHeader); err != nil {
		return nil, err
	}
	return res, nil
}

// cells converts values to a row. Empty values leave their cells absent.
func cells(vals []string) []any {
	res := make([]any, len(vals))
	for i, v := range vals {
		if v != "" {
			res[i] = v
		}
	}
	return res
}

// addRow appends a row to the primary sheet. Values are strings, nil for
// absent cells, or excelize.Cell for formulas.
func (w *workbook) addRow(vals []any) error {
	w.mainRow++
	return setRow(w.main, w.mainRow, vals)
}

func (w *workbook) addMissing(vals ...string) error {
	w.missRow++
	return setRow(w.missing, w.missRow, cells(vals))
}

func setRow(sw *excelize.StreamWriter, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return ReportSheetError(sw.Sheet, err)
	}
	if err = sw.SetRow(cell, vals); err != nil {
		return ReportSheetError(sw.Sheet, err)
	}
	return nil
}

func (w *workbook) save() (string, error) {
	defer w.f.Close()
	for _, sw := range []*excelize.StreamWriter{w.main, w.missing} {
		if err := sw.Flush(); err != nil {
			return "", ReportSheetError(sw.Sheet, err)
		}
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return "", ReportSaveError(w.path, err)
	}
	return w.path, nil
}
