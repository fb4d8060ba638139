package ioreport_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gnames/macrofitas/internal/ioreport"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeFinder struct {
	mu      sync.Mutex
	data    map[source.ID]map[string][]record.Record
	details int
}

func (f *fakeFinder) Find(
	_ context.Context,
	id source.ID,
	query string,
) []record.Record {
	return f.data[id][query]
}

func (f *fakeFinder) Detail(
	ctx context.Context,
	id source.ID,
	query string,
) []record.Record {
	f.mu.Lock()
	f.details++
	f.mu.Unlock()
	return f.Find(ctx, id, query)
}

func newFinder() *fakeFinder {
	flora := record.Record{
		record.FieldFamily:          "Amaranthaceae",
		record.FieldGenus:           "Hebanthe",
		record.FieldScientificName:  "Hebanthe eriantha",
		record.FieldAuthorship:      "(Poir.) Pedersen",
		record.FieldTaxonomicStatus: "NOME_ACEITO",
		record.FieldLifeForm:        "Liana/volúvel/trepadeira",
	}
	floraSyn := record.Record{
		record.FieldScientificName:  "Hebanthe paniculata",
		record.FieldTaxonomicStatus: "SINONIMO",
		record.FieldAcceptedName:    "Hebanthe eriantha",
	}
	plant := record.Record{
		record.FieldScientificName:  "Hebanthe paniculata",
		record.FieldAuthorship:      "Mart.",
		record.FieldChecklistStatus: "accepted",
	}
	gbif := record.Record{
		"family": "Amaranthaceae", "genus": "Hebanthe",
		"species": "Hebanthe eriantha", "country": "Brazil",
		"decimalLatitude": "-8.47", "decimalLongitude": "-35.72",
	}

	return &fakeFinder{
		data: map[source.ID]map[string][]record.Record{
			source.Flora: {
				"Hebanthe paniculata Mart.": {floraSyn},
				"Hebanthe eriantha":         {flora},
			},
			source.Plant: {
				"Hebanthe paniculata Mart.": {plant},
			},
			source.GBIF: {
				"Hebanthe eriantha": {gbif, gbif},
			},
		},
	}
}

func rows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	res, err := f.GetRows(sheet)
	require.NoError(t, err)
	return res
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Planilha 1", ioreport.SheetName(1))
	assert.Equal(t, "Planilha 3 Não encontrados", ioreport.NotFoundSheetName(3))
	assert.Equal(t, "Planilha 2.xlsx", ioreport.FileName(2))
	assert.Equal(t, "finalizing", ioreport.Finalizing.String())
}

func TestComparison(t *testing.T) {
	dir := t.TempDir()
	finder := newFinder()
	occ := make(chan string, 10)
	det := make(chan string, 10)

	c, err := ioreport.NewComparison(dir, finder,
		[]source.ID{source.Flora, source.Plant}, occ, det)
	require.NoError(t, err)

	in := make(chan string, 3)
	in <- "Hebanthe paniculata Mart."
	in <- "Unknown Fakus plantus"
	in <- "Hebanthe paniculata Mart."
	close(in)
	out := make(chan string, 1)

	err = c.Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, ioreport.Saved, c.State())

	path := <-out
	assert.Equal(t, filepath.Join(dir, "Planilha 1.xlsx"), path)

	var forwarded []string
	for n := range occ {
		forwarded = append(forwarded, n)
	}
	assert.Equal(t, []string{"Hebanthe eriantha"}, forwarded,
		"accepted names are forwarded once, then the channel is closed")
	_, ok := <-det
	assert.True(t, ok)
	_, ok = <-det
	assert.False(t, ok)
	assert.Equal(t, []string{"Hebanthe eriantha"}, c.Accepted())

	main := rows(t, path, "Planilha 1")
	require.Len(t, main, 4)
	assert.Equal(t, "Nome Entrada", main[0][0])
	assert.Equal(t, []string{
		"Hebanthe paniculata Mart.", "Aceito", "Hebanthe paniculata",
		"Sinonimo", "Hebanthe eriantha", "Diferente",
	}, main[1], "verdict is stored as the cached formula value")
	assert.Equal(t, "Unknown Fakus plantus", main[2][0])
	assert.Empty(t, strings.Join(main[2][1:], ""),
		"absent values leave cells empty")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	formula, err := f.GetCellFormula("Planilha 1", "F3")
	require.NoError(t, err)
	assert.Equal(t,
		`IF(AND(B3="",D3=""),"",IF(AND(B3=D3,C3=E3),"Igual","Diferente"))`,
		formula)
	formula, err = f.GetCellFormula("Planilha 1", "F2")
	require.NoError(t, err)
	assert.Contains(t, formula, "B2")

	missing := rows(t, path, "Planilha 1 Não encontrados")
	assert.Equal(t, [][]string{
		{"Não encontrados"},
		{"FloraBrasil, ThePlantList", "Unknown Fakus plantus"},
	}, missing, "one entry per name missed by every taxonomic source")
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 1, c.Missing())

	equal, different := c.Verdicts()
	assert.Equal(t, 0, equal)
	assert.Equal(t, 2, different)
}

func TestComparisonOneSourceMissing(t *testing.T) {
	dir := t.TempDir()
	finder := newFinder()
	det := make(chan string, 10)

	c, err := ioreport.NewComparison(dir, finder,
		[]source.ID{source.Flora, source.Plant}, det)
	require.NoError(t, err)

	in := make(chan string, 1)
	in <- "Hebanthe eriantha"
	close(in)
	out := make(chan string, 1)
	require.NoError(t, c.Run(context.Background(), in, out))

	path := <-out
	main := rows(t, path, "Planilha 1")
	require.Len(t, main, 2)
	assert.Equal(t, []string{
		"Hebanthe eriantha", "", "", "Aceito", "Hebanthe eriantha", "Diferente",
	}, main[1])

	missing := rows(t, path, "Planilha 1 Não encontrados")
	assert.Equal(t, [][]string{{"Não encontrados"}}, missing,
		"a name resolved by one source is not reported as missing")
	assert.Equal(t, 0, c.Missing())
}

func TestComparisonCancelled(t *testing.T) {
	dir := t.TempDir()
	occ := make(chan string)

	c, err := ioreport.NewComparison(dir, newFinder(),
		[]source.ID{source.Flora}, occ)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := make(chan string)
	out := make(chan string, 1)

	err = c.Run(ctx, in, out)
	require.NoError(t, err)
	assert.Equal(t, ioreport.Saved, c.State())
	assert.FileExists(t, <-out)

	_, ok := <-occ
	assert.False(t, ok, "downstream channels are closed on cancellation")
}

func TestDetail(t *testing.T) {
	dir := t.TempDir()
	finder := newFinder()
	d, err := ioreport.NewDetail(dir, finder,
		[]source.ID{source.Flora, source.Plant})
	require.NoError(t, err)

	in := make(chan string, 2)
	in <- "Hebanthe eriantha"
	in <- "Aus bus"
	close(in)
	out := make(chan string, 1)
	require.NoError(t, d.Run(context.Background(), in, out))

	path := <-out
	main := rows(t, path, "Planilha 2")
	require.Len(t, main, 3)
	assert.Equal(t, []string{
		"Hebanthe eriantha", "Amaranthaceae", "Hebanthe",
		"Hebanthe eriantha", "(Poir.) Pedersen", "Aceito",
		"Liana/volúvel/trepadeira",
	}, main[1])
	assert.Equal(t, []string{"Aus bus"}, main[2])

	missing := rows(t, path, "Planilha 2 Não encontrados")
	assert.Equal(t, [][]string{{"Não encontrados"}, {"Aus bus"}}, missing)
	assert.Equal(t, 4, finder.details)
}

func TestOccurrence(t *testing.T) {
	dir := t.TempDir()
	o, err := ioreport.NewOccurrence(dir, newFinder())
	require.NoError(t, err)

	in := make(chan source.Done, 3)
	in <- source.Done{Source: source.GBIF, Query: "Hebanthe eriantha"}
	in <- source.Done{Source: source.SpeciesLink, Query: "Hebanthe eriantha"}
	close(in)
	out := make(chan string, 1)
	require.NoError(t, o.Run(context.Background(), in, out))

	path := <-out
	main := rows(t, path, "Planilha 3")
	require.Len(t, main, 3)
	assert.Equal(t, "Família", main[0][1])
	assert.Equal(t, []string{
		"Hebanthe eriantha", "Amaranthaceae", "", "", "Hebanthe", "",
		"Hebanthe eriantha", "", "Brazil", "-8.47", "-35.72",
	}, main[1])

	missing := rows(t, path, "Planilha 3 Não encontrados")
	assert.Equal(t, [][]string{
		{"Não encontrados"},
		{"SpeciesLink", "Hebanthe eriantha"},
	}, missing)
}
