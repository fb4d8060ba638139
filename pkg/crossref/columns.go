package crossref

import (
	"strings"

	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

// Headers of the three reports.
var (
	ComparisonHeader = []string{
		record.FieldQuery, "plant status", "plant nome",
		"flora status", "flora nome", "Flora x Plant",
	}

	DetailHeader = []string{
		record.FieldQuery,
		record.FieldFamily,
		record.FieldGenus,
		record.FieldScientificName,
		record.FieldAuthorship,
		record.FieldTaxonomicStatus,
		record.FieldLifeForm,
		record.FieldSubstrate,
		record.FieldVegetationType,
		record.FieldOrigin,
		record.FieldSynonyms,
	}

	OccurrenceHeader = []string{
		record.FieldQuery, "Família", "Filo", "Ordem", "Gênero", "Classe",
		"Espécie", "Coletor", "País", "Latitude", "Longitude",
	}
)

// NotFoundHeader is the first row of every not-found sheet.
const NotFoundHeader = "Não encontrados"

// Column is one report column filled from a record. Values of several
// fields are joined with a space.
type Column []string

var occurrenceColumns = map[source.ID][]Column{
	source.GBIF: {
		{"family"}, {"phylum"}, {"order"}, {"genus"}, {"class"},
		{"species"}, {"recordedBy"}, {"country"},
		{"decimalLatitude"}, {"decimalLongitude"},
	},
	source.SpeciesLink: {
		{"tF"}, {"tP"}, {"tO"}, {"tGa"}, {"tC"},
		{"tGa", "tEa"}, {"cL"}, {"lC"}, {"lA"}, {"lO"},
	},
}

// OccurrenceColumns returns the column mapping of an occurrence source.
func OccurrenceColumns(id source.ID) []Column {
	return occurrenceColumns[id]
}

// Extract returns the value of a column. Missing fields are skipped, so
// a record without any of the fields gives an empty string.
func (c Column) Extract(rec record.Record) string {
	if len(c) == 1 {
		return rec.Value(c[0])
	}
	var parts []string
	for _, f := range c {
		if v, ok := rec.Get(f); ok {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// OccurrenceRow converts an occurrence record into a report row.
func OccurrenceRow(id source.ID, query string, rec record.Record) []string {
	cols := OccurrenceColumns(id)
	res := make([]string, 0, len(cols)+1)
	res = append(res, query)
	for _, c := range cols {
		res = append(res, c.Extract(rec))
	}
	return res
}

// ComparisonRow converts verdicts of both taxonomic sources into the
// first five columns of the comparison report. The sixth column is the
// formula from ComparisonFormula.
func ComparisonRow(query string, plant, flora Taxon) []string {
	return []string{
		query,
		plant.Status(), plant.Name,
		flora.Status(), flora.Name,
	}
}

// DetailRow builds a row of the detail report. The flora registry record
// is used only if it is accepted. Otherwise the checklist record fills
// the name, authorship, status and synonyms when it is accepted.
// The boolean is false if neither record could be used.
func DetailRow(query string, flora, plant []record.Record) ([]string, bool) {
	row := make([]string, len(DetailHeader))
	row[0] = query

	if len(flora) > 0 && IsAccepted(source.Flora, flora[0]) {
		rec := flora[0]
		for i, f := range DetailHeader[1:] {
			row[i+1] = rec.Value(f)
		}
		row[5] = StatusAccepted
		return row, true
	}

	if len(plant) > 0 && IsAccepted(source.Plant, plant[0]) {
		rec := plant[0]
		row[3] = rec.Value(record.FieldScientificName)
		row[4] = rec.Value(record.FieldAuthorship)
		row[5] = StatusAccepted
		row[10] = rec.Value(record.FieldSynonyms)
		return row, true
	}

	return row, false
}
