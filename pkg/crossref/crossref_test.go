package crossref_test

import (
	"testing"

	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/stretchr/testify/assert"
)

func floraRec(status, sciName, accName string) record.Record {
	rec := record.Record{}
	rec.Set(record.FieldTaxonomicStatus, status)
	rec.Set(record.FieldScientificName, sciName)
	rec.Set(record.FieldAcceptedName, accName)
	return rec
}

func plantRec(status, sciName, accName string) record.Record {
	rec := record.Record{}
	rec.Set(record.FieldChecklistStatus, status)
	rec.Set(record.FieldScientificName, sciName)
	rec.Set(record.FieldAcceptedName, accName)
	return rec
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		msg    string
		id     source.ID
		recs   []record.Record
		status string
		name   string
	}{
		{"none", source.Flora, nil, "", ""},
		{
			"flora accepted", source.Flora,
			[]record.Record{floraRec("NOME_ACEITO", "Hebanthe paniculata", "")},
			"Aceito", "Hebanthe paniculata",
		},
		{
			"flora synonym", source.Flora,
			[]record.Record{floraRec("SINONIMO", "Pfaffia paniculata", "Hebanthe eriantha")},
			"Sinonimo", "Hebanthe eriantha",
		},
		{
			"plant accepted", source.Plant,
			[]record.Record{plantRec("accepted", "Hebanthe paniculata", "")},
			"Aceito", "Hebanthe paniculata",
		},
		{
			"plant unresolved", source.Plant,
			[]record.Record{plantRec("unresolved", "Hebanthe paniculata", "")},
			"Sinonimo", "",
		},
		{
			"flora status in plant", source.Plant,
			[]record.Record{floraRec("NOME_ACEITO", "Aus bus", "")},
			"Sinonimo", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := crossref.Evaluate(tt.id, tt.recs)
			assert.Equal(t, tt.status, res.Status())
			assert.Equal(t, tt.name, res.Name)
		})
	}
}

func TestCompare(t *testing.T) {
	accepted := func(n string) crossref.Taxon {
		return crossref.Taxon{Found: true, Accepted: true, Name: n}
	}
	synonym := func(n string) crossref.Taxon {
		return crossref.Taxon{Found: true, Name: n}
	}

	tests := []struct {
		msg          string
		plant, flora crossref.Taxon
		res          string
	}{
		{"same", accepted("X"), accepted("X"), crossref.Equal},
		{"different names", accepted("X"), accepted("Y"), crossref.Different},
		{"different status", synonym("X"), accepted("X"), crossref.Different},
		{"both synonyms", synonym("X"), synonym("X"), crossref.Equal},
		{"both blank", crossref.Taxon{}, crossref.Taxon{}, ""},
		{"only flora", crossref.Taxon{}, accepted("X"), crossref.Different},
		{"only plant", accepted("X"), crossref.Taxon{}, crossref.Different},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.res, crossref.Compare(tt.plant, tt.flora))
		})
	}
}

func TestComparisonFormula(t *testing.T) {
	assert.Equal(t,
		`IF(AND(B2="",D2=""),"",IF(AND(B2=D2,C2=E2),"Igual","Diferente"))`,
		crossref.ComparisonFormula(2))
}

func TestAcceptedName(t *testing.T) {
	flora := crossref.Taxon{Found: true, Accepted: true, Name: "Hebanthe eriantha"}
	plant := crossref.Taxon{Found: true, Accepted: true, Name: "Hebanthe paniculata"}

	name, ok := crossref.AcceptedName(plant, flora)
	assert.True(t, ok)
	assert.Equal(t, "Hebanthe eriantha", name)

	name, ok = crossref.AcceptedName(plant, crossref.Taxon{})
	assert.True(t, ok)
	assert.Equal(t, "Hebanthe paniculata", name)

	_, ok = crossref.AcceptedName(crossref.Taxon{}, crossref.Taxon{})
	assert.False(t, ok)

	_, ok = crossref.AcceptedName(crossref.Taxon{Found: true}, crossref.Taxon{})
	assert.False(t, ok, "synonym without accepted name usage")
}

func TestOccurrenceRow(t *testing.T) {
	gbif := record.Record{
		"family": "Amaranthaceae", "genus": "Hebanthe",
		"species": "Hebanthe eriantha", "country": "Brazil",
		"decimalLatitude": "-8.47", "decimalLongitude": "-35.72",
	}
	row := crossref.OccurrenceRow(source.GBIF, "Hebanthe eriantha", gbif)
	assert.Len(t, row, len(crossref.OccurrenceHeader))
	assert.Equal(t, []string{
		"Hebanthe eriantha", "Amaranthaceae", "", "", "Hebanthe", "",
		"Hebanthe eriantha", "", "Brazil", "-8.47", "-35.72",
	}, row)

	splink := record.Record{
		"tF": "Amaranthaceae", "tGa": "Hebanthe", "tEa": "eriantha",
		"cL": "Silva, J.", "lC": "Brasil", "lA": "-10.1", "lO": "-40.2",
	}
	row = crossref.OccurrenceRow(source.SpeciesLink, "Hebanthe eriantha", splink)
	assert.Len(t, row, len(crossref.OccurrenceHeader))
	assert.Equal(t, "Hebanthe eriantha", row[6])
	assert.Equal(t, "Silva, J.", row[7])

	delete(splink, "tEa")
	row = crossref.OccurrenceRow(source.SpeciesLink, "Hebanthe eriantha", splink)
	assert.Equal(t, "Hebanthe", row[6])
}

func TestDetailRow(t *testing.T) {
	flora := record.Record{
		"family":                   "Amaranthaceae",
		"genus":                    "Hebanthe",
		"scientificname":           "Hebanthe eriantha",
		"scientificnameauthorship": "(Poir.) Pedersen",
		"taxonomicstatus":          "NOME_ACEITO",
		"formaVida":                "Liana/volúvel/trepadeira",
		"sinonimos":                "Pfaffia paniculata",
	}
	plant := record.Record{
		"scientificname":           "Hebanthe paniculata",
		"scientificnameauthorship": "Mart.",
		"status":                   "accepted",
		"sinonimos":                "Iresine paniculata",
	}

	row, ok := crossref.DetailRow("q", []record.Record{flora}, []record.Record{plant})
	assert.True(t, ok)
	assert.Len(t, row, len(crossref.DetailHeader))
	assert.Equal(t, "Amaranthaceae", row[1])
	assert.Equal(t, "Hebanthe eriantha", row[3])
	assert.Equal(t, "Aceito", row[5])
	assert.Equal(t, "Pfaffia paniculata", row[10])

	flora["taxonomicstatus"] = "SINONIMO"
	row, ok = crossref.DetailRow("q", []record.Record{flora}, []record.Record{plant})
	assert.True(t, ok)
	assert.Empty(t, row[1], "family comes only from the flora registry")
	assert.Equal(t, "Hebanthe paniculata", row[3])
	assert.Equal(t, "Mart.", row[4])
	assert.Equal(t, "Iresine paniculata", row[10])

	plant["status"] = "synonym"
	_, ok = crossref.DetailRow("q", []record.Record{flora}, []record.Record{plant})
	assert.False(t, ok)

	_, ok = crossref.DetailRow("q", nil, nil)
	assert.False(t, ok)
}
