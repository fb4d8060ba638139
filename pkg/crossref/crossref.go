// Package crossref holds the pure cross-referencing rules used by the
// report builders: how a taxonomic record is judged, how two taxonomic
// sources are compared, and how records map to report columns.
package crossref

import (
	"fmt"

	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

// Labels written into reports.
const (
	StatusAccepted = "Aceito"
	StatusSynonym  = "Sinonimo"
	Equal          = "Igual"
	Different      = "Diferente"
)

// Taxon is the verdict about one name in one taxonomic source.
type Taxon struct {
	// Found is false when the source has no record for the name.
	Found bool
	// Accepted is true when the record describes an accepted name.
	Accepted bool
	// Name is the scientific name for accepted records or the accepted
	// name usage for synonyms.
	Name string
}

// Status returns the report label of the taxon or an empty string if
// the taxon was not found.
func (t Taxon) Status() string {
	switch {
	case !t.Found:
		return ""
	case t.Accepted:
		return StatusAccepted
	default:
		return StatusSynonym
	}
}

// IsAccepted reports if a record of a taxonomic source marks an accepted
// name.
func IsAccepted(id source.ID, rec record.Record) bool {
	switch id {
	case source.Flora:
		return rec.Value(record.FieldTaxonomicStatus) == record.FloraAccepted
	case source.Plant:
		return rec.Value(record.FieldChecklistStatus) == record.ChecklistAccepted
	default:
		return false
	}
}

// Evaluate builds a Taxon out of the records of a taxonomic source.
// Only the first record is considered.
func Evaluate(id source.ID, recs []record.Record) Taxon {
	if len(recs) == 0 {
		return Taxon{}
	}
	rec := recs[0]
	res := Taxon{Found: true, Accepted: IsAccepted(id, rec)}
	if res.Accepted {
		res.Name = rec.Value(record.FieldScientificName)
	} else {
		res.Name = rec.Value(record.FieldAcceptedName)
	}
	return res
}

// Compare returns Equal when both sources agree on status and name,
// Different when they disagree, and an empty string when neither source
// has a status.
func Compare(plant, flora Taxon) string {
	ps, fs := plant.Status(), flora.Status()
	if ps == "" && fs == "" {
		return ""
	}
	if ps == fs && plant.Name == flora.Name {
		return Equal
	}
	return Different
}

// ComparisonFormula returns the spreadsheet formula that mirrors Compare
// for a 1-based row of the comparison report. Columns B and C hold the
// checklist status and name, D and E hold the flora status and name.
func ComparisonFormula(row int) string {
	return fmt.Sprintf(
		`IF(AND(B%[1]d="",D%[1]d=""),"",IF(AND(B%[1]d=D%[1]d,C%[1]d=E%[1]d),"%[2]s","%[3]s"))`,
		row, Equal, Different,
	)
}

// AcceptedName picks the name that goes to the occurrence sources and to
// the detail report. The flora registry wins over the checklist. The
// boolean is false when no source resolved a name.
func AcceptedName(plant, flora Taxon) (string, bool) {
	if flora.Found && flora.Name != "" {
		return flora.Name, true
	}
	if plant.Found && plant.Name != "" {
		return plant.Name, true
	}
	return "", false
}
