// Package source defines data sources known to macrofitas, the typed
// outcome of a remote lookup, and the contracts that data-source clients
// and caches have to satisfy.
package source

import (
	"context"
	"strings"

	"github.com/gnames/macrofitas/pkg/record"
)

// ID identifies an external data source.
type ID int

const (
	Unknown ID = iota
	// Flora is the national flora registry (Flora do Brasil).
	Flora
	// Plant is the global plant-name checklist.
	Plant
	// GBIF is the global biodiversity occurrence index.
	GBIF
	// SpeciesLink is the species-link occurrence network.
	SpeciesLink
)

// Kind separates taxonomic sources from occurrence sources.
type Kind int

const (
	KindTaxonomic Kind = iota + 1
	KindOccurrence
)

var ids = map[ID]struct {
	key, title string
	kind       Kind
}{
	Flora:       {"flora", "FloraBrasil", KindTaxonomic},
	Plant:       {"plant", "ThePlantList", KindTaxonomic},
	GBIF:        {"gbif", "GBIF", KindOccurrence},
	SpeciesLink: {"splink", "SpeciesLink", KindOccurrence},
}

// All returns every known source in pipeline order.
func All() []ID {
	return []ID{Flora, Plant, GBIF, SpeciesLink}
}

// Taxonomics returns sources that resolve taxonomic status.
func Taxonomics() []ID {
	return []ID{Flora, Plant}
}

// Occurrences returns sources that provide occurrence geodata.
func Occurrences() []ID {
	return []ID{GBIF, SpeciesLink}
}

// Parse converts a source key ("flora", "plant", "gbif", "splink")
// to an ID.
func Parse(s string) (ID, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, v := range ids {
		if v.key == s {
			return id, true
		}
	}
	return Unknown, false
}

// String returns the short key of the source. It is used for cache
// directories, configuration and logs.
func (id ID) String() string {
	if v, ok := ids[id]; ok {
		return v.key
	}
	return "unknown"
}

// Title returns the human-readable name used in reports.
func (id ID) Title() string {
	if v, ok := ids[id]; ok {
		return v.title
	}
	return "Unknown"
}

// Kind returns the kind of the source.
func (id ID) Kind() Kind {
	return ids[id].kind
}

// Taxonomy is implemented by sources that resolve names to their
// taxonomic status. Implementations enforce their own network timeout
// and never return raw transport errors outside of Result.
type Taxonomy interface {
	// ResolveTaxonomy finds the taxonomic status of a name.
	ResolveTaxonomy(ctx context.Context, name string) Result

	// FetchDetail returns the detailed taxonomic record of a name.
	FetchDetail(ctx context.Context, name string) Result
}

// Occurrence is implemented by sources that provide occurrence records.
// An OK result with no records is not possible, empty answers are
// reported as NotFound.
type Occurrence interface {
	FetchOccurrences(ctx context.Context, name string) Result
}

// Cache keeps record sets of one source keyed by query.
type Cache interface {
	// Source returns the data source of the cache.
	Source() ID

	// Read returns cached records. The boolean is false when the query
	// was never cached.
	Read(query string) ([]record.Record, bool, error)

	// Write persists records of a query, replacing older ones.
	Write(query string, recs []record.Record) error
}
