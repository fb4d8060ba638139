package iopipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
)

// fakeSource answers from a map and counts remote calls per query.
type fakeSource struct {
	id     source.ID
	mu     sync.Mutex
	data   map[string][]record.Record
	failed map[string]bool
	calls  map[string]int
	// onCall runs before every answer
	onCall func()
}

func newFake(id source.ID, data map[string][]record.Record) *fakeSource {
	return &fakeSource{
		id:     id,
		data:   data,
		failed: make(map[string]bool),
		calls:  make(map[string]int),
	}
}

func (f *fakeSource) answer(ctx context.Context, name string) source.Result {
	f.mu.Lock()
	f.calls[name]++
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall()
	}
	if err := ctx.Err(); err != nil {
		return source.Failed(f.id, name, source.TransportError, err)
	}
	if f.failed[name] {
		return source.Failed(f.id, name, source.TransportError,
			errors.New("connection reset"))
	}
	return source.Found(f.id, name, f.data[name])
}

func (f *fakeSource) ResolveTaxonomy(ctx context.Context, name string) source.Result {
	return f.answer(ctx, name)
}

func (f *fakeSource) FetchDetail(ctx context.Context, name string) source.Result {
	return f.answer(ctx, name)
}

func (f *fakeSource) FetchOccurrences(ctx context.Context, name string) source.Result {
	return f.answer(ctx, name)
}

func (f *fakeSource) callsFor(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res int
	for _, v := range f.calls {
		res += v
	}
	return res
}

type fakes struct {
	flora, plant, gbif, splink *fakeSource
}

func (f fakes) clients() Clients {
	return Clients{
		Taxonomy: map[source.ID]source.Taxonomy{
			source.Flora: f.flora,
			source.Plant: f.plant,
		},
		Occurrence: map[source.ID]source.Occurrence{
			source.GBIF:        f.gbif,
			source.SpeciesLink: f.splink,
		},
	}
}

func newFakes() fakes {
	floraSyn := record.Record{
		record.FieldScientificName:  "Hebanthe paniculata",
		record.FieldTaxonomicStatus: "SINONIMO",
		record.FieldAcceptedName:    "Hebanthe eriantha",
	}
	floraAcc := record.Record{
		record.FieldFamily:          "Amaranthaceae",
		record.FieldGenus:           "Hebanthe",
		record.FieldScientificName:  "Hebanthe eriantha",
		record.FieldAuthorship:      "(Poir.) Pedersen",
		record.FieldTaxonomicStatus: "NOME_ACEITO",
		record.FieldSynonyms:        "Hebanthe paniculata; Pfaffia paniculata",
	}
	plant := record.Record{
		record.FieldScientificName:  "Hebanthe paniculata",
		record.FieldAuthorship:      "Mart.",
		record.FieldChecklistStatus: "accepted",
	}
	occ := func(lat string) record.Record {
		return record.Record{
			"family": "Amaranthaceae", "genus": "Hebanthe",
			"species": "Hebanthe eriantha", "country": "Brazil",
			"decimalLatitude": lat, "decimalLongitude": "-35.72",
		}
	}

	return fakes{
		flora: newFake(source.Flora, map[string][]record.Record{
			"Hebanthe paniculata Mart.": {floraSyn},
			"Hebanthe eriantha":         {floraAcc},
		}),
		plant: newFake(source.Plant, map[string][]record.Record{
			"Hebanthe paniculata Mart.": {plant},
		}),
		gbif: newFake(source.GBIF, map[string][]record.Record{
			"Hebanthe eriantha": {occ("-8.47"), occ("-9.1")},
		}),
		splink: newFake(source.SpeciesLink, nil),
	}
}
