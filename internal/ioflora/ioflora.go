// Package ioflora resolves names against the Brazilian flora registry.
//
// A lookup goes through four remote calls: the autocomplete service finds
// the registry spelling of a name, the public search page gives its
// internal identifier, the record service returns the registry record,
// and the taxon service adds Darwin Core fields and synonyms.
package ioflora

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/pkg/parserpool"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
)

// outFields are fields kept from the registry answer.
var outFields = []string{
	record.FieldFamily,
	record.FieldGenus,
	record.FieldScientificName,
	record.FieldSpecificEpithet,
	record.FieldInfraEpithet,
	record.FieldAuthorship,
	record.FieldTaxonomicStatus,
	record.FieldModified,
	record.FieldLifeForm,
	record.FieldNameString,
	record.FieldSubstrate,
	record.FieldVegetationType,
	record.FieldOrigin,
	record.FieldAcceptedName,
	"bibliografiaFixa",
}

type ioflora struct {
	http   *iohttp.Client
	cfg    sources.DataSourceConfig
	parser parserpool.Pool
}

// New creates a flora registry client.
func New(
	client *iohttp.Client,
	cfg sources.DataSourceConfig,
	parser parserpool.Pool,
) source.Taxonomy {
	return &ioflora{http: client, cfg: cfg, parser: parser}
}

// ResolveTaxonomy finds a name in the registry. If the name as given is
// unknown, its canonical form (without authorship) is tried once.
func (f *ioflora) ResolveTaxonomy(ctx context.Context, name string) source.Result {
	res := f.search(ctx, name)
	if res.Status != source.NotFound {
		return res
	}

	can, ok := f.parser.Canonical(name)
	if !ok || can == strings.TrimSpace(name) {
		return res
	}
	slog.Debug("Retrying flora search with canonical form",
		"query", name, "canonical", can)
	res = f.search(ctx, can)
	res.Query = name
	return res
}

// FetchDetail returns the same record as ResolveTaxonomy, the registry
// answer already contains all details.
func (f *ioflora) FetchDetail(ctx context.Context, name string) source.Result {
	return f.ResolveTaxonomy(ctx, name)
}

func (f *ioflora) search(ctx context.Context, query string) source.Result {
	fail := func(st source.Status, err error) source.Result {
		if st == source.NotFound {
			return source.Missing(source.Flora, query)
		}
		return source.Failed(source.Flora, query, st, err)
	}

	name, st, err := f.autocomplete(ctx, query)
	if st != source.OK {
		return fail(st, err)
	}

	id, st, err := f.identifier(ctx, name)
	if st != source.OK {
		return fail(st, err)
	}

	rec, st, err := f.recordByID(ctx, id)
	if st != source.OK {
		return fail(st, err)
	}

	nameStr := toString(rec[record.FieldNameString])
	if nameStr == "" {
		return source.Missing(source.Flora, query)
	}

	info, st, err := f.taxon(ctx, nameStr)
	if st != source.OK {
		return fail(st, err)
	}

	// record fields win over taxon service fields
	for k, v := range rec {
		info[k] = v
	}

	out := f.output(query, info)
	return source.Found(source.Flora, query, []record.Record{out})
}

func (f *ioflora) output(query string, raw map[string]any) record.Record {
	norm := record.Normalize(raw)
	res := make(record.Record, len(outFields)+3)
	res.Set(record.FieldQuery, query)
	for _, k := range outFields {
		res.Set(k, norm.Value(k))
	}
	res.Set(record.FieldSynonyms, strings.Join(synonyms(raw), record.ListSeparator))
	res.Set(record.FieldSpecies, f.species(res))
	return res
}

// species is the name string without authorship.
func (f *ioflora) species(rec record.Record) string {
	nameStr := rec.Value(record.FieldNameString)
	auth := rec.Value(record.FieldAuthorship)
	if auth != "" {
		if idx := strings.Index(nameStr, auth); idx > 0 {
			return strings.TrimSpace(nameStr[:idx])
		}
	}
	if nameStr == "" {
		return ""
	}
	can, _ := f.parser.Canonical(nameStr)
	return can
}

func synonyms(raw map[string]any) []string {
	list, ok := raw["SINONIMO"].([]any)
	if !ok {
		return nil
	}
	var res []string
	for _, v := range list {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if s := toString(m[record.FieldScientificName]); s != "" {
			res = append(res, s)
		}
	}
	return res
}

func toString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func (f *ioflora) endpoint(key string) string {
	return f.cfg.Endpoint(key)
}

func escapePath(s string) string {
	return url.PathEscape(strings.TrimSpace(s))
}
