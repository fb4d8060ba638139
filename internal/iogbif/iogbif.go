// Package iogbif downloads occurrences of plant species in Brazil from
// the global biodiversity occurrence index.
package iogbif

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
)

// pageSize is the number of occurrences requested per page, the maximum
// the service allows.
const pageSize = 300

// country restricts occurrences to Brazil.
const country = "BR"

type usage struct {
	UsageKey     json.Number `json:"usageKey"`
	Status       string      `json:"status"`
	Rank         string      `json:"rank"`
	Kingdom      string      `json:"kingdom"`
	MatchType    string      `json:"matchType"`
	Alternatives []usage     `json:"alternatives"`
}

type occurrencePage struct {
	Count        int              `json:"count"`
	EndOfRecords bool             `json:"endOfRecords"`
	Results      []map[string]any `json:"results"`
}

type iogbif struct {
	http  *iohttp.Client
	cfg   sources.DataSourceConfig
	limit int
}

// New creates an occurrence client. The limit caps the number of
// occurrences per name, zero means no limit.
func New(
	client *iohttp.Client,
	cfg sources.DataSourceConfig,
	limit int,
) source.Occurrence {
	return &iogbif{http: client, cfg: cfg, limit: limit}
}

// FetchOccurrences matches the name to accepted plant species and
// collects their occurrences.
func (g *iogbif) FetchOccurrences(ctx context.Context, name string) source.Result {
	keys, st, err := g.match(ctx, name)
	if st != source.OK {
		if st == source.NotFound {
			return source.Missing(source.GBIF, name)
		}
		return source.Failed(source.GBIF, name, st, err)
	}

	var recs []record.Record
	for _, key := range keys {
		occs, st, err := g.occurrences(ctx, key, g.limit-len(recs))
		if st != source.OK {
			return source.Failed(source.GBIF, name, st, err)
		}
		recs = append(recs, occs...)
		if g.limit > 0 && len(recs) >= g.limit {
			break
		}
	}
	return source.Found(source.GBIF, name, recs)
}

// match returns usage keys of accepted species of plants matching the
// name.
func (g *iogbif) match(ctx context.Context, name string) ([]string, source.Status, error) {
	params := url.Values{
		"name":    {name},
		"kingdom": {"Plantae"},
		"rank":    {"SPECIES"},
		"verbose": {"true"},
	}
	var u usage
	st, err := g.http.GetJSON(ctx, g.cfg.Endpoint("match"), params, &u)
	if st != source.OK {
		return nil, st, err
	}

	var res []string
	seen := make(map[string]struct{})
	for _, v := range append([]usage{u}, u.Alternatives...) {
		key := v.UsageKey.String()
		if key == "" || v.Status != "ACCEPTED" || v.Rank != "SPECIES" ||
			v.Kingdom != "Plantae" || v.MatchType == "NONE" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, key)
	}

	if len(res) == 0 {
		return nil, source.NotFound, nil
	}
	return res, source.OK, nil
}

// occurrences pages through occurrences of a taxon. A limit below one
// means no limit.
func (g *iogbif) occurrences(
	ctx context.Context,
	taxonKey string,
	limit int,
) ([]record.Record, source.Status, error) {
	var res []record.Record
	for offset := 0; ; offset += pageSize {
		size := pageSize
		if limit > 0 {
			size = min(pageSize, limit-len(res))
		}
		params := url.Values{
			"country":   {country},
			"taxon_key": {taxonKey},
			"offset":    {strconv.Itoa(offset)},
			"limit":     {strconv.Itoa(size)},
		}

		var page occurrencePage
		st, err := g.http.GetJSON(ctx, g.cfg.Endpoint("occurrence"), params, &page)
		if st != source.OK {
			return nil, st, err
		}

		for _, v := range page.Results {
			if rec := record.Normalize(v); len(rec) > 0 {
				res = append(res, rec)
			}
		}

		if page.EndOfRecords || len(page.Results) == 0 ||
			offset+len(page.Results) >= page.Count ||
			(limit > 0 && len(res) >= limit) {
			break
		}
	}
	return res, source.OK, nil
}
