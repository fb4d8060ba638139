// Package iosplink downloads occurrences from the species-link network.
//
// The service answers with GeoJSON features, older mirrors answer with a
// plain list of records or with a "result" list. Darwin Core field names
// are translated to the short field names of the legacy network, so
// records look the same whatever mirror produced them.
package iosplink

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
)

// pageSize is the number of records requested per page.
const pageSize = 1000

// maxPages stops paging through mirrors that ignore the offset.
const maxPages = 100

// shortNames maps lowercased Darwin Core terms to legacy short names.
var shortNames = map[string]string{
	"family":           "tF",
	"phylum":           "tP",
	"order":            "tO",
	"genus":            "tGa",
	"class":            "tC",
	"specificepithet":  "tEa",
	"recordedby":       "cL",
	"country":          "lC",
	"decimallatitude":  "lA",
	"decimallongitude": "lO",
}

type iosplink struct {
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
	return &iosplink{http: client, cfg: cfg, limit: limit}
}

func (s *iosplink) FetchOccurrences(ctx context.Context, name string) source.Result {
	var res []record.Record
	for page := 0; page < maxPages; page++ {
		offset := page * pageSize
		size := pageSize
		if s.limit > 0 {
			size = min(pageSize, s.limit-len(res))
		}
		params := url.Values{
			"scientificname": {name},
			"offset":         {strconv.Itoa(offset)},
			"limit":          {strconv.Itoa(size)},
		}
		if s.cfg.APIKey != "" {
			params.Set("apikey", s.cfg.APIKey)
		}

		var doc any
		st, err := s.http.GetJSON(ctx, s.cfg.Endpoint("records"), params, &doc)
		if st == source.NotFound {
			break
		}
		if st != source.OK {
			return source.Failed(source.SpeciesLink, name, st, err)
		}

		raws, err := extract(doc)
		if err != nil {
			return source.Failed(source.SpeciesLink, name, source.ParseError, err)
		}
		for _, raw := range raws {
			if rec := shorten(record.Normalize(raw)); len(rec) > 0 {
				res = append(res, rec)
			}
		}

		if len(raws) != size || (s.limit > 0 && len(res) >= s.limit) {
			break
		}
	}
	return source.Found(source.SpeciesLink, name, res)
}

// extract finds raw records in one of the known answer shapes.
func extract(doc any) ([]map[string]any, error) {
	var list []any
	switch d := doc.(type) {
	case []any:
		list = d
	case map[string]any:
		if v, ok := d["features"]; ok {
			feats, err := asList(v, "features")
			if err != nil {
				return nil, err
			}
			for _, f := range feats {
				if fm, ok := f.(map[string]any); ok {
					list = append(list, fm["properties"])
				}
			}
			break
		}
		v, ok := d["result"]
		if !ok {
			return nil, fmt.Errorf("unknown answer format")
		}
		res, err := asList(v, "result")
		if err != nil {
			return nil, err
		}
		list = res
	case nil:
	default:
		return nil, fmt.Errorf("unknown answer format")
	}

	res := make([]map[string]any, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			res = append(res, m)
		}
	}
	return res, nil
}

func asList(v any, name string) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	res, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", name)
	}
	return res, nil
}

// shorten renames Darwin Core terms to short names. Fields that already
// use short names are kept.
func shorten(rec record.Record) record.Record {
	res := make(record.Record, len(rec))
	for k, v := range rec {
		if short, ok := shortNames[strings.ToLower(k)]; ok {
			if _, exists := rec[short]; !exists {
				res[short] = v
				continue
			}
		}
		res[k] = v
	}
	return res
}
