// Package ioplant resolves names against the global plant-name checklist.
// The checklist search is queried for the canonical form of a name and
// answers with CSV rows of matching names.
package ioplant

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"strings"

	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/pkg/parserpool"
	"github.com/gnames/macrofitas/pkg/record"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
)

// Columns of the checklist CSV.
const (
	colID         = "ID"
	colFamily     = "Family"
	colGenus      = "Genus"
	colSpecies    = "Species"
	colInfraRank  = "Infraspecific rank"
	colInfra      = "Infraspecific epithet"
	colAuthorship = "Authorship"
	colStatus     = "Taxonomic status in TPL"
	colAcceptedID = "Accepted ID"
)

type row map[string]string

type ioplant struct {
	http   *iohttp.Client
	cfg    sources.DataSourceConfig
	parser parserpool.Pool
}

// New creates a checklist client.
func New(
	client *iohttp.Client,
	cfg sources.DataSourceConfig,
	parser parserpool.Pool,
) source.Taxonomy {
	return &ioplant{http: client, cfg: cfg, parser: parser}
}

func (p *ioplant) ResolveTaxonomy(ctx context.Context, name string) source.Result {
	can, _ := p.parser.Canonical(name)
	if can == "" {
		return source.Missing(source.Plant, name)
	}

	params := url.Values{"q": {can}, "csv": {"true"}}
	resp, st, err := p.http.Get(ctx, p.cfg.Endpoint("search"), params)
	if st != source.OK {
		if st == source.NotFound {
			return source.Missing(source.Plant, name)
		}
		return source.Failed(source.Plant, name, st, err)
	}

	rows, err := parseCSV(resp.Body)
	if err != nil {
		return source.Failed(source.Plant, name, source.ParseError, err)
	}

	match, ok := p.pick(rows, can, p.parser.Authorship(name))
	if !ok {
		return source.Missing(source.Plant, name)
	}
	rec := output(name, match, rows)
	return source.Found(source.Plant, name, []record.Record{rec})
}

// FetchDetail returns the same record as ResolveTaxonomy, the checklist
// has no separate detail service.
func (p *ioplant) FetchDetail(ctx context.Context, name string) source.Result {
	return p.ResolveTaxonomy(ctx, name)
}

// pick selects the row matching the canonical form. Rows with the same
// authorship win, then accepted rows, then the first row.
func (p *ioplant) pick(rows []row, can, auth string) (row, bool) {
	var candidates []row
	for _, r := range rows {
		if r.canonical() == can {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	score := func(r row) int {
		var res int
		if auth != "" && r[colAuthorship] == auth {
			res += 2
		}
		if r.status() == record.ChecklistAccepted {
			res++
		}
		return res
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if score(r) > score(best) {
			best = r
		}
	}
	return best, true
}

func output(query string, r row, all []row) record.Record {
	res := record.Record{}
	res.Set(record.FieldQuery, query)
	res.Set(record.FieldChecklistID, r[colID])
	res.Set(record.FieldFamily, r[colFamily])
	res.Set(record.FieldGenus, r[colGenus])
	res.Set(record.FieldSpecificEpithet, r[colSpecies])
	res.Set(record.FieldInfraEpithet, r[colInfra])
	res.Set(record.FieldScientificName, r.fullName())
	res.Set(record.FieldAuthorship, r[colAuthorship])
	res.Set(record.FieldChecklistStatus, r.status())
	res.Set(record.FieldChecklistAccID, r[colAcceptedID])

	if r.status() == record.ChecklistAccepted {
		var syns []string
		for _, v := range all {
			if v[colAcceptedID] == r[colID] && v[colID] != r[colID] {
				syns = append(syns, v.fullName())
			}
		}
		res.Set(record.FieldSynonyms, strings.Join(syns, record.ListSeparator))
		return res
	}

	accID := r[colAcceptedID]
	if accID == "" {
		return res
	}
	for _, v := range all {
		if v[colID] == accID {
			res.Set(record.FieldAcceptedName, v.fullName())
			break
		}
	}
	return res
}

func (r row) canonical() string {
	return joinNonEmpty(r[colGenus], r[colSpecies], r[colInfra])
}

func (r row) fullName() string {
	return joinNonEmpty(
		r[colGenus], r[colSpecies], r[colInfraRank], r[colInfra], r[colAuthorship],
	)
}

func (r row) status() string {
	return strings.ToLower(strings.TrimSpace(r[colStatus]))
}

func joinNonEmpty(ss ...string) string {
	var res []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return strings.Join(res, " ")
}

var bom = []byte("\xef\xbb\xbf")

func parseCSV(data []byte) ([]row, error) {
	data = bytes.TrimPrefix(data, bom)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	lines, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse checklist csv: %w", err)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	header := lines[0]
	if !containsAll(header, colID, colGenus, colSpecies, colStatus) {
		return nil, fmt.Errorf("unexpected checklist csv header: %v", header)
	}

	res := make([]row, 0, len(lines)-1)
	for _, l := range lines[1:] {
		rw := make(row, len(header))
		for i, v := range l {
			if i < len(header) {
				rw[strings.TrimSpace(header[i])] = strings.TrimSpace(v)
			}
		}
		res = append(res, rw)
	}
	return res, nil
}

func containsAll(header []string, cols ...string) bool {
	set := make(map[string]struct{}, len(header))
	for _, h := range header {
		set[strings.TrimSpace(h)] = struct{}{}
	}
	for _, c := range cols {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}
