package iogbif_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gnames/macrofitas/internal/iogbif"
	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// total occurrences of the taxon 5384210 in the fake service
const total = 650

type fakeGBIF struct {
	pages atomic.Int32
}

func (f *fakeGBIF) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/match", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Plantae", r.URL.Query().Get("kingdom"))
		switch r.URL.Query().Get("name") {
		case "Hebanthe eriantha":
			_, _ = w.Write([]byte(`{
  "usageKey": 5384210, "scientificName": "Hebanthe eriantha (Poir.) Pedersen",
  "rank": "SPECIES", "status": "ACCEPTED", "kingdom": "Plantae",
  "matchType": "EXACT",
  "alternatives": [
    {"usageKey": 3084915, "rank": "SPECIES", "status": "SYNONYM", "kingdom": "Plantae"},
    {"usageKey": 5384210, "rank": "SPECIES", "status": "ACCEPTED", "kingdom": "Plantae"},
    {"usageKey": 1, "rank": "SPECIES", "status": "ACCEPTED", "kingdom": "Animalia"}
  ]
}`))
		case "Pfaffia glomerata":
			_, _ = w.Write([]byte(`{"usageKey": 42, "rank": "SPECIES",
  "status": "ACCEPTED", "kingdom": "Plantae", "matchType": "EXACT"}`))
		default:
			_, _ = w.Write([]byte(`{"matchType": "NONE", "confidence": 100}`))
		}
	})
	mux.HandleFunc("/occurrence", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "BR", q.Get("country"))
		if q.Get("taxon_key") == "42" {
			_, _ = w.Write([]byte(`{"count": 0, "endOfRecords": true, "results": []}`))
			return
		}
		assert.Equal(t, "5384210", q.Get("taxon_key"))
		f.pages.Add(1)

		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		var results []map[string]any
		for i := offset; i < min(offset+limit, total); i++ {
			results = append(results, map[string]any{
				"key":              i,
				"family":           "Amaranthaceae",
				"country":          "Brazil",
				"decimalLatitude":  -8.474149827781018,
				"decimalLongitude": -35.727975889622144,
				"recordedBy":       fmt.Sprintf("Collector %d", i),
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":        total,
			"endOfRecords": offset+limit >= total,
			"results":      results,
		})
	})
	return mux
}

func newClient(t *testing.T, limit int) (source.Occurrence, *fakeGBIF) {
	fake := &fakeGBIF{}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	cfg := sources.DataSourceConfig{
		ID: "gbif",
		Endpoints: map[string]string{
			"match":      srv.URL + "/match",
			"occurrence": srv.URL + "/occurrence",
		},
	}
	return iogbif.New(iohttp.New(config.HTTPConfig{Timeout: 5}), cfg, limit), fake
}

func TestFetchAllPages(t *testing.T) {
	gbif, fake := newClient(t, 0)
	res := gbif.FetchOccurrences(context.Background(), "Hebanthe eriantha")
	require.True(t, res.OK(), res.Err)
	assert.Len(t, res.Records, total)
	assert.Equal(t, int32(3), fake.pages.Load())

	rec := res.Records[0]
	assert.Equal(t, "Amaranthaceae", rec.Value("family"))
	assert.Equal(t, "-8.474149827781018", rec.Value("decimalLatitude"))
	assert.Equal(t, "Collector 0", rec.Value("recordedBy"))
}

func TestFetchLimit(t *testing.T) {
	gbif, fake := newClient(t, 350)
	res := gbif.FetchOccurrences(context.Background(), "Hebanthe eriantha")
	require.True(t, res.OK(), res.Err)
	assert.Len(t, res.Records, 350)
	assert.Equal(t, int32(2), fake.pages.Load())
}

func TestFetchNotFound(t *testing.T) {
	gbif, _ := newClient(t, 0)

	res := gbif.FetchOccurrences(context.Background(), "Unknown fakus plantus")
	assert.Equal(t, source.NotFound, res.Status)

	res = gbif.FetchOccurrences(context.Background(), "Pfaffia glomerata")
	assert.Equal(t, source.NotFound, res.Status, "no occurrences in Brazil")
}
