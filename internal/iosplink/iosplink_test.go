package iosplink_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/internal/iosplink"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/crossref"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feature(i int) map[string]any {
	return map[string]any{
		"type": "Feature",
		"properties": map[string]any{
			"family":           "Amaranthaceae",
			"genus":            "Hebanthe",
			"specificepithet":  "eriantha",
			"recordedby":       "Silva, J.",
			"country":          "Brasil",
			"decimallatitude":  -10.5,
			"decimallongitude": -40.25,
			"catalognumber":    strconv.Itoa(i),
		},
	}
}

func newServer(t *testing.T, total int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch q.Get("scientificname") {
		case "Legacy name":
			_, _ = w.Write([]byte(`{"result": [{"tF": "Fabaceae", "tGa": "Inga", "tEa": "edulis", "lA": "-3.1"}]}`))
			return
		case "List name":
			_, _ = w.Write([]byte(`[{"family": "Fabaceae"}]`))
			return
		case "Odd name":
			_, _ = w.Write([]byte(`{"status": "maintenance"}`))
			return
		case "Unknown fakus plantus":
			_, _ = w.Write([]byte(`{"type": "FeatureCollection", "features": null}`))
			return
		}

		assert.Equal(t, "secret", q.Get("apikey"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		var feats []map[string]any
		for i := offset; i < min(offset+limit, total); i++ {
			feats = append(feats, feature(i))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":          "FeatureCollection",
			"numberMatched": total,
			"features":      feats,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, total, limit int) source.Occurrence {
	srv := newServer(t, total)
	cfg := sources.DataSourceConfig{
		ID:        "splink",
		APIKey:    "secret",
		Endpoints: map[string]string{"records": srv.URL},
	}
	return iosplink.New(iohttp.New(config.HTTPConfig{Timeout: 5}), cfg, limit)
}

func TestFetchFeatures(t *testing.T) {
	splink := newClient(t, 1500, 0)
	res := splink.FetchOccurrences(context.Background(), "Hebanthe eriantha")
	require.True(t, res.OK(), res.Err)
	assert.Len(t, res.Records, 1500)

	row := crossref.OccurrenceRow(source.SpeciesLink, "Hebanthe eriantha", res.Records[0])
	assert.Equal(t, []string{
		"Hebanthe eriantha", "Amaranthaceae", "", "", "Hebanthe", "",
		"Hebanthe eriantha", "Silva, J.", "Brasil", "-10.5", "-40.25",
	}, row)
	assert.Equal(t, "0", res.Records[0].Value("catalognumber"))
}

func TestFetchLimit(t *testing.T) {
	splink := newClient(t, 1500, 20)
	res := splink.FetchOccurrences(context.Background(), "Hebanthe eriantha")
	require.True(t, res.OK(), res.Err)
	assert.Len(t, res.Records, 20)
}

func TestFetchFormats(t *testing.T) {
	splink := newClient(t, 0, 0)

	res := splink.FetchOccurrences(context.Background(), "Legacy name")
	require.True(t, res.OK(), res.Err)
	assert.Equal(t, "Inga edulis",
		crossref.OccurrenceRow(source.SpeciesLink, "Legacy name", res.Records[0])[6])

	res = splink.FetchOccurrences(context.Background(), "List name")
	require.True(t, res.OK(), res.Err)
	assert.Equal(t, "Fabaceae", res.Records[0].Value("tF"))

	res = splink.FetchOccurrences(context.Background(), "Odd name")
	assert.Equal(t, source.ParseError, res.Status)

	res = splink.FetchOccurrences(context.Background(), "Unknown fakus plantus")
	assert.Equal(t, source.NotFound, res.Status)

	res = splink.FetchOccurrences(context.Background(), "Hebanthe eriantha")
	assert.Equal(t, source.NotFound, res.Status, "no features")
}
