package sources_test

import (
	"testing"

	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointDefaults(t *testing.T) {
	var cfg *sources.SourcesConfig
	gbif := cfg.Source(source.GBIF)
	assert.Equal(t, "gbif", gbif.ID)
	assert.Equal(t, "https://api.gbif.org/v1/species/match", gbif.Endpoint("match"))
	assert.Empty(t, gbif.Endpoint("nothing"))
	assert.Len(t, cfg.Enabled(), 4)
}

func TestEndpointOverride(t *testing.T) {
	cfg := &sources.SourcesConfig{
		DataSources: []sources.DataSourceConfig{
			{
				ID:        "gbif",
				Endpoints: map[string]string{"match": "http://localhost:8080/match"},
			},
			{ID: "splink", Disabled: true},
		},
	}
	require.NoError(t, cfg.Validate())

	gbif := cfg.Source(source.GBIF)
	assert.Equal(t, "http://localhost:8080/match", gbif.Endpoint("match"))
	assert.Equal(t, "https://api.gbif.org/v1/occurrence/search",
		gbif.Endpoint("occurrence"))
	assert.Equal(t,
		[]source.ID{source.Flora, source.Plant, source.GBIF}, cfg.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg      string
		ds       []sources.DataSourceConfig
		hasErr   bool
		warnings int
	}{
		{"empty", nil, false, 0},
		{"upper case id", []sources.DataSourceConfig{{ID: " Flora "}}, false, 0},
		{"no id", []sources.DataSourceConfig{{Title: "x"}}, true, 0},
		{"unknown id", []sources.DataSourceConfig{{ID: "tropicos"}}, true, 0},
		{
			"duplicate",
			[]sources.DataSourceConfig{{ID: "gbif"}, {ID: "gbif"}},
			true, 0,
		},
		{
			"bad url",
			[]sources.DataSourceConfig{{
				ID:        "plant",
				Endpoints: map[string]string{"search": "ftp://x"},
			}},
			true, 0,
		},
		{
			"unknown endpoint",
			[]sources.DataSourceConfig{{
				ID:        "plant",
				Endpoints: map[string]string{"download": "http://x.org"},
			}},
			false, 1,
		},
		{
			"all disabled",
			[]sources.DataSourceConfig{
				{ID: "flora", Disabled: true}, {ID: "plant", Disabled: true},
				{ID: "gbif", Disabled: true}, {ID: "splink", Disabled: true},
			},
			true, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := sources.SourcesConfig{DataSources: tt.ds}
			err := cfg.Validate()
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, cfg.Warnings, tt.warnings)
		})
	}
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, sources.IsValidURL("https://api.gbif.org/v1"))
	assert.True(t, sources.IsValidURL("http://localhost:8080"))
	assert.False(t, sources.IsValidURL("api.gbif.org"))
	assert.False(t, sources.IsValidURL("file:///tmp"))
}
