// Package sources provides configuration and validation of remote data
// source endpoints.
//
// This package defines the schema for sources.yaml. The file lets users
// disable a source, point it to a mirror, or give it an API key. Any
// endpoint missing from the file falls back to the built-in default.
package sources

import "github.com/gnames/macrofitas/pkg/source"

type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// DataSources is the list of configured data sources.
	DataSources []DataSourceConfig `yaml:"data_sources"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	DataSourceID string // ID of the data source
	Field        string // Field name that has the issue
	Message      string // Description of the issue
	Suggestion   string // How to fix it
}

// DataSourceConfig represents configuration for a single data source.
type DataSourceConfig struct {
	// ID is one of "flora", "plant", "gbif", "splink".
	ID string `yaml:"id"`

	// Title overrides the name of the source in reports and logs.
	Title string `yaml:"title,omitempty"`

	// Disabled removes the source from the pipeline.
	Disabled bool `yaml:"disabled,omitempty"`

	// Endpoints maps endpoint keys to URLs. Known keys:
	//   - flora: autocomplete, search, record, taxon
	//   - plant: search
	//   - gbif: match, occurrence
	//   - splink: records
	Endpoints map[string]string `yaml:"endpoints,omitempty"`

	// APIKey is sent to services that need it (speciesLink).
	APIKey string `yaml:"api_key,omitempty"`
}

// Endpoint returns the configured URL for a key or the default one.
func (d DataSourceConfig) Endpoint(key string) string {
	if u, ok := d.Endpoints[key]; ok && u != "" {
		return u
	}
	id, _ := source.Parse(d.ID)
	return DefaultEndpoints(id)[key]
}

// Source returns the configuration of a data source. Sources absent
// from the file get default settings.
func (c *SourcesConfig) Source(id source.ID) DataSourceConfig {
	if c != nil {
		for _, v := range c.DataSources {
			if v.ID == id.String() {
				return v
			}
		}
	}
	return DataSourceConfig{ID: id.String()}
}

// Enabled returns IDs of data sources that are not disabled, in
// pipeline order.
func (c *SourcesConfig) Enabled() []source.ID {
	var res []source.ID
	for _, id := range source.All() {
		if !c.Source(id).Disabled {
			res = append(res, id)
		}
	}
	return res
}
