package sources

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gnames/macrofitas/pkg/source"
)

// Validate checks the configuration for errors and collects warnings.
// An empty configuration is valid, all sources then use defaults.
func (c *SourcesConfig) Validate() error {
	seen := make(map[string]struct{})
	for i := range c.DataSources {
		ds := &c.DataSources[i]
		ds.ID = strings.ToLower(strings.TrimSpace(ds.ID))
		if _, ok := seen[ds.ID]; ok {
			return fmt.Errorf("data source %d: duplicate id '%s'", i+1, ds.ID)
		}
		seen[ds.ID] = struct{}{}

		warnings, err := ds.Validate()
		if err != nil {
			return fmt.Errorf("data source %d: %w", i+1, err)
		}
		c.Warnings = append(c.Warnings, warnings...)
	}

	if len(c.Enabled()) == 0 {
		return fmt.Errorf("all data sources are disabled")
	}
	return nil
}

// Validate checks a single data source configuration.
// Returns a slice of warnings (non-fatal issues) and an error (fatal issues).
func (d *DataSourceConfig) Validate() ([]ValidationWarning, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	id, ok := source.Parse(d.ID)
	if !ok {
		return nil, fmt.Errorf(
			"unknown id '%s': must be one of flora, plant, gbif, splink",
			d.ID,
		)
	}

	var warnings []ValidationWarning
	known := DefaultEndpoints(id)
	keys := make([]string, 0, len(d.Endpoints))
	for k := range d.Endpoints {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		u := d.Endpoints[k]
		if _, ok := known[k]; !ok {
			warnings = append(warnings, ValidationWarning{
				DataSourceID: d.ID,
				Field:        "endpoints." + k,
				Message:      fmt.Sprintf("endpoint '%s' is not used", k),
				Suggestion:   "Remove it or use one of: " + strings.Join(knownKeys(known), ", "),
			})
			continue
		}
		if !IsValidURL(u) {
			return nil, fmt.Errorf("endpoint '%s' has invalid URL '%s'", k, u)
		}
	}

	return warnings, nil
}

func knownKeys(m map[string]string) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}
