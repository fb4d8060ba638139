package iopipeline

import (
	"github.com/gnames/macrofitas/internal/ioflora"
	"github.com/gnames/macrofitas/internal/iogbif"
	"github.com/gnames/macrofitas/internal/iohttp"
	"github.com/gnames/macrofitas/internal/ioplant"
	"github.com/gnames/macrofitas/internal/iosplink"
	"github.com/gnames/macrofitas/pkg/config"
	"github.com/gnames/macrofitas/pkg/parserpool"
	"github.com/gnames/macrofitas/pkg/source"
	"github.com/gnames/macrofitas/pkg/sources"
)

// Clients keeps the remote collaborators of a run.
type Clients struct {
	Taxonomy   map[source.ID]source.Taxonomy
	Occurrence map[source.ID]source.Occurrence
}

// NewClients creates clients for every source enabled in sources.yaml.
// All of them share one HTTP client.
func NewClients(
	cfg *config.Config,
	sc *sources.SourcesConfig,
	parser parserpool.Pool,
) Clients {
	client := iohttp.New(cfg.HTTP)
	res := Clients{
		Taxonomy:   make(map[source.ID]source.Taxonomy),
		Occurrence: make(map[source.ID]source.Occurrence),
	}

	for _, id := range sc.Enabled() {
		dsc := sc.Source(id)
		switch id {
		case source.Flora:
			res.Taxonomy[id] = ioflora.New(client, dsc, parser)
		case source.Plant:
			res.Taxonomy[id] = ioplant.New(client, dsc, parser)
		case source.GBIF:
			res.Occurrence[id] = iogbif.New(client, dsc, cfg.OccurrenceLimit)
		case source.SpeciesLink:
			res.Occurrence[id] = iosplink.New(client, dsc, cfg.OccurrenceLimit)
		}
	}
	return res
}

// has reports if there is a client for a source.
func (c Clients) has(id source.ID) bool {
	if _, ok := c.Taxonomy[id]; ok {
		return true
	}
	_, ok := c.Occurrence[id]
	return ok
}
