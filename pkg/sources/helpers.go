package sources

import (
	"maps"
	"net/url"

	"github.com/gnames/macrofitas/pkg/source"
)

const floraBase = "http://floradobrasil.jbrj.gov.br/reflora/listaBrasil/ConsultaPublicaUC/"

var defaultEndpoints = map[source.ID]map[string]string{
	source.Flora: {
		"autocomplete": floraBase + "BemVindoConsultaPublicaAutoCompleteNomeCompleto.do",
		"search":       floraBase + "BemVindoConsultaPublicaConsultar.do",
		"record":       floraBase + "ResultadoDaConsultaCarregaTaxonGrupo.do",
		"taxon":        "http://servicos.jbrj.gov.br/flora/taxon/",
	},
	source.Plant: {
		"search": "http://www.theplantlist.org/tpl1.1/search",
	},
	source.GBIF: {
		"match":      "https://api.gbif.org/v1/species/match",
		"occurrence": "https://api.gbif.org/v1/occurrence/search",
	},
	source.SpeciesLink: {
		"records": "https://specieslink.net/ws/1.0/search",
	},
}

// DefaultEndpoints returns a copy of built-in endpoints of a source.
func DefaultEndpoints(id source.ID) map[string]string {
	return maps.Clone(defaultEndpoints[id])
}

// IsValidURL checks if a string is a valid URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}
