package ioflora

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gnames/macrofitas/pkg/source"
)

// flowering plants in the registry
const groupID = "5"

// autocomplete returns the registry spelling of a name. The answer is
// accepted when the service suggests exactly one name, or when one of
// the suggestions equals the query.
func (f *ioflora) autocomplete(ctx context.Context, query string) (string, source.Status, error) {
	params := url.Values{
		"idGrupo":      {groupID},
		"nomeCompleto": {query},
	}
	var names []any
	st, err := f.http.GetJSON(ctx, f.endpoint("autocomplete"), params, &names)
	if st != source.OK {
		return "", st, err
	}

	var candidates []string
	for _, v := range names {
		if s := toString(v); s != "" {
			candidates = append(candidates, s)
		}
	}

	switch len(candidates) {
	case 0:
		return "", source.NotFound, nil
	case 1:
		return candidates[0], source.OK, nil
	}
	for _, s := range candidates {
		if strings.EqualFold(s, strings.TrimSpace(query)) {
			return s, source.OK, nil
		}
	}
	return "", source.NotFound, nil
}

// identifier finds the internal id of a name in the public search page.
func (f *ioflora) identifier(ctx context.Context, name string) (string, source.Status, error) {
	params := url.Values{
		"invalidatePageControlCounter": {"6"},
		"idsFilhosAlgas":               {"[2]"},
		"idsFilhosFungos":              {"[1,10,11]"},
		"grupo":                        {groupID},
		"familia":                      {"null"},
		"nomeCompleto":                 {name},
		"formaVida":                    {"null"},
		"substrato":                    {"null"},
		"ocorreBrasil":                 {"QUALQUER"},
		"ocorrencia":                   {"OCORRE"},
		"endemismo":                    {"TODOS"},
		"origem":                       {"TODOS"},
		"regiao":                       {"QUALQUER"},
		"estado":                       {"QUALQUER"},
		"ilhaOceanica":                 {"32767"},
		"domFitogeograficos":           {"QUALQUER"},
		"bacia":                        {"QUALQUER"},
		"vegetacao":                    {"TODOS"},
		"mostrarAte":                   {"SUBESP_VAR"},
		"opcoesBusca":                  {"TODOS_OS_NOMES"},
		"loginUsuario":                 {"Visitante"},
		"contexto":                     {"consulta-publica"},
	}
	resp, st, err := f.http.Get(ctx, f.endpoint("search"), params)
	if st != source.OK {
		return "", st, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return "", source.ParseError, fmt.Errorf("parse search page: %w", err)
	}

	id, ok := doc.Find("#carregaTaxonGrupoIdDadosListaBrasil").First().Attr("value")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", source.NotFound, nil
	}
	return id, source.OK, nil
}

// recordByID returns the registry record of an id.
func (f *ioflora) recordByID(ctx context.Context, id string) (map[string]any, source.Status, error) {
	params := url.Values{"idDadosListaBrasil": {id}}
	var res map[string]any
	st, err := f.http.GetJSON(ctx, f.endpoint("record"), params, &res)
	if st != source.OK {
		return nil, st, err
	}
	if len(res) == 0 {
		return nil, source.NotFound, nil
	}

	if html := toString(res["bibliografiaFixa"]); html != "" {
		res["bibliografiaFixa"] = htmlText(html)
	}
	return res, source.OK, nil
}

// taxon returns Darwin Core fields of a name from the taxon service.
func (f *ioflora) taxon(ctx context.Context, nameStr string) (map[string]any, source.Status, error) {
	u := strings.TrimSuffix(f.endpoint("taxon"), "/") + "/" + escapePath(nameStr)
	var resp struct {
		Result []map[string]any `json:"result"`
	}
	st, err := f.http.GetJSON(ctx, u, nil, &resp)
	if st != source.OK {
		return nil, st, err
	}
	if len(resp.Result) == 0 || resp.Result[0] == nil {
		return nil, source.NotFound, nil
	}
	return resp.Result[0], source.OK, nil
}

func htmlText(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
