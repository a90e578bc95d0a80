// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package category holds the static marketplace category reference data.
// The table is an explicit immutable value passed to the resolver rather
// than a hidden package global, so tests can substitute their own tables.
package category

import (
	"fmt"
	"sort"

	"github.com/pdiddy/meliscan/pkg/types"
)

// Table maps category ids to their descriptors.
type Table map[string]types.CategoryDescriptor

// Default returns the built-in category table. The ids and URL segments are
// reference data captured from the marketplace, not computed.
func Default() Table {
	entries := []types.CategoryDescriptor{
		{ID: "MLB5672", Name: "Acessórios para Veículos", Segment: "acessorios-veiculos"},
		{ID: "MLB271599", Name: "Agro", Segment: "agro"},
		{ID: "MLB1403", Name: "Alimentos e Bebidas", Segment: "alimentos-bebidas"},
		{ID: "MLB1071", Name: "Animais", Segment: "animais"},
		{ID: "MLB1367", Name: "Antiguidades e Coleções", Segment: "antiguidades-colecoes"},
		{ID: "MLB1368", Name: "Arte, Papelaria e Armarinho", Segment: "arte-papelaria-armarinho"},
		{ID: "MLB1384", Name: "Bebês", Segment: "bebes"},
		{ID: "MLB1246", Name: "Beleza e Cuidado Pessoal", Segment: "beleza-cuidado-pessoal"},
		{ID: "MLB1132", Name: "Brinquedos e Hobbies", Segment: "brinquedos-hobbies"},
		{ID: "MLB1430", Name: "Calçados, Roupas e Bolsas", Segment: "calcados-roupas-bolsas"},
		{ID: "MLB1039", Name: "Câmeras e Acessórios", Segment: "cameras-acessorios"},
		{ID: "MLB1743", Name: "Carros, Motos e Outros", Segment: "carros-motos-outros"},
		{ID: "MLB1574", Name: "Casa, Móveis e Decoração", Segment: "casa-moveis-decoracao"},
		{ID: "MLB1051", Name: "Celulares e Telefones", Segment: "celulares-telefones"},
		{ID: "MLB1500", Name: "Construção", Segment: "construcao"},
		{ID: "MLB5726", Name: "Eletrodomésticos", Segment: "eletrodomesticos"},
		{ID: "MLB1000", Name: "Eletrônicos, Áudio e Vídeo", Segment: "eletronicos-audio-video"},
		{ID: "MLB1276", Name: "Esportes e Fitness", Segment: "esportes-fitness"},
		{ID: "MLB263532", Name: "Ferramentas", Segment: "ferramentas"},
		{ID: "MLB12404", Name: "Festas e Lembrancinhas", Segment: "festas-lembrancinhas"},
		{ID: "MLB1144", Name: "Games", Segment: "games"},
		{ID: "MLB1459", Name: "Imóveis", Segment: "imoveis"},
		{ID: "MLB1499", Name: "Indústria e Comércio", Segment: "industria-comercio"},
		{ID: "MLB1648", Name: "Informática", Segment: "informatica"},
		{ID: "MLB218519", Name: "Ingressos", Segment: "ingressos"},
		{ID: "MLB1182", Name: "Instrumentos Musicais", Segment: "instrumentos-musicais"},
		{ID: "MLB3937", Name: "Joias e Relógios", Segment: "joias-relogios"},
		{ID: "MLB1196", Name: "Livros, Revistas e Comics", Segment: "livros-revistas-comics"},
		{ID: "MLB1168", Name: "Música, Filmes e Seriados", Segment: "musica-filmes-seriados"},
		{ID: "MLB264586", Name: "Saúde", Segment: "saude"},
		{ID: "MLB1540", Name: "Serviços", Segment: "servicos"},
		{ID: "MLB1953", Name: "Mais Categorias", Segment: "mais-categorias"},
	}

	table := make(Table, len(entries))
	for _, e := range entries {
		table[e.ID] = e
	}
	return table
}

// Resolve looks up a category id. Unknown ids are a validation failure the
// caller surfaces before any network activity.
func (t Table) Resolve(id string) (types.CategoryDescriptor, error) {
	desc, ok := t[id]
	if !ok {
		return types.CategoryDescriptor{}, fmt.Errorf("unknown category %q", id)
	}
	return desc, nil
}

// List returns the table entries sorted by id, for rendering.
func (t Table) List() []types.CategoryDescriptor {
	out := make([]types.CategoryDescriptor, 0, len(t))
	for _, desc := range t {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
