// Package catalog reads and writes the product worksheet.
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/money"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/tabular"
)

// Worksheet is the catalog tab name.
const Worksheet = "produtos"

// Column names of the catalog worksheet, in write order.
const (
	ColID         = "ID"
	ColNome       = "NOME"
	ColValor      = "VALOR"
	ColDescCurta  = "DESC_CURTA"
	ColDescLonga  = "DESC_LONGA"
	ColLinkImagem = "LINKIMAGEM"
	ColDisponivel = "DISPONIVEL"

	// colValorLegacy is an older header for the price column, read-only.
	colValorLegacy = "PRECO"

	// availableToken marks a product visible on the storefront.
	availableToken = "sim"
)

// ErrSchemaMismatch means the worksheet header lacks the ID column, so the
// grid is not a catalog. Distinct from an empty or fully-unavailable catalog.
var ErrSchemaMismatch = errors.New("catalog: worksheet header has no ID column")

// Product is one catalog record. ID stays opaque text after load: it is
// not renumbered or checked for uniqueness on the read path.
type Product struct {
	ID         string              `json:"id"`
	Nome       string              `json:"nome"`
	Valor      decimal.NullDecimal `json:"valor"`
	DescCurta  string              `json:"desc_curta"`
	DescLonga  string              `json:"desc_longa"`
	LinkImagem string              `json:"link_imagem"`
	Disponivel string              `json:"disponivel"`
}

// Available reports whether the product's flag matches the storefront token,
// ignoring case and surrounding whitespace.
func (p Product) Available() bool {
	return strings.EqualFold(strings.TrimSpace(p.Disponivel), availableToken)
}

// FromTable decodes a loaded worksheet into typed products. An empty table
// decodes to nothing; a non-empty table without an ID column fails with
// ErrSchemaMismatch. VALOR is the canonical price header; PRECO is accepted
// as legacy input only when VALOR is absent.
func FromTable(t tabular.Table) ([]Product, error) {
	if t.Empty() {
		return nil, nil
	}
	if !t.HasColumn(ColID) {
		return nil, ErrSchemaMismatch
	}

	valorCol := ColValor
	if !t.HasColumn(ColValor) && t.HasColumn(colValorLegacy) {
		valorCol = colValorLegacy
		zap.S().Warnw("catalog worksheet uses legacy price header", "header", colValorLegacy, "want", ColValor)
	}

	products := make([]Product, 0, len(t.Records))
	for _, rec := range t.Records {
		products = append(products, Product{
			ID:         rec[ColID],
			Nome:       rec[ColNome],
			Valor:      money.ParseBR(rec[valorCol]),
			DescCurta:  rec[ColDescCurta],
			DescLonga:  rec[ColDescLonga],
			LinkImagem: rec[ColLinkImagem],
			Disponivel: rec[ColDisponivel],
		})
	}
	return products, nil
}

// OnlyAvailable narrows products to the ones visible on the storefront.
// Applying it twice changes nothing.
func OnlyAvailable(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Available() {
			out = append(out, p)
		}
	}
	return out
}

// DuplicateIDs returns every ID that appears on more than one product.
// Uniqueness is only enforced at write time; an out-of-band writer racing
// an append can still collide, and this scan is how that shows up.
func DuplicateIDs(products []Product) []string {
	count := make(map[string]int, len(products))
	for _, p := range products {
		count[p.ID]++
	}
	var dups []string
	for _, p := range products {
		if count[p.ID] > 1 {
			count[p.ID] = -1 // report once
			dups = append(dups, p.ID)
		}
	}
	return dups
}
