// Package pedidos reads the orders worksheet. Orders are written by an
// external ordering process; this side only lists them.
package pedidos

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/money"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/tabular"
)

// Worksheet is the orders tab name.
const Worksheet = "pedidos"

// Column names of the orders worksheet.
const (
	ColNomeCliente    = "NOME_CLIENTE"
	ColContatoCliente = "CONTATO_CLIENTE"
	ColDataHora       = "DATA_HORA"
	ColValorTotal     = "VALOR_TOTAL"
	ColItensPedido    = "ITENS_PEDIDO"
)

// Item is one line of an order, a denormalized snapshot of the product at
// order time. There is no live reference back to the catalog.
type Item struct {
	Quantidade int             `json:"quantidade"`
	Nome       string          `json:"nome"`
	Preco      decimal.Decimal `json:"preco"`
}

type itensPayload struct {
	Itens []Item `json:"itens"`
}

// Pedido is one order record. When the item payload cannot be decoded, the
// failure stays on this record: Itens is nil, ItensErr holds the reason and
// ItensRaw the untouched cell text for display.
type Pedido struct {
	NomeCliente    string              `json:"nome_cliente"`
	ContatoCliente string              `json:"contato_cliente"`
	DataHora       string              `json:"data_hora"`
	ValorTotal     decimal.NullDecimal `json:"valor_total"`
	Itens          []Item              `json:"itens,omitempty"`
	ItensRaw       string              `json:"itens_raw,omitempty"`
	ItensErr       string              `json:"itens_err,omitempty"`
}

// FromTable decodes a loaded worksheet into orders, newest first. A record
// with a malformed item payload still lists; only its detail carries the
// decode failure.
func FromTable(t tabular.Table) []Pedido {
	out := make([]Pedido, 0, len(t.Records))
	for _, rec := range t.Records {
		p := Pedido{
			NomeCliente:    rec[ColNomeCliente],
			ContatoCliente: rec[ColContatoCliente],
			DataHora:       rec[ColDataHora],
			ValorTotal:     money.ParseBR(rec[ColValorTotal]),
		}
		if raw := strings.TrimSpace(rec[ColItensPedido]); raw != "" {
			var payload itensPayload
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				p.ItensRaw = raw
				p.ItensErr = err.Error()
			} else {
				p.Itens = payload.Itens
			}
		}
		out = append(out, p)
	}

	// DATA_HORA text sorts lexicographically as a chronology proxy
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DataHora > out[j].DataHora
	})
	return out
}

// Store reads orders through the TTL cache.
type Store struct {
	loader *tabular.Loader
}

// NewStore returns an orders Store over loader.
func NewStore(loader *tabular.Loader) *Store {
	return &Store{loader: loader}
}

// List returns the decoded orders, served from cache within PedidosTTL.
func (s *Store) List(ctx context.Context) ([]Pedido, error) {
	t, err := s.loader.Load(ctx, Worksheet, tabular.PedidosTTL)
	if err != nil {
		return nil, err
	}
	return FromTable(t), nil
}
