package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/money"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/tabular"
)

// NewProduct is the validated input for an append. The identifier is
// assigned by the store, never by the caller.
type NewProduct struct {
	Nome       string
	Valor      decimal.Decimal
	DescCurta  string
	DescLonga  string
	LinkImagem string
	Disponivel string
}

// Store reads the catalog through the TTL cache and appends products with
// a computed identifier. All appends in this process serialize on one
// mutex, closing the read-max-then-write window between local writers.
// Writers in other processes are not coordinated; DuplicateIDs exists to
// notice when that bites.
type Store struct {
	api    sheets.API
	loader *tabular.Loader
	log    *zap.SugaredLogger

	mu sync.Mutex
}

// NewStore returns a catalog Store over api and loader.
func NewStore(api sheets.API, loader *tabular.Loader) *Store {
	return &Store{api: api, loader: loader, log: zap.S()}
}

// List returns the decoded catalog, served from cache within ProdutosTTL.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	t, err := s.loader.Load(ctx, Worksheet, tabular.ProdutosTTL)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// Append writes a new product row and returns its assigned identifier.
// It re-reads the worksheet uncached so the identifier is computed against
// the latest committed state, not a stale cache fill. On success the
// produtos cache entry is invalidated.
//
// Known limitation: if the remote store commits the append but the call
// still fails (transport fault after commit), the row exists even though an
// error is returned. Sheets offers no rollback to close this window.
func (s *Store) Append(ctx context.Context, np NewProduct) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.api.GetValues(ctx, Worksheet)
	if err != nil {
		return 0, fmt.Errorf("read catalog before append: %w", err)
	}

	id := nextID(rows)
	row := []interface{}{
		strconv.Itoa(id),
		np.Nome,
		money.FormatBR(np.Valor),
		np.DescCurta,
		np.DescLonga,
		np.LinkImagem,
		np.Disponivel,
	}
	if err := s.api.AppendRow(ctx, Worksheet, row); err != nil {
		return 0, fmt.Errorf("append product: %w", err)
	}

	s.loader.Invalidate(Worksheet)
	s.log.Infow("product appended", "id", id, "nome", np.Nome)
	return id, nil
}

// nextID is one plus the largest integer found in the first column.
// Non-integer first cells (the header row included) are skipped, and gaps
// left by manual edits are not refilled. An empty grid starts at 1.
func nextID(rows [][]interface{}) int {
	max := 0
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		n, err := strconv.Atoi(cast.ToString(row[0]))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
