package tabular

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
)

// Freshness windows per worksheet. The admin view needs near-real-time
// order visibility; the catalog changes rarely.
const (
	PedidosTTL  = time.Minute
	ProdutosTTL = 10 * time.Minute
)

// Loader is a read-through TTL cache over the sheets API, keyed by
// worksheet name. Cache entries carry their own TTL so the two call sites
// can keep independent freshness windows. There is no per-key locking:
// concurrent misses may fetch the same worksheet twice, which is duplicate
// work but not a correctness problem.
type Loader struct {
	api   sheets.API
	cache *gocache.Cache
	log   *zap.SugaredLogger
}

// NewLoader returns a Loader over api.
func NewLoader(api sheets.API) *Loader {
	return &Loader{
		api:   api,
		cache: gocache.New(gocache.NoExpiration, 2*time.Minute),
		log:   zap.S(),
	}
}

// Load returns the named worksheet as a Table, serving from cache while the
// entry is younger than ttl. Failures are never cached.
func (l *Loader) Load(ctx context.Context, worksheet string, ttl time.Duration) (Table, error) {
	if v, ok := l.cache.Get(worksheet); ok {
		return v.(Table), nil
	}

	rows, err := l.api.GetValues(ctx, worksheet)
	if err != nil {
		return Table{}, err
	}
	t, err := FromRows(rows)
	if err != nil {
		return Table{}, err
	}

	l.cache.Set(worksheet, t, ttl)
	l.log.Debugw("worksheet loaded", "worksheet", worksheet, "records", len(t.Records), "ttl", ttl)
	return t, nil
}

// Invalidate drops the cached entry for one worksheet. Writes invalidate
// only the worksheet they touched; the two views are independent.
func (l *Loader) Invalidate(worksheet string) {
	l.cache.Delete(worksheet)
}

// InvalidateAll drops every cached entry.
func (l *Loader) InvalidateAll() {
	l.cache.Flush()
}
