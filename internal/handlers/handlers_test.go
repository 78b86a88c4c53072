package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/catalog"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/pedidos"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets/sheetstest"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/tabular"
)

var produtosHeader = []interface{}{"ID", "NOME", "VALOR", "DESC_CURTA", "DESC_LONGA", "LINKIMAGEM", "DISPONIVEL"}

func newTestRouter(fake *sheetstest.Fake) *gin.Engine {
	gin.SetMode(gin.TestMode)
	loader := tabular.NewLoader(fake)
	r := gin.New()
	r.Use(RequestID())
	Register(r, Config{
		Catalog: catalog.NewStore(fake, loader),
		Pedidos: pedidos.NewStore(loader),
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestVitrineListsOnlyAvailable(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{
		produtosHeader,
		{"1", "Brigadeiro", "3,50", "", "", "", "Sim"},
		{"2", "Beijinho", "2,00", "", "", "", "Não"},
		{"3", "Bolo", "25,00", "", "", "", "SIM"},
	})
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodGet, "/api/vitrine/produtos", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := parsed["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	require.Equal(t, "1", first["id"])
}

func TestVitrineSchemaMismatchIsDistinctFromEmpty(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{
		{"NOME", "VALOR"},
		{"Brigadeiro", "3,50"},
	})
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodGet, "/api/vitrine/produtos", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "schema_mismatch", parsed["error"])
}

func TestMissingPedidosDoesNotBreakCatalogView(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{
		produtosHeader,
		{"1", "Brigadeiro", "3,50", "", "", "", "Sim"},
	})
	// no pedidos worksheet seeded
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodGet, "/api/admin/pedidos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "worksheet_not_found", parsed["error"])
	require.Empty(t, parsed["data"])

	w, parsed = do(t, r, http.MethodGet, "/api/admin/produtos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, parsed["data"], 1)
}

func TestPermissionFaultRendersAsUnavailable(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{
		produtosHeader,
		{"1", "Brigadeiro", "3,50", "", "", "", "Sim"},
	})
	r := newTestRouter(fake)

	// a revoked credential mid-session surfaces from the client as a
	// store-unavailable operation fault
	fake.Err = fmt.Errorf("%w: The caller does not have permission", sheets.ErrStoreUnavailable)

	w, parsed := do(t, r, http.MethodGet, "/api/vitrine/produtos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "store_unavailable", parsed["error"])
	require.Empty(t, parsed["data"])

	// the fault is per render cycle: the view recovers once the store does
	fake.Err = nil
	w, parsed = do(t, r, http.MethodGet, "/api/vitrine/produtos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, parsed["data"], 1)
}

func TestPedidosListIncludesDecodeFailures(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(pedidos.Worksheet, [][]interface{}{
		{"NOME_CLIENTE", "CONTATO_CLIENTE", "DATA_HORA", "VALOR_TOTAL", "ITENS_PEDIDO"},
		{"Ana", "", "2024-05-01 10:00:00", "12,50", `{"itens":[`},
		{"Bia", "", "2024-05-01 09:00:00", "3,50", `{"itens":[{"quantidade":1,"nome":"Brigadeiro","preco":3.5}]}`},
	})
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodGet, "/api/admin/pedidos", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := parsed["data"].([]interface{})
	require.Len(t, data, 2)

	bad := data[0].(map[string]interface{})
	require.Equal(t, "Ana", bad["nome_cliente"])
	require.NotEmpty(t, bad["itens_err"])
	require.Equal(t, `{"itens":[`, bad["itens_raw"])

	good := data[1].(map[string]interface{})
	require.Nil(t, good["itens_err"])
	require.Len(t, good["itens"], 1)
}

func TestCreateProdutoAssignsNextID(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{
		produtosHeader,
		{"1", "Brigadeiro", "3,50", "", "", "", "Sim"},
		{"3", "Bolo", "25,00", "", "", "", "Sim"},
	})
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodPost, "/api/admin/produtos",
		`{"nome":"Beijinho","valor":4.25,"desc_curta":"coco","disponivel":"Sim"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, float64(4), parsed["id"])

	rows := fake.Rows(catalog.Worksheet)
	last := rows[len(rows)-1]
	require.Equal(t, "4", last[0])
	require.Equal(t, "4,25", last[2]) // comma-decimal on the wire

	// the fresh row is visible immediately despite the catalog TTL
	w, parsed = do(t, r, http.MethodGet, "/api/admin/produtos", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, parsed["data"], 3)
}

func TestCreateProdutoValidation(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{produtosHeader})
	r := newTestRouter(fake)

	w, parsed := do(t, r, http.MethodPost, "/api/admin/produtos", `{"valor":1.5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "validation_failed", parsed["error"])
	require.Len(t, fake.Rows(catalog.Worksheet), 1) // nothing written

	// omitting the price must not bind to a free product
	w, parsed = do(t, r, http.MethodPost, "/api/admin/produtos", `{"nome":"Brigadeiro"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "validation_failed", parsed["error"])
	require.Len(t, fake.Rows(catalog.Worksheet), 1)

	// an explicit zero price is still accepted
	w, parsed = do(t, r, http.MethodPost, "/api/admin/produtos", `{"nome":"Amostra","valor":0}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, float64(1), parsed["id"])
	rows := fake.Rows(catalog.Worksheet)
	require.Equal(t, "0,00", rows[len(rows)-1][2])

	w, parsed = do(t, r, http.MethodPost, "/api/admin/produtos", `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "invalid_request_body", parsed["error"])
}

func TestRequestIDHeader(t *testing.T) {
	fake := sheetstest.New()
	fake.Seed(catalog.Worksheet, [][]interface{}{produtosHeader})
	r := newTestRouter(fake)

	w, _ := do(t, r, http.MethodGet, "/health", "")
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, "abc-123", w2.Header().Get("X-Request-Id"))
}
