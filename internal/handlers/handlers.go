// Package handlers wires the admin and storefront views onto gin. Layout
// and rendering live elsewhere; these routes only serve the data each view
// asks for, and every failure stays inside the view that hit it.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/catalog"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/pedidos"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/sheets"
	"github.com/ribeiromendes5014-design/Catalago-sub000/internal/validation"
)

// Config groups dependencies for the route handlers.
type Config struct {
	Catalog *catalog.Store
	Pedidos *pedidos.Store
	Log     *zap.SugaredLogger
}

// RequestID tags every request with an X-Request-Id, generating one when
// the caller did not send it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// Register mounts every route.
func Register(r *gin.Engine, cfg Config) {
	if cfg.Log == nil {
		cfg.Log = zap.S()
	}
	v := validation.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/vitrine/produtos", cfg.listVitrine)

	admin := r.Group("/api/admin")
	admin.GET("/pedidos", cfg.listPedidos)
	admin.GET("/produtos", cfg.listProdutos)
	admin.POST("/produtos", func(c *gin.Context) { cfg.createProduto(c, v) })
}

// listVitrine serves the storefront: available products only.
func (cfg Config) listVitrine(c *gin.Context) {
	ps, err := cfg.Catalog.List(c.Request.Context())
	if err != nil {
		cfg.renderLoadError(c, "vitrine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": catalog.OnlyAvailable(ps)})
}

// listProdutos serves the admin catalog, availability flag included.
func (cfg Config) listProdutos(c *gin.Context) {
	ps, err := cfg.Catalog.List(c.Request.Context())
	if err != nil {
		cfg.renderLoadError(c, "admin/produtos", err)
		return
	}
	if dups := catalog.DuplicateIDs(ps); len(dups) > 0 {
		cfg.Log.Warnw("catalog has duplicate ids", "ids", dups)
	}
	c.JSON(http.StatusOK, gin.H{"data": ps})
}

// listPedidos serves the admin order list, newest first. Orders whose item
// payload failed to decode still appear, carrying the raw text and reason.
func (cfg Config) listPedidos(c *gin.Context) {
	ps, err := cfg.Pedidos.List(c.Request.Context())
	if err != nil {
		cfg.renderLoadError(c, "admin/pedidos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ps})
}

func (cfg Config) createProduto(c *gin.Context, v *validatorv10.Validate) {
	var req validation.CreateProductRequest
	if err := validation.BindAndValidate(c, &req, v); err != nil {
		return // 400 already written
	}

	disponivel := req.Disponivel
	if disponivel == "" {
		disponivel = "Sim"
	}
	np := catalog.NewProduct{
		Nome:       req.Nome,
		Valor:      decimal.NewFromFloat(*req.Valor).Round(2),
		DescCurta:  req.DescCurta,
		DescLonga:  req.DescLonga,
		LinkImagem: req.LinkImagem,
		Disponivel: disponivel,
	}
	id, err := cfg.Catalog.Append(c.Request.Context(), np)
	if err != nil {
		cfg.Log.Errorw("append product failed", "nome", req.Nome, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store_unavailable", "detail": err.Error()})
		return
	}

	// post-condition scan for the uncoordinated-writer race
	if ps, lerr := cfg.Catalog.List(c.Request.Context()); lerr == nil {
		if dups := catalog.DuplicateIDs(ps); len(dups) > 0 {
			cfg.Log.Warnw("duplicate ids after append", "ids", dups)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "nome": req.Nome})
}

// renderLoadError keeps a failed load inside its view: recoverable faults
// render an empty dataset plus an inline diagnostic, so the rest of the
// page keeps working.
func (cfg Config) renderLoadError(c *gin.Context, view string, err error) {
	switch {
	case errors.Is(err, sheets.ErrWorksheetNotFound):
		cfg.Log.Warnw("worksheet missing", "view", view, "err", err)
		c.JSON(http.StatusOK, gin.H{"data": []struct{}{}, "error": "worksheet_not_found", "detail": err.Error()})
	case errors.Is(err, sheets.ErrStoreUnavailable):
		cfg.Log.Warnw("store unavailable", "view", view, "err", err)
		c.JSON(http.StatusOK, gin.H{"data": []struct{}{}, "error": "store_unavailable", "detail": err.Error()})
	case errors.Is(err, catalog.ErrSchemaMismatch):
		cfg.Log.Errorw("schema mismatch", "view", view, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "schema_mismatch", "detail": err.Error()})
	default:
		cfg.Log.Errorw("load failed", "view", view, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load_failed", "detail": err.Error()})
	}
}
