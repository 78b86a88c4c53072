// Package validation binds and validates write-path payloads before any
// row reaches the store.
package validation

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// CreateProductRequest is the payload for POST /api/admin/produtos.
// Valor is a pointer so an omitted price is rejected instead of binding to
// a free product; an explicit 0 stays legal.
type CreateProductRequest struct {
	Nome       string   `json:"nome" validate:"required,min=1,max=200"`
	Valor      *float64 `json:"valor" validate:"required,gte=0"`
	DescCurta  string  `json:"desc_curta" validate:"max=200"`
	DescLonga  string  `json:"desc_longa"`
	LinkImagem string  `json:"link_imagem" validate:"omitempty,url"`
	Disponivel string  `json:"disponivel" validate:"omitempty,oneof=Sim Não sim não SIM NÃO"`
}

// New returns a configured validator with the product struct-level rules
// registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(createProductStructValidation, CreateProductRequest{})
	return v
}

// createProductStructValidation rejects prices with more than two decimal
// places: the store's currency text carries exactly two.
func createProductStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateProductRequest)
	if req.Valor == nil {
		return // the required tag reports the missing field
	}

	cents := *req.Valor * 100
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		sl.ReportError(req.Valor, "valor", "Valor", "valor_scale", "")
	}
}

// BindAndValidate binds the JSON body into out and validates it. On failure
// it writes the 400 response itself and returns the error so the handler can
// short-circuit.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid_request_body",
			"detail": err.Error(),
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_failed",
			"fields": errorsToMap(err),
		})
		return err
	}
	return nil
}

func errorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
