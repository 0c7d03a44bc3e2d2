package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/FredesVirginia/captus-back/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest,
			apierror.BadRequest("INVALID_JSON", "JSON invalido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQueryAndValidate is the query-string variant of bindAndValidate.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest,
			apierror.BadRequest("INVALID_QUERY", "Parametros invalidos: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError writes the classified envelope, or a generic 500 when the
// error never went through the service boundary.
func respondError(c *gin.Context, err error) {
	if ae, ok := apierror.From(err); ok {
		c.JSON(ae.Status, ae)
		return
	}
	c.JSON(http.StatusInternalServerError,
		apierror.Internal(apierror.CodeInternalServer, "Error interno del servidor"))
}
