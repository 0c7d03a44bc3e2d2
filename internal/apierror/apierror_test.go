package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	original := NotFound(CodeOrderNotFound, "Orden no encontrada")
	wrapped := fmt.Errorf("tx failed: %w", original)

	out := Classify(wrapped, CodeCreateOrderError, "Error al crear la orden")
	assert.Equal(t, CodeOrderNotFound, out.Code)
	assert.Equal(t, http.StatusNotFound, out.Status)
}

func TestClassifyWrapsUnknownErrors(t *testing.T) {
	out := Classify(errors.New("pq: connection refused"), CodeCreateOrderError, "Error al crear la orden")
	assert.Equal(t, CodeCreateOrderError, out.Code)
	assert.Equal(t, http.StatusInternalServerError, out.Status)
	assert.Equal(t, "Error al crear la orden", out.Message)
}

func TestFrom(t *testing.T) {
	_, ok := From(errors.New("plain"))
	assert.False(t, ok)

	ae, ok := From(Conflict(CodeUserExists, "ya existe"))
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, ae.Status)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "USER_EXISTS: ya existe", Conflict(CodeUserExists, "ya existe").Error())
	assert.Equal(t, "USER_EXISTS", New(CodeUserExists, http.StatusConflict, "").Error())
}

func TestNewValidationShape(t *testing.T) {
	v := NewValidation(map[string]string{"Email": "required"})
	assert.Equal(t, CodeValidationError, v.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, v.Status)
	assert.Equal(t, "required", v.Errors["Email"])
}
