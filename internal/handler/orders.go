package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// Create godoc
// @Summary Crea una orden con sus items
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.CreateOrdenRequest true "Orden"
// @Success 201 {object} dto.OrderWithItems
// @Failure 404 {object} apierror.Error
// @Router /order [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Print godoc
// @Summary Genera el comprobante PDF de una orden
// @Tags orders
// @Produce application/pdf
// @Param id path int true "ID de la orden"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.Error
// @Router /order/{id}/print [get]
func (h *OrdersHandler) Print(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apierror.BadRequest(apierror.CodeOrderNotFound, "Id de orden invalido"))
		return
	}

	pdf, svcErr := h.svc.PrintOrder(c.Request.Context(), uint(id))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=orden-%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
