package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

type PaymentsHandler struct {
	orders   service.OrderService
	payments service.PaymentService
	mail     service.MailService
	cfg      *config.Config
}

func NewPaymentsHandler(
	orders service.OrderService,
	payments service.PaymentService,
	mail service.MailService,
	cfg *config.Config,
) *PaymentsHandler {
	return &PaymentsHandler{orders: orders, payments: payments, mail: mail, cfg: cfg}
}

// Create godoc
// @Summary Abre una sesion de pago para una orden ya creada
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.OrderWithItems true "Orden a pagar"
// @Success 201 {object} dto.PaymentResponse
// @Failure 500 {object} apierror.Error
// @Router /payments/create [post]
func (h *PaymentsHandler) Create(c *gin.Context) {
	var order dto.OrderWithItems
	if !bindAndValidate(c, &order) {
		return
	}

	payment, err := h.payments.CreatePayment(c.Request.Context(), &order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// Checkout godoc
// @Summary Crea la orden, envia el comprobante por correo y abre la sesion de pago
// @Tags payments
// @Accept json
// @Produce json
// @Param body body dto.CreateOrdenRequest true "Orden a crear y pagar"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 404 {object} apierror.Error
// @Failure 500 {object} apierror.Error
// @Router /payments/checkout [post]
func (h *PaymentsHandler) Checkout(c *gin.Context) {
	var req dto.CreateOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()

	order, err := h.orders.CreateOrder(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.orders.PrintOrder(ctx, order.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.mail.SendOrderMail(ctx, h.cfg.NotifyEmail, order.ID, pdf); err != nil {
		respondError(c, err)
		return
	}

	payment, err := h.payments.CreatePayment(ctx, order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{Order: *order, Payment: *payment})
}

// Webhook godoc
// @Summary Recibe la notificacion de pago del proveedor
// @Tags payments
// @Accept json
// @Produce plain
// @Param body body dto.WebhookRequest true "Notificacion"
// @Success 200 {string} string "ok"
// @Router /payments/webhook [post]
func (h *PaymentsHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	ack, err := h.payments.HandleWebhook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Info().Uint("orden_id", req.OrderID).Str("status", req.Status).
		Bool("received", ack.Received).Msg("webhook procesado")
	c.String(http.StatusOK, "ok")
}

// Success is the provider redirect target after an approved payment.
func (h *PaymentsHandler) Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Pago aprobado"})
}

// Failure is the provider redirect target after a rejected payment.
func (h *PaymentsHandler) Failure(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "failure", "message": "Pago rechazado"})
}

// Pending is the provider redirect target while the payment is in review.
func (h *PaymentsHandler) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "pending", "message": "Pago pendiente"})
}
