package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubPaymentSvc struct {
	ack        *dto.WebhookAck
	webhookErr error
	payment    *dto.PaymentResponse
	paymentErr error
	gotWebhook dto.WebhookRequest
}

var _ service.PaymentService = (*stubPaymentSvc)(nil)

func (s *stubPaymentSvc) CreatePayment(_ context.Context, _ *dto.OrderWithItems) (*dto.PaymentResponse, error) {
	return s.payment, s.paymentErr
}

func (s *stubPaymentSvc) HandleWebhook(_ context.Context, req dto.WebhookRequest) (*dto.WebhookAck, error) {
	s.gotWebhook = req
	if s.webhookErr != nil {
		return nil, s.webhookErr
	}
	return s.ack, nil
}

type stubOrderSvc struct {
	order *dto.OrderWithItems
	pdf   []byte
	err   error
}

var _ service.OrderService = (*stubOrderSvc)(nil)

func (s *stubOrderSvc) CreateOrder(_ context.Context, _ dto.CreateOrdenRequest) (*dto.OrderWithItems, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) GetOrderWithItems(_ context.Context, _ uint) (*dto.OrderWithItems, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) PrintOrder(_ context.Context, _ uint) ([]byte, error) {
	return s.pdf, s.err
}

type stubMailSvc struct {
	sent int
	err  error
}

var _ service.MailService = (*stubMailSvc)(nil)

func (s *stubMailSvc) SendOrderMail(_ context.Context, _ string, _ uint, _ []byte) error {
	s.sent++
	return s.err
}

func webhookRouter(pay *stubPaymentSvc) *gin.Engine {
	r := gin.New()
	h := NewPaymentsHandler(&stubOrderSvc{}, pay, &stubMailSvc{}, &config.Config{})
	r.POST("/payments/webhook", h.Webhook)
	return r
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestWebhookRespondsPlainOK(t *testing.T) {
	pay := &stubPaymentSvc{ack: &dto.WebhookAck{Received: true}}
	r := webhookRouter(pay)

	body := []byte(`{"orderId":7,"status":"CONFIRMADO","paymentId":"cs_1","amount":"400.00","method":"TARJETA"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, uint(7), pay.gotWebhook.OrderID)
	assert.Equal(t, "CONFIRMADO", pay.gotWebhook.Status)
}

func TestWebhookValidationErrorShape(t *testing.T) {
	r := webhookRouter(&stubPaymentSvc{ack: &dto.WebhookAck{Received: true}})

	// Missing orderId and status
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierror.CodeValidationError, resp.Code)
	assert.Contains(t, resp.Errors, "OrderID")
	assert.Contains(t, resp.Errors, "Status")
}

func TestWebhookServiceErrorEnvelope(t *testing.T) {
	pay := &stubPaymentSvc{webhookErr: apierror.NotFound(apierror.CodeOrderNotFound, "Orden no encontrada")}
	r := webhookRouter(pay)

	body := []byte(`{"orderId":999,"status":"CONFIRMADO"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp apierror.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierror.CodeOrderNotFound, resp.Code)
}

func TestCheckoutPipelineOrder(t *testing.T) {
	orders := &stubOrderSvc{
		order: &dto.OrderWithItems{ID: 3, Items: []dto.OrderItemProjection{}},
		pdf:   []byte("%PDF"),
	}
	mail := &stubMailSvc{}
	pay := &stubPaymentSvc{payment: &dto.PaymentResponse{SessionID: "cs_3", PaymentURL: "https://pay/cs_3", PagoID: 1}}

	r := gin.New()
	h := NewPaymentsHandler(orders, pay, mail, &config.Config{NotifyEmail: "shop@captus.com"})
	r.POST("/payments/checkout", h.Checkout)

	body := []byte(`{"userId":1,"items":[{"plantId":1,"quantity":2}]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, mail.sent)

	var resp dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(3), resp.Order.ID)
	assert.Equal(t, "cs_3", resp.Payment.SessionID)
}

func TestCreatePaymentForExistingOrder(t *testing.T) {
	mail := &stubMailSvc{}
	pay := &stubPaymentSvc{payment: &dto.PaymentResponse{SessionID: "cs_9", PaymentURL: "https://pay/cs_9", PagoID: 2}}

	r := gin.New()
	h := NewPaymentsHandler(&stubOrderSvc{}, pay, mail, &config.Config{})
	r.POST("/payments/create", h.Create)

	body := []byte(`{"id":9,"items":[{"id":1,"planta":{"id":1},"cantidad":2,"precioUnitario":"100.00"}]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/create", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Zero(t, mail.sent)

	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_9", resp.SessionID)
}
