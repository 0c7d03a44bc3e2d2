package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/infra"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubPagoRepo struct {
	byOrden map[uint]*model.Pago
	nextID  uint
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

func newStubPagoRepo() *stubPagoRepo {
	return &stubPagoRepo{byOrden: make(map[uint]*model.Pago), nextID: 1}
}

func (s *stubPagoRepo) CreateTx(_ *gorm.DB, p *model.Pago) error {
	p.ID = s.nextID
	s.nextID++
	s.byOrden[p.OrdenID] = p
	return nil
}

func (s *stubPagoRepo) SaveTx(_ *gorm.DB, p *model.Pago) error {
	s.byOrden[p.OrdenID] = p
	return nil
}

func (s *stubPagoRepo) FindByOrdenID(_ context.Context, ordenID uint) (*model.Pago, error) {
	if p, ok := s.byOrden[ordenID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPagoRepo) DB() *gorm.DB { return nil }

type stubGateway struct {
	session *infra.CheckoutSession
	err     error
	gotURLs infra.RedirectURLs
	items   []infra.CheckoutItem
}

var _ infra.CheckoutGateway = (*stubGateway)(nil)

func (s *stubGateway) CreateSession(_ context.Context, _ uint, items []infra.CheckoutItem, urls infra.RedirectURLs) (*infra.CheckoutSession, error) {
	s.items = items
	s.gotURLs = urls
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubDispatcher struct {
	sent []string
	err  error
}

func (s *stubDispatcher) EnqueueEmail(_ context.Context, to, subject, _ string) error {
	s.sent = append(s.sent, to+"|"+subject)
	return s.err
}

func paymentFixtures(gw infra.CheckoutGateway) (PaymentService, *stubPagoRepo, *stubOrdenRepo, *stubFloorRepo, *stubDispatcher) {
	floors := newStubFloorRepo()
	floors.byID[1] = &model.Floor{ID: 1, Nombre: "Echeveria", Precio: decimal.NewFromInt(100), Stock: 10}

	ordenes := newStubOrdenRepo(floors)
	pagos := newStubPagoRepo()
	dispatcher := &stubDispatcher{}
	breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	svc := NewPaymentService(pagos, ordenes, floors, gw, breaker, dispatcher, testConfig())
	return svc, pagos, ordenes, floors, dispatcher
}

func seedPaidableOrder(ordenes *stubOrdenRepo, cantidad int) *model.Orden {
	orden := &model.Orden{UserID: 1, Estado: model.OrdenPendiente, Total: decimal.NewFromInt(int64(100 * cantidad))}
	_ = ordenes.CreateTx(nil, orden)
	_ = ordenes.CreateItemsTx(nil, []model.OrdenItem{
		{OrdenID: orden.ID, PlantaID: 1, Cantidad: cantidad, PrecioUnitario: decimal.NewFromInt(100)},
	})
	return orden
}

// ── CreatePayment ────────────────────────────────────────────────────────────

func checkoutOrder() *dto.OrderWithItems {
	return &dto.OrderWithItems{
		ID: 1,
		Items: []dto.OrderItemProjection{
			{ID: 1, Cantidad: 2, PrecioUnitario: "100.00", Planta: dto.PlantaSnapshot{ID: 1, Nombre: "Echeveria"}},
			{ID: 2, Cantidad: 1, PrecioUnitario: "200.00", Planta: dto.PlantaSnapshot{ID: 2, Nombre: "Mammillaria"}},
		},
	}
}

func TestCreatePaymentOpensSessionAndPersistsPago(t *testing.T) {
	gw := &stubGateway{session: &infra.CheckoutSession{ID: "cs_123", URL: "https://pay/cs_123"}}
	svc, pagos, ordenes, _, _ := paymentFixtures(gw)
	seedPaidableOrder(ordenes, 2)

	resp, err := svc.CreatePayment(context.Background(), checkoutOrder())
	require.NoError(t, err)

	assert.Equal(t, "cs_123", resp.SessionID)
	assert.Equal(t, "https://pay/cs_123", resp.PaymentURL)

	pago := pagos.byOrden[1]
	require.NotNil(t, pago)
	assert.Equal(t, model.PagoPendiente, pago.Estado)
	assert.Equal(t, model.MetodoTarjeta, pago.Metodo)
	assert.True(t, pago.Monto.Equal(decimal.NewFromInt(400)), "monto %s", pago.Monto)

	// Orden now references the pago
	assert.Equal(t, pago.ID, ordenes.pagoSet[1])

	// Line items mapped from the projection
	require.Len(t, gw.items, 2)
	assert.Equal(t, "Echeveria", gw.items[0].Title)
	assert.InDelta(t, 100.0, gw.items[0].UnitPrice, 0.001)
}

func TestCreatePaymentGatewayFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("provider down")}
	svc, pagos, _, _, _ := paymentFixtures(gw)

	_, err := svc.CreatePayment(context.Background(), checkoutOrder())
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodePaymentCreateFailed, ae.Code)

	assert.Empty(t, pagos.byOrden, "no pago row on gateway failure")
}

func TestCreatePaymentCircuitOpens(t *testing.T) {
	gw := &stubGateway{err: errors.New("provider down")}
	svc, _, _, _, _ := paymentFixtures(gw)

	// Trip the breaker with consecutive failures
	for i := 0; i < 6; i++ {
		_, err := svc.CreatePayment(context.Background(), checkoutOrder())
		require.Error(t, err)
	}

	// Now the gateway would succeed, but the breaker is open and fails fast
	gw.err = nil
	gw.session = &infra.CheckoutSession{ID: "cs_ok", URL: "https://pay/cs_ok"}
	_, err := svc.CreatePayment(context.Background(), checkoutOrder())
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodePaymentCreateFailed, ae.Code)
}

// ── HandleWebhook ────────────────────────────────────────────────────────────

func TestWebhookConfirmationMarksPaidAndDecrementsStock(t *testing.T) {
	gw := &stubGateway{session: &infra.CheckoutSession{ID: "cs", URL: "u"}}
	svc, pagos, ordenes, floors, dispatcher := paymentFixtures(gw)
	orden := seedPaidableOrder(ordenes, 3)
	_ = pagos.CreateTx(nil, &model.Pago{OrdenID: orden.ID, Monto: orden.Total, Metodo: model.MetodoTarjeta, Estado: model.PagoPendiente})

	ack, err := svc.HandleWebhook(context.Background(), dto.WebhookRequest{
		OrderID: orden.ID, Status: model.PagoConfirmado, Amount: orden.Total, Method: model.MetodoTarjeta,
	})
	require.NoError(t, err)
	assert.True(t, ack.Received)

	assert.Equal(t, model.PagoConfirmado, pagos.byOrden[orden.ID].Estado)
	assert.Equal(t, model.OrdenPagado, ordenes.ordenes[orden.ID].Estado)
	assert.Equal(t, 7, floors.byID[1].Stock)
	assert.Len(t, dispatcher.sent, 1)
}

func TestWebhookReplayedConfirmationDecrementsOnce(t *testing.T) {
	gw := &stubGateway{session: &infra.CheckoutSession{ID: "cs", URL: "u"}}
	svc, pagos, ordenes, floors, _ := paymentFixtures(gw)
	orden := seedPaidableOrder(ordenes, 3)
	_ = pagos.CreateTx(nil, &model.Pago{OrdenID: orden.ID, Monto: orden.Total, Metodo: model.MetodoTarjeta, Estado: model.PagoPendiente})

	req := dto.WebhookRequest{OrderID: orden.ID, Status: model.PagoConfirmado, Amount: orden.Total}
	_, err := svc.HandleWebhook(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.HandleWebhook(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 7, floors.byID[1].Stock, "replay must not decrement twice")
}

func TestWebhookNonConfirmedTouchesOnlyPago(t *testing.T) {
	gw := &stubGateway{session: &infra.CheckoutSession{ID: "cs", URL: "u"}}
	svc, pagos, ordenes, floors, dispatcher := paymentFixtures(gw)
	orden := seedPaidableOrder(ordenes, 3)
	_ = pagos.CreateTx(nil, &model.Pago{OrdenID: orden.ID, Monto: orden.Total, Metodo: model.MetodoTarjeta, Estado: model.PagoPendiente})

	_, err := svc.HandleWebhook(context.Background(), dto.WebhookRequest{
		OrderID: orden.ID, Status: model.PagoFallido,
	})
	require.NoError(t, err)

	assert.Equal(t, model.PagoFallido, pagos.byOrden[orden.ID].Estado)
	assert.Equal(t, model.OrdenPendiente, ordenes.ordenes[orden.ID].Estado)
	assert.Equal(t, 10, floors.byID[1].Stock)
	assert.Empty(t, dispatcher.sent)
}

func TestWebhookUnknownOrder(t *testing.T) {
	gw := &stubGateway{}
	svc, _, _, _, _ := paymentFixtures(gw)

	_, err := svc.HandleWebhook(context.Background(), dto.WebhookRequest{
		OrderID: 999, Status: model.PagoConfirmado,
	})
	require.Error(t, err)
	ae, ok := apierror.From(err)
	require.True(t, ok)
	assert.Equal(t, apierror.CodeOrderNotFound, ae.Code)
}

func TestWebhookRepairsMissingPago(t *testing.T) {
	gw := &stubGateway{}
	svc, pagos, ordenes, floors, _ := paymentFixtures(gw)
	orden := seedPaidableOrder(ordenes, 2)

	ack, err := svc.HandleWebhook(context.Background(), dto.WebhookRequest{
		OrderID: orden.ID,
		Status:  model.PagoConfirmado,
		Amount:  decimal.NewFromInt(200),
		Method:  model.MetodoEfectivo,
	})
	require.NoError(t, err)
	assert.True(t, ack.Received)

	pago := pagos.byOrden[orden.ID]
	require.NotNil(t, pago, "webhook creates the missing pago")
	assert.Equal(t, model.PagoConfirmado, pago.Estado)
	assert.Equal(t, model.MetodoEfectivo, pago.Metodo)
	assert.True(t, pago.Monto.Equal(decimal.NewFromInt(200)))

	assert.Equal(t, pago.ID, ordenes.pagoSet[orden.ID])
	assert.Equal(t, model.OrdenPagado, ordenes.ordenes[orden.ID].Estado)
	assert.Equal(t, 8, floors.byID[1].Stock)
}
