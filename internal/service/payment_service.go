package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/infra"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

// EmailDispatcher queues a notification email for async delivery.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

type PaymentService interface {
	CreatePayment(ctx context.Context, order *dto.OrderWithItems) (*dto.PaymentResponse, error)
	HandleWebhook(ctx context.Context, req dto.WebhookRequest) (*dto.WebhookAck, error)
}

type paymentService struct {
	pagoRepo   repository.PagoRepository
	ordenRepo  repository.OrdenRepository
	floorRepo  repository.FloorRepository
	gateway    infra.CheckoutGateway
	breaker    *infra.CircuitBreaker
	dispatcher EmailDispatcher
	cfg        *config.Config
}

func NewPaymentService(
	pagoRepo repository.PagoRepository,
	ordenRepo repository.OrdenRepository,
	floorRepo repository.FloorRepository,
	gateway infra.CheckoutGateway,
	breaker *infra.CircuitBreaker,
	dispatcher EmailDispatcher,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		pagoRepo:   pagoRepo,
		ordenRepo:  ordenRepo,
		floorRepo:  floorRepo,
		gateway:    gateway,
		breaker:    breaker,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, order *dto.OrderWithItems) (*dto.PaymentResponse, error) {
	items := make([]infra.CheckoutItem, 0, len(order.Items))
	monto := decimal.Zero
	for _, it := range order.Items {
		precio, err := decimal.NewFromString(it.PrecioUnitario)
		if err != nil {
			return nil, apierror.Classify(err, apierror.CodeCreatePaymentError, "Error al crear el pago")
		}
		items = append(items, infra.CheckoutItem{
			Title:     it.Planta.Nombre,
			UnitPrice: precio.InexactFloat64(),
			Quantity:  it.Cantidad,
		})
		monto = monto.Add(precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}

	var session *infra.CheckoutSession
	err := s.breaker.Execute(func() error {
		var gwErr error
		session, gwErr = s.gateway.CreateSession(ctx, order.ID, items, infra.RedirectURLs{
			Success: s.cfg.PaymentSuccessURL,
			Failure: s.cfg.PaymentFailureURL,
			Pending: s.cfg.PaymentPendingURL,
		})
		return gwErr
	})
	if err != nil {
		return nil, apierror.Internal(apierror.CodePaymentCreateFailed, "No se pudo crear la sesion de pago")
	}

	pago := &model.Pago{
		OrdenID: order.ID,
		Monto:   monto,
		Metodo:  model.MetodoTarjeta,
		Estado:  model.PagoPendiente,
	}
	txErr := runTx(ctx, s.pagoRepo.DB(), func(tx *gorm.DB) error {
		if err := s.pagoRepo.CreateTx(tx, pago); err != nil {
			return err
		}
		return s.ordenRepo.SetPagoTx(tx, order.ID, pago.ID)
	})
	if txErr != nil {
		return nil, apierror.Classify(txErr, apierror.CodeCreatePaymentError, "Error al crear el pago")
	}

	return &dto.PaymentResponse{
		SessionID:  session.ID,
		PaymentURL: session.URL,
		PagoID:     pago.ID,
	}, nil
}

// HandleWebhook reconciles a provider notification against the stored payment.
// Stock is decremented only on the first transition into CONFIRMADO, so a
// replayed notification cannot drain inventory twice.
func (s *paymentService) HandleWebhook(ctx context.Context, req dto.WebhookRequest) (*dto.WebhookAck, error) {
	pago, err := s.pagoRepo.FindByOrdenID(ctx, req.OrderID)
	prevEstado := ""
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Classify(err, apierror.CodeWebhookError, "Error al procesar el webhook")
		}
		// Repair path: the notification arrived before (or without) a local
		// payment record.
		if _, err := s.ordenRepo.FindByID(ctx, req.OrderID); err != nil {
			return nil, apierror.NotFound(apierror.CodeOrderNotFound, "Orden no encontrada")
		}
		metodo := req.Method
		if metodo == "" {
			metodo = model.MetodoTarjeta
		}
		pago = &model.Pago{
			OrdenID: req.OrderID,
			Monto:   req.Amount,
			Metodo:  metodo,
			Estado:  model.PagoPendiente,
		}
	} else {
		prevEstado = pago.Estado
	}
	pago.Estado = req.Status

	txErr := runTx(ctx, s.pagoRepo.DB(), func(tx *gorm.DB) error {
		if pago.ID == 0 {
			if err := s.pagoRepo.CreateTx(tx, pago); err != nil {
				return err
			}
			if err := s.ordenRepo.SetPagoTx(tx, req.OrderID, pago.ID); err != nil {
				return err
			}
		} else if err := s.pagoRepo.SaveTx(tx, pago); err != nil {
			return err
		}

		if req.Status != model.PagoConfirmado || prevEstado == model.PagoConfirmado {
			return nil
		}

		orden, err := s.ordenRepo.FindWithItems(ctx, req.OrderID)
		if err != nil {
			return apierror.NotFound(apierror.CodeOrderNotFound, "Orden no encontrada")
		}
		orden.Estado = model.OrdenPagado
		if err := s.ordenRepo.SaveTx(tx, orden); err != nil {
			return err
		}

		for _, item := range orden.Items {
			if _, err := s.floorRepo.FindByID(ctx, item.PlantaID); err != nil {
				log.Warn().
					Uint("orden_id", orden.ID).
					Uint("planta_id", item.PlantaID).
					Msg("webhook: planta no encontrada, stock sin ajustar")
				continue
			}
			if err := s.floorRepo.UpdateStockTx(tx, item.PlantaID, -item.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, apierror.Classify(txErr, apierror.CodeWebhookError, "Error al procesar el webhook")
	}

	if s.dispatcher != nil && req.Status == model.PagoConfirmado && prevEstado != model.PagoConfirmado {
		subject := "Pago confirmado"
		body := fmt.Sprintf("El pago de la orden #%d fue confirmado.", req.OrderID)
		if err := s.dispatcher.EnqueueEmail(ctx, s.cfg.NotifyEmail, subject, body); err != nil {
			log.Warn().Err(err).Uint("orden_id", req.OrderID).Msg("webhook: no se pudo encolar el email")
		}
	}

	return &dto.WebhookAck{Received: true}, nil
}
