package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

// runTx runs fn inside a database transaction. With a nil db (unit tests on
// stub repositories) fn runs directly with a nil tx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ReceiptPrinter turns a fully loaded order into a PDF receipt.
type ReceiptPrinter interface {
	Print(ctx context.Context, order *model.Orden) ([]byte, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrdenRequest) (*dto.OrderWithItems, error)
	GetOrderWithItems(ctx context.Context, id uint) (*dto.OrderWithItems, error)
	// PrintOrder renders the order receipt as a PDF document.
	PrintOrder(ctx context.Context, id uint) ([]byte, error)
}

type orderService struct {
	ordenRepo repository.OrdenRepository
	floorRepo repository.FloorRepository
	userRepo  repository.UserRepository
	printer   ReceiptPrinter
}

func NewOrderService(
	ordenRepo repository.OrdenRepository,
	floorRepo repository.FloorRepository,
	userRepo repository.UserRepository,
	printer ReceiptPrinter,
) OrderService {
	return &orderService{
		ordenRepo: ordenRepo,
		floorRepo: floorRepo,
		userRepo:  userRepo,
		printer:   printer,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrdenRequest) (*dto.OrderWithItems, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, apierror.NotFound(apierror.CodeUserNotFound, "Usuario no encontrado")
	}

	orden := &model.Orden{
		UserID: req.UserID,
		Estado: model.OrdenPendiente,
		Total:  decimal.Zero,
	}

	txErr := runTx(ctx, s.ordenRepo.DB(), func(tx *gorm.DB) error {
		if err := s.ordenRepo.CreateTx(tx, orden); err != nil {
			return err
		}

		total := decimal.Zero
		items := make([]model.OrdenItem, 0, len(req.Items))
		for _, it := range req.Items {
			planta, err := s.floorRepo.FindByID(ctx, it.PlantID)
			if err != nil {
				return apierror.NotFound(apierror.CodePlantNotFound,
					fmt.Sprintf("Planta con id %d no encontrada", it.PlantID))
			}
			// Unit price is frozen at purchase time.
			items = append(items, model.OrdenItem{
				OrdenID:        orden.ID,
				PlantaID:       planta.ID,
				Cantidad:       it.Quantity,
				PrecioUnitario: planta.Precio,
			})
			total = total.Add(planta.Precio.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		if err := s.ordenRepo.CreateItemsTx(tx, items); err != nil {
			return err
		}

		orden.Total = total
		return s.ordenRepo.SaveTx(tx, orden)
	})
	if txErr != nil {
		return nil, apierror.Classify(txErr, apierror.CodeCreateOrderError, "Error al crear la orden")
	}

	loaded, err := s.ordenRepo.FindWithItems(ctx, orden.ID)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeCreateOrderError, "Error al crear la orden")
	}
	return projectOrder(loaded), nil
}

func (s *orderService) GetOrderWithItems(ctx context.Context, id uint) (*dto.OrderWithItems, error) {
	orden, err := s.ordenRepo.FindWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(apierror.CodeOrderNotFound, "Orden no encontrada")
		}
		return nil, apierror.Classify(err, apierror.CodeGetOrderError, "Error al obtener la orden")
	}
	return projectOrder(orden), nil
}

func (s *orderService) PrintOrder(ctx context.Context, id uint) ([]byte, error) {
	orden, err := s.ordenRepo.FindForPrint(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound(apierror.CodeOrderNotFound, "Orden no encontrada")
		}
		return nil, apierror.Classify(err, apierror.CodePrintOrderError, "Error al imprimir la orden")
	}

	pdf, err := s.printer.Print(ctx, orden)
	if err != nil {
		if classified, ok := apierror.From(err); ok {
			return nil, classified
		}
		return nil, apierror.Internal(apierror.CodePdfGenerationFailed, "No se pudo generar el PDF")
	}
	return pdf, nil
}

func projectOrder(orden *model.Orden) *dto.OrderWithItems {
	items := make([]dto.OrderItemProjection, 0, len(orden.Items))
	for _, it := range orden.Items {
		proj := dto.OrderItemProjection{
			ID:             it.ID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario.StringFixed(2),
		}
		if it.Planta != nil {
			proj.Planta = dto.PlantaSnapshot{
				ID:          it.Planta.ID,
				Nombre:      it.Planta.Nombre,
				Descripcion: it.Planta.Descripcion,
				Categoria:   it.Planta.Categoria,
				Precio:      it.Planta.Precio.StringFixed(2),
				Stock:       it.Planta.Stock,
				ImagenURL:   it.Planta.ImagenURL,
			}
		}
		items = append(items, proj)
	}
	return &dto.OrderWithItems{ID: orden.ID, Items: items}
}
