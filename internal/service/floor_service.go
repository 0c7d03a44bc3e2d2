package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/infra"
	"github.com/FredesVirginia/captus-back/internal/model"
	"github.com/FredesVirginia/captus-back/internal/repository"
)

const (
	floorCacheVersionKey = "floors:ver"
	floorCacheTTL        = 60 * time.Second
)

type FloorService interface {
	UploadImage(ctx context.Context, filename, contentType string, file io.Reader, req dto.CreateFloorRequest) (*dto.DataResponse, error)
	ListFloors(ctx context.Context, filter dto.FloorFilter) (*dto.FloorListResponse, error)
	ListOfertas(ctx context.Context) (*dto.OfertasResponse, error)
	ListCombos(ctx context.Context) (*dto.CombosResponse, error)
	CreateOferta(ctx context.Context, req dto.CreateOfertaRequest) (*dto.DataResponse, error)
	CreateCombo(ctx context.Context, req dto.CreateComboRequest) (*dto.DataResponse, error)
}

type floorService struct {
	floorRepo  repository.FloorRepository
	ofertaRepo repository.OfertaRepository
	comboRepo  repository.ComboRepository
	blob       infra.BlobStore
	rdb        *redis.Client
}

func NewFloorService(
	floorRepo repository.FloorRepository,
	ofertaRepo repository.OfertaRepository,
	comboRepo repository.ComboRepository,
	blob infra.BlobStore,
	rdb *redis.Client,
) FloorService {
	return &floorService{
		floorRepo:  floorRepo,
		ofertaRepo: ofertaRepo,
		comboRepo:  comboRepo,
		blob:       blob,
		rdb:        rdb,
	}
}

// FinalPrice applies a percentage discount and renders the result with two
// decimals. Non-finite discount values are rejected before any math happens.
func FinalPrice(precio decimal.Decimal, descuento float64) (string, error) {
	if math.IsNaN(descuento) || math.IsInf(descuento, 0) {
		return "", apierror.BadRequest(apierror.CodeInvalidDiscount, "Descuento invalido")
	}
	d := decimal.NewFromFloat(descuento)
	final := precio.Sub(precio.Mul(d).Div(decimal.NewFromInt(100)))
	return final.StringFixed(2), nil
}

// ── UploadImage ───────────────────────────────────────────────────────────────

func (s *floorService) UploadImage(ctx context.Context, filename, contentType string, file io.Reader, req dto.CreateFloorRequest) (*dto.DataResponse, error) {
	if file == nil {
		return nil, apierror.BadRequest(apierror.CodeNoFileProvided, "No se recibio archivo")
	}

	blob, err := s.blob.Upload(ctx, filename, contentType, file)
	if err != nil {
		return nil, apierror.Internal(apierror.CodeBlobUploadFailed, "No se pudo subir la imagen")
	}

	floor := &model.Floor{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		Precio:      req.Precio,
		Stock:       req.Stock,
		ImagenURL:   blob.URL,
	}
	if err := s.floorRepo.Create(ctx, floor); err != nil {
		return nil, apierror.Internal(apierror.CodeDatabaseSaveFailed, "No se pudo guardar la planta")
	}

	s.invalidateListingCache(ctx)
	return &dto.DataResponse{Data: floor}, nil
}

// ── ListFloors ────────────────────────────────────────────────────────────────

func (s *floorService) ListFloors(ctx context.Context, filter dto.FloorFilter) (*dto.FloorListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 5
	}

	if cached := s.cachedListing(ctx, filter); cached != nil {
		return cached, nil
	}

	offset := (filter.Page - 1) * filter.PageSize
	floors, total, err := s.floorRepo.ListWithOferta(ctx, offset, filter.PageSize)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeGetFloorsError, "Error al obtener las plantas")
	}

	data := make([]dto.FloorWithPrice, 0, len(floors))
	for _, floor := range floors {
		entry := dto.FloorWithPrice{Floor: floor}
		if floor.Oferta != nil {
			final, err := FinalPrice(floor.Precio, floor.Oferta.Descuento.InexactFloat64())
			if err != nil {
				return nil, apierror.Classify(err, apierror.CodeGetFloorsError, "Error al obtener las plantas")
			}
			entry.PrecioFinal = final
		}
		data = append(data, entry)
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	resp := &dto.FloorListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
		HasNext:    filter.Page < totalPages,
		HasPrev:    filter.Page > 1,
	}

	s.storeListing(ctx, filter, resp)
	return resp, nil
}

// ── ListOfertas ───────────────────────────────────────────────────────────────

func (s *floorService) ListOfertas(ctx context.Context) (*dto.OfertasResponse, error) {
	ofertas, err := s.ofertaRepo.ListWithPlantas(ctx)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeGetOffersError, "Error al obtener las ofertas")
	}

	if len(ofertas) == 0 {
		return &dto.OfertasResponse{Data: []model.Oferta{}, Ofertas: []dto.FloorWithPrice{}}, nil
	}

	// Only the first offer's plants get the discounted price, as the API has
	// always behaved.
	first := ofertas[0]
	descuento := first.Descuento.InexactFloat64()
	if math.IsNaN(descuento) || math.IsInf(descuento, 0) {
		return nil, apierror.BadRequest(apierror.CodeInvalidDiscount, "Descuento invalido")
	}
	if len(first.Plantas) == 0 {
		return nil, apierror.NotFound(apierror.CodeNoPlantsFound, "La oferta no tiene plantas")
	}

	withPrice := make([]dto.FloorWithPrice, 0, len(first.Plantas))
	for _, planta := range first.Plantas {
		final, err := FinalPrice(planta.Precio, descuento)
		if err != nil {
			return nil, apierror.Classify(err, apierror.CodeGetOffersError, "Error al obtener las ofertas")
		}
		withPrice = append(withPrice, dto.FloorWithPrice{Floor: planta, PrecioFinal: final})
	}

	data := make([]model.Oferta, 0, len(ofertas))
	for _, o := range ofertas {
		o.Plantas = nil
		data = append(data, o)
	}

	return &dto.OfertasResponse{Data: data, Ofertas: withPrice}, nil
}

// ── ListCombos ────────────────────────────────────────────────────────────────

func (s *floorService) ListCombos(ctx context.Context) (*dto.CombosResponse, error) {
	combos, err := s.comboRepo.ListWithItems(ctx)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeGetCombosError, "Error al obtener los combos")
	}
	if combos == nil {
		combos = []model.Combo{}
	}
	return &dto.CombosResponse{Data: combos}, nil
}

// ── CreateOferta ──────────────────────────────────────────────────────────────

func (s *floorService) CreateOferta(ctx context.Context, req dto.CreateOfertaRequest) (*dto.DataResponse, error) {
	plantas, err := s.floorRepo.FindByIDs(ctx, req.PlantasIds)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeCreateOfertaError, "Error al crear la oferta")
	}
	if len(plantas) != len(req.PlantasIds) {
		return nil, apierror.NotFound(apierror.CodeFloorNotFound, "Alguna planta no existe")
	}

	oferta := &model.Oferta{
		Nombre:      req.Nombre,
		Descuento:   req.Descuento,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
	}
	txErr := runTx(ctx, s.floorRepo.DB(), func(tx *gorm.DB) error {
		if err := s.ofertaRepo.CreateTx(tx, oferta); err != nil {
			return err
		}
		return s.floorRepo.AssignOfertaTx(tx, oferta.ID, req.PlantasIds)
	})
	if txErr != nil {
		return nil, apierror.Classify(txErr, apierror.CodeCreateOfertaError, "Error al crear la oferta")
	}

	s.invalidateListingCache(ctx)
	return &dto.DataResponse{Data: oferta}, nil
}

// ── CreateCombo ───────────────────────────────────────────────────────────────

func (s *floorService) CreateCombo(ctx context.Context, req dto.CreateComboRequest) (*dto.DataResponse, error) {
	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.PlantaID)
	}

	plantas, err := s.floorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apierror.Classify(err, apierror.CodeCreateComboError, "Error al crear el combo")
	}
	if len(plantas) != len(ids) {
		return nil, apierror.NotFound(apierror.CodeNoPlantsFound, "Alguna planta no existe")
	}

	combo := &model.Combo{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		Activo:      req.Activo,
	}
	for _, item := range req.Items {
		combo.Items = append(combo.Items, model.ComboItem{
			PlantaID: item.PlantaID,
			Cantidad: item.Cantidad,
		})
	}

	txErr := runTx(ctx, s.comboRepo.DB(), func(tx *gorm.DB) error {
		return s.comboRepo.CreateTx(tx, combo)
	})
	if txErr != nil {
		return nil, apierror.Classify(txErr, apierror.CodeCreateComboError, "Error al crear el combo")
	}

	return &dto.DataResponse{Data: combo}, nil
}

// ── Listing cache ─────────────────────────────────────────────────────────────
// Pages are cached under a version-stamped key; bumping the version on any
// catalog write orphans every cached page at once.

func (s *floorService) listingKey(ctx context.Context, filter dto.FloorFilter) string {
	ver, _ := s.rdb.Get(ctx, floorCacheVersionKey).Int64()
	return fmt.Sprintf("floors:v%d:page=%d:size=%d", ver, filter.Page, filter.PageSize)
}

func (s *floorService) cachedListing(ctx context.Context, filter dto.FloorFilter) *dto.FloorListResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, s.listingKey(ctx, filter)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.FloorListResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *floorService) storeListing(ctx context.Context, filter dto.FloorFilter, resp *dto.FloorListResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, s.listingKey(ctx, filter), raw, floorCacheTTL).Err()
}

func (s *floorService) invalidateListingCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Incr(ctx, floorCacheVersionKey).Err()
}
