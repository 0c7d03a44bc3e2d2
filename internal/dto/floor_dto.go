package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/FredesVirginia/captus-back/internal/model"
)

// ─── Catalog requests ────────────────────────────────────────────────────────

// CreateFloorRequest travels as multipart form fields next to the image file.
type CreateFloorRequest struct {
	Nombre      string          `form:"nombre"      validate:"required"`
	Descripcion string          `form:"descripcion" validate:"required"`
	Categoria   string          `form:"categoria"   validate:"required,oneof=CAPTU SUCULENTA"`
	Precio      decimal.Decimal `form:"precio"      validate:"required"`
	Stock       int             `form:"stock"       validate:"min=0"`
}

type FloorFilter struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=5"`
}

type CreateOfertaRequest struct {
	Nombre      string          `json:"nombre"      validate:"required"`
	Descuento   decimal.Decimal `json:"descuento"   validate:"required"`
	FechaInicio time.Time       `json:"fechaInicio" validate:"required"`
	FechaFin    time.Time       `json:"fechaFin"    validate:"required"`
	PlantasIds  []uint          `json:"plantasIds"  validate:"required,min=1"`
}

type ComboItemRequest struct {
	PlantaID uint `json:"plantaId" validate:"required"`
	Cantidad int  `json:"cantidad" validate:"required,min=1"`
}

type CreateComboRequest struct {
	Nombre      string             `json:"nombre"      validate:"required"`
	Descripcion string             `json:"descripcion" validate:"required"`
	Precio      decimal.Decimal    `json:"precio"      validate:"required"`
	Activo      bool               `json:"activo"`
	Items       []ComboItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Catalog responses ───────────────────────────────────────────────────────

// FloorWithPrice carries the discounted price next to the plant when an
// oferta applies. PrecioFinal stays a 2-decimal string as the API always
// rendered it.
type FloorWithPrice struct {
	model.Floor
	PrecioFinal string `json:"precioFinal,omitempty"`
}

type FloorListResponse struct {
	Data       []FloorWithPrice `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	HasNext    bool             `json:"hasNext"`
	HasPrev    bool             `json:"hasPrev"`
}

// OfertasResponse: Data lists the offers without their plantas, Ofertas lists
// the first offer's plants with their discounted prices.
type OfertasResponse struct {
	Data    []model.Oferta   `json:"data"`
	Ofertas []FloorWithPrice `json:"ofertas"`
}

type CombosResponse struct {
	Data []model.Combo `json:"data"`
}

type DataResponse struct {
	Data any `json:"data"`
}
