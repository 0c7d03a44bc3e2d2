package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Floor is a plant in the catalog. Categoria: "CAPTU" | "SUCULENTA".
type Floor struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Nombre      string `gorm:"not null" json:"nombre"`
	Descripcion string `gorm:"type:text" json:"descripcion"`
	Categoria   string `gorm:"type:varchar(20);not null;default:'CAPTU'" json:"categoria"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
	Stock       int             `gorm:"not null" json:"stock"`
	ImagenURL   string          `gorm:"column:imagen_url" json:"imagenUrl"`
	OfertaID    *uint           `gorm:"index" json:"ofertaId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Oferta *Oferta `gorm:"foreignKey:OfertaID" json:"oferta,omitempty"`
}

func (Floor) TableName() string { return "floor" }

// Oferta groups plants under a percentage discount for a date window.
type Oferta struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Nombre      string          `gorm:"not null" json:"nombre"`
	Descuento   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"descuento"`
	FechaInicio time.Time       `gorm:"not null" json:"fechaInicio"`
	FechaFin    time.Time       `gorm:"not null" json:"fechaFin"`

	Plantas []Floor `gorm:"foreignKey:OfertaID" json:"plantas,omitempty"`
}

func (Oferta) TableName() string { return "oferta" }

// Combo is a fixed-price bundle of plants.
type Combo struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Nombre      string          `gorm:"type:varchar(100);not null" json:"nombre"`
	Descripcion string          `gorm:"type:text" json:"descripcion"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precio"`
	Activo      bool            `gorm:"not null;default:true" json:"activo"`

	Items []ComboItem `gorm:"foreignKey:ComboID" json:"items,omitempty"`
}

func (Combo) TableName() string { return "combo" }

// ComboItem links one plant with a quantity into a combo.
type ComboItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ComboID  uint `gorm:"index;not null" json:"comboId"`
	PlantaID uint `gorm:"index;not null" json:"plantaId"`
	Cantidad int  `gorm:"not null" json:"cantidad"`

	Planta *Floor `gorm:"foreignKey:PlantaID" json:"planta,omitempty"`
}

func (ComboItem) TableName() string { return "combo_item" }
