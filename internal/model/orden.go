package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orden is a customer order. Estado starts PENDIENTE and moves to PAGADO when
// the payment provider confirms.
type Orden struct {
	ID     uint            `gorm:"primaryKey" json:"id"`
	UserID uint            `gorm:"index;not null" json:"userId"`
	Estado string          `gorm:"type:varchar(12);not null;default:'PENDIENTE'" json:"estado"`
	Total  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Fecha  time.Time       `gorm:"autoCreateTime" json:"fecha"`
	PagoID *uint           `gorm:"index" json:"pagoId,omitempty"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrdenItem `gorm:"foreignKey:OrdenID" json:"items,omitempty"`
	Pago  *Pago       `gorm:"foreignKey:PagoID" json:"pago,omitempty"`
}

func (Orden) TableName() string { return "orden" }

// OrdenItem freezes the quantity and unit price of one plant in an order.
type OrdenItem struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	OrdenID        uint            `gorm:"index;not null" json:"ordenId"`
	PlantaID       uint            `gorm:"index;not null" json:"plantaId"`
	Cantidad       int             `gorm:"not null" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"precioUnitario"`

	Planta *Floor `gorm:"foreignKey:PlantaID" json:"planta,omitempty"`
}

func (OrdenItem) TableName() string { return "orden_item" }
