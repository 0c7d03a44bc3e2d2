package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pago records the provider-side state of an order's payment.
// Metodo: "TARJETA" | "EFECTIVO". Estado: "CONFIRMADO" | "FALLIDO" | "PENDIENTE".
type Pago struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrdenID   uint            `gorm:"index;not null" json:"ordenId"`
	Monto     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monto"`
	Metodo    string          `gorm:"type:varchar(10);not null;default:'TARJETA'" json:"metodo"`
	Estado    string          `gorm:"type:varchar(12);not null;default:'PENDIENTE'" json:"estado"`
	FechaPago time.Time       `gorm:"autoCreateTime" json:"fechaPago"`
}

func (Pago) TableName() string { return "pago" }
