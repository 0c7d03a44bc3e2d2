package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

type PagoRepository interface {
	CreateTx(tx *gorm.DB, p *model.Pago) error
	SaveTx(tx *gorm.DB, p *model.Pago) error
	FindByOrdenID(ctx context.Context, ordenID uint) (*model.Pago, error)
	DB() *gorm.DB
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) CreateTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *pagoRepo) SaveTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Save(p).Error
}

func (r *pagoRepo) FindByOrdenID(ctx context.Context, ordenID uint) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).Where("orden_id = ?", ordenID).First(&p).Error
	return &p, err
}

func (r *pagoRepo) DB() *gorm.DB { return r.db }
