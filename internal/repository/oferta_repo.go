package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

type OfertaRepository interface {
	CreateTx(tx *gorm.DB, o *model.Oferta) error
	ListWithPlantas(ctx context.Context) ([]model.Oferta, error)
	DB() *gorm.DB
}

type ofertaRepo struct{ db *gorm.DB }

func NewOfertaRepository(db *gorm.DB) OfertaRepository { return &ofertaRepo{db: db} }

func (r *ofertaRepo) CreateTx(tx *gorm.DB, o *model.Oferta) error {
	return tx.Create(o).Error
}

func (r *ofertaRepo) ListWithPlantas(ctx context.Context) ([]model.Oferta, error) {
	var ofertas []model.Oferta
	err := r.db.WithContext(ctx).Preload("Plantas").Order("id ASC").Find(&ofertas).Error
	return ofertas, err
}

func (r *ofertaRepo) DB() *gorm.DB { return r.db }
