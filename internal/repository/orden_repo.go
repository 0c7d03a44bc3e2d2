package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

type OrdenRepository interface {
	CreateTx(tx *gorm.DB, o *model.Orden) error
	SaveTx(tx *gorm.DB, o *model.Orden) error
	CreateItemsTx(tx *gorm.DB, items []model.OrdenItem) error
	FindByID(ctx context.Context, id uint) (*model.Orden, error)
	// FindWithItems preloads items and each item's plant.
	FindWithItems(ctx context.Context, id uint) (*model.Orden, error)
	// FindForPrint additionally preloads the ordering user for the receipt.
	FindForPrint(ctx context.Context, id uint) (*model.Orden, error)
	SetPagoTx(tx *gorm.DB, ordenID, pagoID uint) error
	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) CreateTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Create(o).Error
}

func (r *ordenRepo) SaveTx(tx *gorm.DB, o *model.Orden) error {
	return tx.Save(o).Error
}

func (r *ordenRepo) CreateItemsTx(tx *gorm.DB, items []model.OrdenItem) error {
	return tx.Create(&items).Error
}

func (r *ordenRepo) FindByID(ctx context.Context, id uint) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) FindWithItems(ctx context.Context, id uint) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).Preload("Items.Planta").First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) FindForPrint(ctx context.Context, id uint) (*model.Orden, error) {
	var o model.Orden
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Items.Planta").
		First(&o, id).Error
	return &o, err
}

func (r *ordenRepo) SetPagoTx(tx *gorm.DB, ordenID, pagoID uint) error {
	return tx.Model(&model.Orden{}).Where("id = ?", ordenID).
		Update("pago_id", pagoID).Error
}

func (r *ordenRepo) DB() *gorm.DB { return r.db }
