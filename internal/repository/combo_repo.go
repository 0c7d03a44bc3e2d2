package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

type ComboRepository interface {
	CreateTx(tx *gorm.DB, c *model.Combo) error
	ListWithItems(ctx context.Context) ([]model.Combo, error)
	DB() *gorm.DB
}

type comboRepo struct{ db *gorm.DB }

func NewComboRepository(db *gorm.DB) ComboRepository { return &comboRepo{db: db} }

func (r *comboRepo) CreateTx(tx *gorm.DB, c *model.Combo) error {
	// Items ride along through the association cascade.
	return tx.Create(c).Error
}

func (r *comboRepo) ListWithItems(ctx context.Context) ([]model.Combo, error) {
	var combos []model.Combo
	err := r.db.WithContext(ctx).Preload("Items.Planta").Order("id ASC").Find(&combos).Error
	return combos, err
}

func (r *comboRepo) DB() *gorm.DB { return r.db }
