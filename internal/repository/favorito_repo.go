package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

type FavoritoRepository interface {
	Create(ctx context.Context, f *model.Favorito) error
	ListByUser(ctx context.Context, userID uint) ([]model.Favorito, error)
	// Delete reports how many rows matched so the service can distinguish
	// "removed" from "was never a favorite".
	Delete(ctx context.Context, userID, floorID uint) (int64, error)
	DB() *gorm.DB
}

type favoritoRepo struct{ db *gorm.DB }

func NewFavoritoRepository(db *gorm.DB) FavoritoRepository { return &favoritoRepo{db: db} }

func (r *favoritoRepo) Create(ctx context.Context, f *model.Favorito) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *favoritoRepo) ListByUser(ctx context.Context, userID uint) ([]model.Favorito, error) {
	var favoritos []model.Favorito
	err := r.db.WithContext(ctx).Preload("Floor").
		Where("user_id = ?", userID).
		Order("fecha_agregado DESC").
		Find(&favoritos).Error
	return favoritos, err
}

func (r *favoritoRepo) Delete(ctx context.Context, userID, floorID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND floor_id = ?", userID, floorID).
		Delete(&model.Favorito{})
	return res.RowsAffected, res.Error
}

func (r *favoritoRepo) DB() *gorm.DB { return r.db }
