package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/model"
)

// FloorRepository defines the data access contract for the plant catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type FloorRepository interface {
	Create(ctx context.Context, f *model.Floor) error
	FindByID(ctx context.Context, id uint) (*model.Floor, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Floor, error)
	// ListWithOferta returns one catalog page with the oferta preloaded plus
	// the unfiltered row count.
	ListWithOferta(ctx context.Context, offset, limit int) ([]model.Floor, int64, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uint, delta int) error
	AssignOfertaTx(tx *gorm.DB, ofertaID uint, plantIDs []uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type floorRepo struct{ db *gorm.DB }

func NewFloorRepository(db *gorm.DB) FloorRepository { return &floorRepo{db: db} }

func (r *floorRepo) Create(ctx context.Context, f *model.Floor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *floorRepo) FindByID(ctx context.Context, id uint) (*model.Floor, error) {
	var f model.Floor
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *floorRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Floor, error) {
	var floors []model.Floor
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&floors).Error
	return floors, err
}

func (r *floorRepo) ListWithOferta(ctx context.Context, offset, limit int) ([]model.Floor, int64, error) {
	var floors []model.Floor
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Floor{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Oferta").
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&floors).Error
	return floors, total, err
}

func (r *floorRepo) UpdateStockTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Floor{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *floorRepo) AssignOfertaTx(tx *gorm.DB, ofertaID uint, plantIDs []uint) error {
	return tx.Model(&model.Floor{}).Where("id IN ?", plantIDs).
		Update("oferta_id", ofertaID).Error
}

func (r *floorRepo) DB() *gorm.DB { return r.db }
