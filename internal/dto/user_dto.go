package dto

type CreateFavoritoRequest struct {
	UserID  uint `json:"userId"  validate:"required"`
	FloorID uint `json:"floorId" validate:"required"`
}
