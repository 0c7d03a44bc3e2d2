package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OrderItemRequest struct {
	PlantID  uint `json:"plantId"  validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

type CreateOrdenRequest struct {
	UserID uint               `json:"userId" validate:"required"`
	Items  []OrderItemRequest `json:"items"  validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PlantaSnapshot mirrors the plant at order time with the price rendered as a
// string, matching the shape the payment provider mapping consumes.
type PlantaSnapshot struct {
	ID          uint   `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Categoria   string `json:"categoria"`
	Precio      string `json:"precio"`
	Stock       int    `json:"stock"`
	ImagenURL   string `json:"imagenUrl"`
}

type OrderItemProjection struct {
	ID             uint           `json:"id"`
	Planta         PlantaSnapshot `json:"planta"`
	Cantidad       int            `json:"cantidad"`
	PrecioUnitario string         `json:"precioUnitario"`
}

// OrderWithItems is the projection returned by order creation and fed into
// payment session creation.
type OrderWithItems struct {
	ID    uint                  `json:"id"`
	Items []OrderItemProjection `json:"items"`
}
