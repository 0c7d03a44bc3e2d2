package model

// Categoria values for Floor.
const (
	CategoriaCaptu     = "CAPTU"
	CategoriaSuculenta = "SUCULENTA"
)

// Role values for User.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Orden estado values. ENVIADO and CANSELADO are reserved for shipping flows
// that no endpoint drives yet.
const (
	OrdenPendiente = "PENDIENTE"
	OrdenPagado    = "PAGADO"
	OrdenEnviado   = "ENVIADO"
	OrdenCanselado = "CANSELADO"
)

// Pago metodo values.
const (
	MetodoTarjeta  = "TARJETA"
	MetodoEfectivo = "EFECTIVO"
)

// Pago estado values.
const (
	PagoConfirmado = "CONFIRMADO"
	PagoFallido    = "FALLIDO"
	PagoPendiente  = "PENDIENTE"
)
