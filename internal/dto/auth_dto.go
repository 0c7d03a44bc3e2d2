package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegisterRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=1"`
	Phone    int    `json:"phone"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"required,oneof=USER ADMIN"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegisterResponse struct {
	AccessToken string `json:"access_token"`
}

type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}

// TokenValidation never fails the request: invalid tokens come back as
// {valid:false, error:...} with status 200.
type TokenValidation struct {
	Valid bool           `json:"valid"`
	User  map[string]any `json:"user,omitempty"`
	Error string         `json:"error,omitempty"`
}
