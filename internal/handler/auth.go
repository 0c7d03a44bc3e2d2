package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Register godoc
// @Summary Registro de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Datos del usuario"
// @Success 201 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.Error
// @Router /auth/auth_register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.Error
// @Router /auth/auth_login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateToken godoc
// @Summary Valida un JWT emitido por este servicio
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.ValidateTokenRequest true "Token"
// @Success 200 {object} dto.TokenValidation
// @Router /auth/auth_validate [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req dto.ValidateTokenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.ValidateToken(req.Token))
}
