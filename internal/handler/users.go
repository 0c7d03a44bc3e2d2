package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary Lista todos los usuarios con sus ordenes y favoritos
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /users/get-all-user [get]
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.svc.GetAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Favorites godoc
// @Summary Lista los favoritos de un usuario
// @Tags users
// @Produce json
// @Param userId path int true "ID del usuario"
// @Success 200 {array} model.Favorito
// @Failure 404 {object} apierror.Error
// @Router /users/favorites/{userId} [get]
func (h *UsersHandler) Favorites(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}
	favs, err := h.svc.GetFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// AddFavorito godoc
// @Summary Agrega una planta a los favoritos de un usuario
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CreateFavoritoRequest true "Favorito"
// @Success 201 {object} model.Favorito
// @Failure 404 {object} apierror.Error
// @Router /users/favorites [post]
func (h *UsersHandler) AddFavorito(c *gin.Context) {
	var req dto.CreateFavoritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	fav, err := h.svc.AddFavorito(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// RemoveFavorito godoc
// @Summary Quita una planta de los favoritos de un usuario
// @Tags users
// @Produce json
// @Param userId path int true "ID del usuario"
// @Param floorId path int true "ID de la planta"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} apierror.Error
// @Router /users/favorites/{userId}/{floorId} [delete]
func (h *UsersHandler) RemoveFavorito(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}
	floorID, ok := paramUint(c, "floorId")
	if !ok {
		return
	}
	if err := h.svc.RemoveFavorito(c.Request.Context(), userID, floorID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest,
			apierror.BadRequest("INVALID_PARAM", "Parametro "+name+" invalido"))
		return 0, false
	}
	return uint(v), true
}
