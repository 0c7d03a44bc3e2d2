package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FredesVirginia/captus-back/internal/apierror"
	"github.com/FredesVirginia/captus-back/internal/dto"
	"github.com/FredesVirginia/captus-back/internal/service"
)

type FloorsHandler struct{ svc service.FloorService }

func NewFloorsHandler(svc service.FloorService) *FloorsHandler {
	return &FloorsHandler{svc: svc}
}

// List godoc
// @Summary Lista las plantas paginadas con su oferta
// @Tags floors
// @Produce json
// @Param page query int false "Pagina" default(1)
// @Param pageSize query int false "Tamano de pagina" default(5)
// @Success 200 {object} dto.FloorListResponse
// @Router /floors [get]
func (h *FloorsHandler) List(c *gin.Context) {
	var filter dto.FloorFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	resp, err := h.svc.ListFloors(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	// An empty catalog answers with a bare array, not the envelope.
	if resp.Total == 0 {
		c.JSON(http.StatusOK, []dto.FloorWithPrice{})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ofertas godoc
// @Summary Lista las ofertas y los precios con descuento de la primera
// @Tags floors
// @Produce json
// @Success 200 {object} dto.OfertasResponse
// @Router /floors/ofertas [get]
func (h *FloorsHandler) Ofertas(c *gin.Context) {
	resp, err := h.svc.ListOfertas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Combos godoc
// @Summary Lista los combos con sus plantas
// @Tags floors
// @Produce json
// @Success 200 {object} dto.CombosResponse
// @Router /floors/combos [get]
func (h *FloorsHandler) Combos(c *gin.Context) {
	resp, err := h.svc.ListCombos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UploadImage godoc
// @Summary Crea una planta subiendo su imagen a blob storage
// @Tags floors
// @Accept mpfd
// @Produce json
// @Param file formData file true "Imagen de la planta"
// @Success 201 {object} dto.DataResponse
// @Failure 400 {object} apierror.Error
// @Router /floors/upload-image [post]
func (h *FloorsHandler) UploadImage(c *gin.Context) {
	var req dto.CreateFloorRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest,
			apierror.BadRequest("INVALID_FORM", "Formulario invalido: "+err.Error()))
		return
	}
	if !runValidation(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apierror.BadRequest(apierror.CodeNoFileProvided, "No se recibio archivo"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apierror.Internal(apierror.CodeUploadImageError, "No se pudo leer el archivo"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	resp, svcErr := h.svc.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, file, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateOferta godoc
// @Summary Crea una oferta y la asigna a las plantas indicadas
// @Tags floors
// @Accept json
// @Produce json
// @Param body body dto.CreateOfertaRequest true "Oferta"
// @Success 201 {object} dto.DataResponse
// @Failure 404 {object} apierror.Error
// @Router /floors/create-oferta [post]
func (h *FloorsHandler) CreateOferta(c *gin.Context) {
	var req dto.CreateOfertaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateOferta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateCombo godoc
// @Summary Crea un combo de plantas
// @Tags floors
// @Accept json
// @Produce json
// @Param body body dto.CreateComboRequest true "Combo"
// @Success 201 {object} dto.DataResponse
// @Failure 404 {object} apierror.Error
// @Router /floors/create-combo [post]
func (h *FloorsHandler) CreateCombo(c *gin.Context) {
	var req dto.CreateComboRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateCombo(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
