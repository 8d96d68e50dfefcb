package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sssf/cats-api/internal/core/ports"
)

// CatHandler handles HTTP requests for cat records.
type CatHandler struct {
	service ports.CatService
}

func NewCatHandler(service ports.CatService) *CatHandler {
	return &CatHandler{service: service}
}

// List handles GET /cat.
//
// @Summary      List cats
// @Tags         cats
// @Produce      json
// @Success      200  {array}   domain.Cat
// @Failure      500  {object}  map[string]string
// @Router       /cat [get]
func (h *CatHandler) List(c echo.Context) error {
	cats, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// Get handles GET /cat/:id.
//
// @Summary      Get a cat
// @Tags         cats
// @Produce      json
// @Param        id   path      int  true  "Cat id"
// @Success      200  {object}  domain.Cat
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /cat/{id} [get]
func (h *CatHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cat, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Create handles POST /cat.
//
// @Summary      Create a cat
// @Tags         cats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCatRequest  true  "Cat details"
// @Success      201   {object}  domain.Cat
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /cat [post]
func (h *CatHandler) Create(c echo.Context) error {
	var req createCatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cat, err := h.service.Create(c.Request().Context(), ctxIdentity(c), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// Update handles PUT /cat/:id.
//
// @Summary      Update a cat
// @Tags         cats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Cat id"
// @Param        body  body      updateCatRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cat/{id} [put]
func (h *CatHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateCatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), ctxIdentity(c), id, req.toPatch()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cat updated", ID: id})
}

// Delete handles DELETE /cat/:id.
//
// @Summary      Delete a cat
// @Tags         cats
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Cat id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /cat/{id} [delete]
func (h *CatHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), ctxIdentity(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "cat deleted", ID: id})
}
