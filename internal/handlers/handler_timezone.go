package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
)

// timezoneHandler handles HTTP requests for timezone master data.
type timezoneHandler struct {
	timezoneService portssvc.TimezoneSvcFacade
}

func newTimezoneHandler(ts portssvc.TimezoneSvcFacade) *timezoneHandler {
	return &timezoneHandler{timezoneService: ts}
}

// registerTimezoneRoutes registers routes related to timezones.
func registerTimezoneRoutes(rg *gin.RouterGroup, timezoneService portssvc.TimezoneSvcFacade) {
	h := newTimezoneHandler(timezoneService)

	timezones := rg.Group("/timezones")
	{
		timezones.GET("", h.listTimezones)
		timezones.POST("", h.createTimezone)
		timezones.GET("/:id", h.getTimezoneByID)
		timezones.PUT("/:id", h.updateTimezone)
		timezones.DELETE("/:id", h.deleteTimezone)
	}
}

// listTimezones godoc
// @Summary List all timezones
// @Description Served from cache when populated, from the database otherwise
// @Tags timezones
// @Produce  json
// @Success 200 {array} dto.TimezoneResponse
// @Security BearerAuth
// @Router /timezones [get]
func (h *timezoneHandler) listTimezones(c *gin.Context) {
	tzs, err := h.timezoneService.ListTimezones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimezoneResponses(tzs))
}

// getTimezoneByID godoc
// @Summary Get a timezone by ID
// @Tags timezones
// @Produce  json
// @Param   id path int true "Timezone ID"
// @Success 200 {object} dto.TimezoneResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /timezones/{id} [get]
func (h *timezoneHandler) getTimezoneByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tz, err := h.timezoneService.GetTimezoneByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimezoneResponse(tz))
}

// createTimezone godoc
// @Summary Create a timezone
// @Tags timezones
// @Accept  json
// @Produce  json
// @Param   timezone body dto.CreateTimezoneRequest true "Timezone details"
// @Success 201 {object} dto.TimezoneResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /timezones [post]
func (h *timezoneHandler) createTimezone(c *gin.Context) {
	var req dto.CreateTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tz, err := h.timezoneService.CreateTimezone(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTimezoneResponse(tz))
}

// updateTimezone godoc
// @Summary Update a timezone
// @Tags timezones
// @Accept  json
// @Produce  json
// @Param   id path int true "Timezone ID"
// @Param   timezone body dto.UpdateTimezoneRequest true "Fields to update"
// @Success 200 {object} dto.TimezoneResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /timezones/{id} [put]
func (h *timezoneHandler) updateTimezone(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tz, err := h.timezoneService.UpdateTimezone(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTimezoneResponse(tz))
}

// deleteTimezone godoc
// @Summary Delete a timezone
// @Tags timezones
// @Produce  json
// @Param   id path int true "Timezone ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /timezones/{id} [delete]
func (h *timezoneHandler) deleteTimezone(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.timezoneService.DeleteTimezone(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
