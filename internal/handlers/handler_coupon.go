package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
)

// couponHandler handles HTTP requests for coupons.
type couponHandler struct {
	couponService portssvc.CouponSvcFacade
}

func newCouponHandler(cs portssvc.CouponSvcFacade) *couponHandler {
	return &couponHandler{couponService: cs}
}

// registerCouponRoutes registers routes related to coupons.
func registerCouponRoutes(rg *gin.RouterGroup, couponService portssvc.CouponSvcFacade) {
	h := newCouponHandler(couponService)

	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.createCoupon)
		coupons.GET("", h.listCoupons)
		coupons.GET("/code/:code", h.getCouponByCode)
		coupons.GET("/validate/:code", h.validateCoupon)
		coupons.GET("/:id", h.getCouponByID)
		coupons.PUT("/:id", h.updateCoupon)
		coupons.DELETE("/:id", h.deleteCoupon)
	}
}

// createCoupon godoc
// @Summary Create a coupon
// @Tags coupons
// @Accept  json
// @Produce  json
// @Param   coupon body dto.CreateCouponRequest true "Coupon details"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coupons [post]
func (h *couponHandler) createCoupon(c *gin.Context) {
	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCouponResponse(coupon))
}

// listCoupons godoc
// @Summary List all coupons
// @Tags coupons
// @Produce  json
// @Success 200 {array} dto.CouponResponse
// @Security BearerAuth
// @Router /coupons [get]
func (h *couponHandler) listCoupons(c *gin.Context) {
	coupons, err := h.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponses(coupons))
}

// getCouponByID godoc
// @Summary Get a coupon by ID
// @Tags coupons
// @Produce  json
// @Param   id path int true "Coupon ID"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coupons/{id} [get]
func (h *couponHandler) getCouponByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCouponByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// getCouponByCode godoc
// @Summary Get a coupon by code
// @Tags coupons
// @Produce  json
// @Param   code path string true "Coupon code"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coupons/code/{code} [get]
func (h *couponHandler) getCouponByCode(c *gin.Context) {
	coupon, err := h.couponService.GetCouponByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// validateCoupon godoc
// @Summary Validate a coupon for redemption
// @Description Always returns 200 with a verdict; problems collapse into valid=false
// @Tags coupons
// @Produce  json
// @Param   code path string true "Coupon code"
// @Param   userDomain query string false "Redeeming user's company domain"
// @Success 200 {object} dto.ValidateCouponResponse
// @Security BearerAuth
// @Router /coupons/validate/{code} [get]
func (h *couponHandler) validateCoupon(c *gin.Context) {
	verdict := h.couponService.ValidateCoupon(c.Request.Context(), c.Param("code"), c.Query("userDomain"))
	c.JSON(http.StatusOK, dto.ToValidateCouponResponse(verdict))
}

// updateCoupon godoc
// @Summary Update a coupon
// @Tags coupons
// @Accept  json
// @Produce  json
// @Param   id path int true "Coupon ID"
// @Param   coupon body dto.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coupons/{id} [put]
func (h *couponHandler) updateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// deleteCoupon godoc
// @Summary Delete a coupon
// @Tags coupons
// @Produce  json
// @Param   id path int true "Coupon ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coupons/{id} [delete]
func (h *couponHandler) deleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
