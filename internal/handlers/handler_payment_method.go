package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentMethodHandler handles HTTP requests related to payment methods.
type paymentMethodHandler struct {
	methodService portssvc.PaymentMethodSvcFacade
}

// registerPaymentMethodRoutes registers routes related to payment methods.
func registerPaymentMethodRoutes(rg *gin.RouterGroup, methodService portssvc.PaymentMethodSvcFacade) {
	h := &paymentMethodHandler{methodService: methodService}

	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.createPaymentMethod)
		methods.GET("", h.listPaymentMethods)
		methods.GET("/:id", h.getPaymentMethod)
		methods.PUT("/:id", h.updatePaymentMethod)
		methods.POST("/:id/archive", h.archivePaymentMethod)
	}
}

// createPaymentMethod godoc
// @Summary Create a new payment method
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param method body dto.CreatePaymentMethodRequest true "Payment method details"
// @Success 201 {object} dto.PaymentMethodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /payment-methods [post]
func (h *paymentMethodHandler) createPaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePaymentMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.methodService.CreatePaymentMethod(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create payment method")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentMethodResponse(method))
}

// listPaymentMethods godoc
// @Summary List the user's payment methods
// @Tags payment-methods
// @Produce json
// @Param includeArchived query bool false "Include archived methods" default(false)
// @Success 200 {array} dto.PaymentMethodResponse
// @Security BearerAuth
// @Router /payment-methods [get]
func (h *paymentMethodHandler) listPaymentMethods(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("includeArchived", "false"))
	methods, err := h.methodService.ListPaymentMethods(c.Request.Context(), userID, includeArchived)
	if err != nil {
		respondError(c, err, "Failed to list payment methods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentMethodResponse(methods))
}

// getPaymentMethod godoc
// @Summary Get a payment method by ID
// @Tags payment-methods
// @Produce json
// @Param id path string true "Payment Method ID"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 404 {object} map[string]string "Payment method not found"
// @Security BearerAuth
// @Router /payment-methods/{id} [get]
func (h *paymentMethodHandler) getPaymentMethod(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	method, err := h.methodService.GetPaymentMethodByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}

// updatePaymentMethod godoc
// @Summary Update a payment method
// @Description Renames a payment method or toggles its archived flag. The currency is immutable.
// @Tags payment-methods
// @Accept json
// @Produce json
// @Param id path string true "Payment Method ID"
// @Param method body dto.UpdatePaymentMethodRequest true "Fields to update"
// @Success 200 {object} dto.PaymentMethodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Security BearerAuth
// @Router /payment-methods/{id} [put]
func (h *paymentMethodHandler) updatePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePaymentMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.methodService.UpdatePaymentMethod(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update payment method")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentMethodResponse(method))
}

// archivePaymentMethod godoc
// @Summary Archive a payment method
// @Description Hides the method from new transactions; history keeps counting toward balances.
// @Tags payment-methods
// @Param id path string true "Payment Method ID"
// @Success 204 "Archived"
// @Failure 404 {object} map[string]string "Payment method not found"
// @Security BearerAuth
// @Router /payment-methods/{id}/archive [post]
func (h *paymentMethodHandler) archivePaymentMethod(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.methodService.ArchivePaymentMethod(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to archive payment method")
		return
	}
	c.Status(http.StatusNoContent)
}
