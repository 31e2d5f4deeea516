package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := &exchangeRateHandler{rateService: rateService}

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/quote", h.getQuote)
		rates.POST("/convert", h.convert)
		rates.POST("/manual", h.setManualRate)
		rates.POST("/refresh", h.refreshAll)
	}
}

// getQuote godoc
// @Summary Get the conversion rate for a currency pair
// @Description Resolves a rate from the cache, refreshing or triangulating as needed. The source field reports fresh, stale, manual or unavailable.
// @Tags exchange-rates
// @Produce json
// @Param from query string true "From currency code"
// @Param to query string true "To currency code"
// @Success 200 {object} dto.RateQuoteResponse
// @Failure 400 {object} map[string]string "Invalid currency codes"
// @Security BearerAuth
// @Router /exchange-rates/quote [get]
func (h *exchangeRateHandler) getQuote(c *gin.Context) {
	quote, err := h.rateService.GetRate(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "Failed to resolve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToRateQuoteResponse(quote))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertAmountRequest true "Conversion request"
// @Success 200 {object} dto.ConvertAmountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No rate available for the pair"
// @Security BearerAuth
// @Router /exchange-rates/convert [post]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConvertAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	converted, quote, err := h.rateService.ConvertAmount(c.Request.Context(), req.Amount, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertAmountResponse{
		Amount:    req.Amount,
		Converted: converted,
		Quote:     dto.ToRateQuoteResponse(quote),
	})
}

// setManualRate godoc
// @Summary Set a manual exchange rate
// @Description Upserts a manual rate (and its inverse) for today. Manual rates take precedence over fetched ones.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.SetManualRateRequest true "Manual rate"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /exchange-rates/manual [post]
func (h *exchangeRateHandler) setManualRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetManualRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetManualRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	rate, err := h.rateService.SetManualRate(c.Request.Context(), req.FromCurrencyCode, req.ToCurrencyCode, req.Rate, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to set manual rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// refreshAll godoc
// @Summary Refresh rates for all active currencies
// @Description Fetches one provider snapshot and refreshes every pair among active payment-method currencies plus the base currency. Per-pair failures are reported in the summary, not as an error.
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} dto.RefreshSummaryResponse
// @Failure 502 {object} map[string]string "Provider unreachable"
// @Security BearerAuth
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.rateService.RefreshAllRates(c.Request.Context())
	if err != nil {
		logger.Error("Rate refresh batch failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh exchange rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRefreshSummaryResponse(summary))
}

// listRates godoc
// @Summary List stored exchange rates
// @Tags exchange-rates
// @Produce json
// @Param from query string false "Filter by from currency"
// @Param to query string false "Filter by to currency"
// @Param date query string false "Filter by rate date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	var from, to *string
	if v := c.Query("from"); v != "" {
		from = &v
	}
	if v := c.Query("to"); v != "" {
		to = &v
	}
	var date *time.Time
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	rates, total, err := h.rateService.ListExchangeRates(c.Request.Context(), from, to, date, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, total))
}
