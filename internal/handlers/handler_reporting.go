package handlers

import (
	"net/http"

	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for dashboard reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.balances)
		reports.GET("/monthly-summary", h.monthlySummary)
		reports.GET("/budget-usage", h.budgetUsage)
	}
}

// balances godoc
// @Summary Per-method balances with a base-currency total
// @Description Includes archived payment methods. Balances that cannot be converted are flagged and excluded from the total.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.BalanceReportResponse
// @Security BearerAuth
// @Router /reports/balances [get]
func (h *reportingHandler) balances(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceReport(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build balance report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceReportResponse(report))
}

// monthlySummary godoc
// @Summary Income/expense totals by category for a month
// @Tags reports
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Security BearerAuth
// @Router /reports/monthly-summary [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.MonthlySummary(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err, "Failed to build monthly summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(summary))
}

// budgetUsage godoc
// @Summary Budget vs actual spend for a month
// @Tags reports
// @Produce json
// @Param month query string false "Month (YYYY-MM), defaults to current"
// @Success 200 {array} dto.BudgetUsageResponse
// @Failure 400 {object} map[string]string "Invalid month"
// @Security BearerAuth
// @Router /reports/budget-usage [get]
func (h *reportingHandler) budgetUsage(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	month, ok := parseMonth(c)
	if !ok {
		return
	}

	usage, err := h.reportingService.BudgetUsage(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err, "Failed to build budget usage report")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetUsageResponse(usage))
}
