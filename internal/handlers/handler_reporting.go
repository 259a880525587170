package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the financial statement routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// getBalanceSheet godoc
// @Summary Generate a balance sheet
// @Description Reports assets, liabilities and equity as of a date, with the accounting equation check and ratios
// @Tags reports
// @Produce  json
// @Param   asOfDate query string false "Report date (yyyy-mm-dd, default today)"
// @Param   dateFrom query string false "Accumulation start (yyyy-mm-dd, default ledger start)"
// @Success 200 {object} domain.BalanceSheetReport
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseDateQuery(c, "asOfDate", time.Now().UTC())
	if !ok {
		return
	}
	asOf = endOfDay(asOf)

	// Positions accumulate from the beginning of the ledger unless a start is given.
	rangeStart, ok := parseDateQuery(c, "dateFrom", time.Time{})
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), rangeStart, asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate an income statement
// @Description Reports revenues, expenses and profitability over a date range
// @Tags reports
// @Produce  json
// @Param   dateFrom query string false "Window start (yyyy-mm-dd, default first of current month)"
// @Param   dateTo query string false "Window end (yyyy-mm-dd, default today)"
// @Success 200 {object} domain.IncomeStatementReport
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now().UTC()
	defaultFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	from, ok := parseDateQuery(c, "dateFrom", defaultFrom)
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "dateTo", now)
	if !ok {
		return
	}
	to = endOfDay(to)

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, report)
}

// getTrialBalance godoc
// @Summary Generate a trial balance
// @Description Lists per-account debit and credit totals and proves ledger-wide closure
// @Tags reports
// @Produce  json
// @Param   dateFrom query string false "Window start (yyyy-mm-dd, default ledger start)"
// @Param   dateTo query string false "Window end (yyyy-mm-dd, default today)"
// @Success 200 {object} domain.TrialBalanceReport
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, ok := parseDateQuery(c, "dateFrom", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "dateTo", time.Now().UTC())
	if !ok {
		return
	}
	to = endOfDay(to)

	report, err := h.reportingService.TrialBalance(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, report)
}
