package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/middleware"
)

// analyticsHandler handles HTTP requests for period analytics.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

// newAnalyticsHandler creates a new analyticsHandler.
func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers the analytics routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	rg.GET("/analytics", h.getAnalytics)
}

// getAnalytics godoc
// @Summary Generate period analytics
// @Description Computes KPIs, monthly trends, breakdowns, growth rates and the previous-period comparison
// @Tags analytics
// @Produce  json
// @Param   dateFrom query string false "Window start (yyyy-mm-dd, default 12 months back)"
// @Param   dateTo query string false "Window end (yyyy-mm-dd, default today)"
// @Success 200 {object} domain.AnalyticsReport
// @Security BearerAuth
// @Router /analytics [get]
func (h *analyticsHandler) getAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	now := time.Now().UTC()
	defaultFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	from, ok := parseDateQuery(c, "dateFrom", defaultFrom)
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "dateTo", now)
	if !ok {
		return
	}
	to = endOfDay(to)

	report, err := h.analyticsService.Analytics(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate analytics")
		return
	}

	c.JSON(http.StatusOK, report)
}
