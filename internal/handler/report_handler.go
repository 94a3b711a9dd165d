package handler

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"
	"backend/internal/permission"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/clients/:id/rentals", middleware.RequireCapability(permission.CapViewReports), h.GetClientRentals)
		reports.GET("/revenue", middleware.RequireCapability(permission.CapViewReports), h.GetMonthlyRevenue)
		reports.GET("/fleet", middleware.RequireCapability(permission.CapViewReports), h.GetFleetUtilization)
	}
}

// GetClientRentals returns a client's rental history with cost and fine totals
// @Summary      Client rental report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=service.ClientRentalReport}
// @Failure      404  {object}  response.Response
// @Router       /api/reports/clients/{id}/rentals [get]
func (h *ReportHandler) GetClientRentals(c *gin.Context) {
	report, err := h.reportService.RentalsByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetMonthlyRevenue returns revenue bucketed by month for a year
// @Summary      Monthly revenue report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        year  query     int  false  "Year (defaults to the current year)"
// @Success      200   {object}  response.Response{data=[]service.MonthlyRevenue}
// @Failure      400   {object}  response.Response
// @Router       /api/reports/revenue [get]
func (h *ReportHandler) GetMonthlyRevenue(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", "0"))

	data, err := h.reportService.RevenueByMonth(c.Request.Context(), year)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, data))
}

// GetFleetUtilization returns fleet state counts and top vehicles
// @Summary      Fleet utilization report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.FleetReport}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/fleet [get]
func (h *ReportHandler) GetFleetUtilization(c *gin.Context) {
	report, err := h.reportService.FleetUtilization(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
