package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/permission"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	maintenance := router.Group("/api/maintenance")
	{
		maintenance.POST("", middleware.RequireCapability(permission.CapManageVehicles), h.OpenMaintenance)
		maintenance.PUT("/:id/close", middleware.RequireCapability(permission.CapManageVehicles), h.CloseMaintenance)
	}

	router.GET("/api/vehicles/:plate/maintenance", middleware.RequireCapability(permission.CapManageVehicles), h.ListVehicleMaintenance)
}

// OpenMaintenance takes a vehicle out of service
// @Summary      Open maintenance
// @Description  Opens a maintenance record and parks the vehicle in MAINTENANCE. Rented vehicles cannot enter maintenance.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.OpenMaintenanceRequest  true  "Open Maintenance Payload"
// @Success      201      {object}  response.Response{data=service.MaintenanceResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) OpenMaintenance(c *gin.Context) {
	var req service.OpenMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	record, err := h.maintenanceService.OpenMaintenance(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, record))
}

// CloseMaintenance returns a vehicle to the available pool
// @Summary      Close maintenance
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true   "Maintenance record ID"
// @Param        payload  body      object  false  "Optional end_date (YYYY-MM-DD, defaults to today)"
// @Success      200      {object}  response.Response{data=service.MaintenanceResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/maintenance/{id}/close [put]
func (h *MaintenanceHandler) CloseMaintenance(c *gin.Context) {
	var body struct {
		EndDate string `json:"end_date"`
	}
	// Empty body means "close today"
	_ = c.ShouldBindJSON(&body)

	record, err := h.maintenanceService.CloseMaintenance(c.Request.Context(), c.Param("id"), body.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, record))
}

// ListVehicleMaintenance returns a vehicle's maintenance history
// @Summary      List maintenance for a vehicle
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        plate  path      string  true  "Vehicle plate"
// @Success      200    {object}  response.Response{data=[]service.MaintenanceResponse}
// @Failure      404    {object}  response.Response
// @Router       /api/vehicles/{plate}/maintenance [get]
func (h *MaintenanceHandler) ListVehicleMaintenance(c *gin.Context) {
	records, err := h.maintenanceService.ListByPlate(c.Request.Context(), c.Param("plate"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, records))
}
