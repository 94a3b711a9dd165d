package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/permission"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicles := router.Group("/api/vehicles")
	{
		// Reads are open to any authenticated role so customers can browse
		// the fleet when reserving.
		vehicles.GET("", middleware.RequireAuthenticated(), h.ListVehicles)
		vehicles.GET("/:plate", middleware.RequireAuthenticated(), h.GetVehicle)
		vehicles.GET("/:plate/availability", middleware.RequireAuthenticated(), h.CheckAvailability)

		vehicles.POST("", middleware.RequireCapability(permission.CapManageVehicles), h.CreateVehicle)
		vehicles.PUT("/:plate", middleware.RequireCapability(permission.CapManageVehicles), h.UpdateVehicle)
		vehicles.DELETE("/:plate", middleware.RequireCapability(permission.CapManageVehicles), h.DeleteVehicle)
	}
}

// CreateVehicle adds a vehicle to the fleet
// @Summary      Create vehicle
// @Description  Adds a vehicle identified by its normalized plate. New vehicles start available.
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVehicleRequest  true  "Create Vehicle Payload"
// @Success      201      {object}  response.Response{data=service.VehicleResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}

// ListVehicles returns the fleet, optionally filtered by state
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        state  query     string  false  "Filter by state (AVAILABLE, RENTED, MAINTENANCE)"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	p := pagination.Parse(c)

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), c.Query("state"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch vehicles"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: vehicles,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// GetVehicle fetches a vehicle by plate
// @Summary      Get vehicle by plate
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        plate  path      string  true  "Vehicle plate"
// @Success      200    {object}  response.Response{data=service.VehicleResponse}
// @Failure      404    {object}  response.Response
// @Router       /api/vehicles/{plate} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("plate"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// CheckAvailability reports whether a vehicle can be rented for a window
// @Summary      Check availability
// @Description  Returns whether the vehicle is available and free of overlapping active rentals for the given window
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        plate  path      string  true  "Vehicle plate"
// @Param        start  query     string  true  "Start date (YYYY-MM-DD)"
// @Param        end    query     string  true  "End date (YYYY-MM-DD)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /api/vehicles/{plate}/availability [get]
func (h *VehicleHandler) CheckAvailability(c *gin.Context) {
	plate, err := service.NormalizePlate(c.Param("plate"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	available, err := h.vehicleService.IsAvailable(c.Request.Context(), plate, c.Query("start"), c.Query("end"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"plate":     plate,
		"available": available,
	}))
}

// UpdateVehicle updates vehicle attributes
// @Summary      Update vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        plate    path      string                        true  "Vehicle plate"
// @Param        payload  body      service.UpdateVehicleRequest  true  "Update Vehicle Payload"
// @Success      200      {object}  response.Response{data=service.VehicleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles/{plate} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("plate"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// DeleteVehicle retires a vehicle. Rented vehicles cannot be removed.
// @Summary      Delete vehicle
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        plate  path      string  true  "Vehicle plate"
// @Success      200    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /api/vehicles/{plate} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("plate")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vehicle deleted successfully"))
}
