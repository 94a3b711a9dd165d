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

type RentalHandler struct {
	rentalService service.RentalService
}

func NewRentalHandler(rentalService service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

func (h *RentalHandler) RegisterRoutes(router *gin.RouterGroup) {
	rentals := router.Group("/api/rentals")
	{
		rentals.POST("", middleware.RequireCapability(permission.CapCreateRental), h.CreateRental)
		rentals.GET("", middleware.RequireCapability(permission.CapViewRentals), h.ListRentals)
		rentals.GET("/:id", middleware.RequireCapability(permission.CapViewRentals), h.GetRental)
		rentals.PUT("/:id/close", middleware.RequireCapability(permission.CapCloseRental), h.CloseRental)
		rentals.PUT("/:id/cancel", middleware.RequireCapability(permission.CapCancelRental), h.CancelRental)
	}

	// Self-service route for customer accounts
	router.GET("/api/my/rentals", middleware.RequireCapability(permission.CapViewOwnRentals), h.ListMyRentals)
}

// CreateRental opens a rental for a client and vehicle
// @Summary      Create rental
// @Description  Opens a rental over a date window. The vehicle must be available and free of overlapping active rentals; it is marked rented atomically with the insert.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateRentalRequest  true  "Create Rental Payload"
// @Success      201      {object}  response.Response{data=service.RentalResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req service.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	principal := middleware.SessionFromContext(c).Principal()
	rental, err := h.rentalService.CreateRental(c.Request.Context(), principal, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rental))
}

// ListRentals returns rentals, optionally filtered by status
// @Summary      List rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (ACTIVE, COMPLETED, CANCELLED)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 10)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	p := pagination.Parse(c)

	rentals, total, err := h.rentalService.ListRentals(c.Request.Context(), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch rentals"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: rentals,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// GetRental fetches a rental with its fines
// @Summary      Get rental by ID
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental ID"
// @Success      200  {object}  response.Response{data=service.RentalResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	rental, err := h.rentalService.GetRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rental))
}

// CloseRental completes an active rental and releases the vehicle
// @Summary      Close rental
// @Description  Marks an active rental completed and returns the vehicle to the available pool. Closing an already completed rental is a no-op.
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental ID"
// @Success      200  {object}  response.Response{data=service.RentalResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/rentals/{id}/close [put]
func (h *RentalHandler) CloseRental(c *gin.Context) {
	rental, err := h.rentalService.CloseRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rental))
}

// CancelRental cancels an active rental and releases the vehicle
// @Summary      Cancel rental
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental ID"
// @Success      200  {object}  response.Response{data=service.RentalResponse}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/rentals/{id}/cancel [put]
func (h *RentalHandler) CancelRental(c *gin.Context) {
	rental, err := h.rentalService.CancelRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rental))
}

// ListMyRentals returns the rentals linked to the logged-in customer
// @Summary      List own rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RentalResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/my/rentals [get]
func (h *RentalHandler) ListMyRentals(c *gin.Context) {
	clientID, ok := middleware.SessionFromContext(c).CurrentClientID()
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "no client account linked to this session"))
		return
	}

	rentals, err := h.rentalService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rentals))
}
