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

type ReservationHandler struct {
	reservationService service.ReservationService
}

func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

func (h *ReservationHandler) RegisterRoutes(router *gin.RouterGroup) {
	reservations := router.Group("/api/reservations")
	{
		reservations.POST("", middleware.RequireCapability(permission.CapManageReservations), h.CreateReservation)
		reservations.GET("", middleware.RequireCapability(permission.CapViewRentals), h.ListReservations)
		reservations.GET("/:id", middleware.RequireCapability(permission.CapManageReservations), h.GetReservation)
		reservations.DELETE("/:id", middleware.RequireCapability(permission.CapManageReservations), h.CancelReservation)
	}

	// Self-service route for customer accounts
	router.GET("/api/my/reservations", middleware.RequireCapability(permission.CapManageReservations), h.ListMyReservations)
}

// CreateReservation records a desired rental window
// @Summary      Create reservation
// @Description  Records a desired rental window, optionally naming a preferred vehicle. Reservations never hold vehicle state.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateReservationRequest  true  "Create Reservation Payload"
// @Success      201      {object}  response.Response{data=service.ReservationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req service.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	// Customers always reserve for themselves, whatever the payload says
	session := middleware.SessionFromContext(c)
	if clientID, ok := session.CurrentClientID(); ok {
		req.ClientID = clientID.String()
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, reservation))
}

// ListReservations returns a paginated list of all reservations
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	p := pagination.Parse(c)

	reservations, total, err := h.reservationService.ListReservations(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch reservations"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: reservations,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// GetReservation fetches a reservation; customers only see their own
// @Summary      Get reservation by ID
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation ID"
// @Success      200  {object}  response.Response{data=service.ReservationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !h.ownsReservation(c, reservation) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "reservation not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reservation))
}

// CancelReservation removes a reservation; customers only cancel their own
// @Summary      Cancel reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !h.ownsReservation(c, reservation) {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "reservation not found"))
		return
	}

	if err := h.reservationService.CancelReservation(c.Request.Context(), reservation.ID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Reservation cancelled"))
}

// ListMyReservations returns the logged-in customer's reservations
// @Summary      List own reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.ReservationResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/my/reservations [get]
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	clientID, ok := middleware.SessionFromContext(c).CurrentClientID()
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "no client account linked to this session"))
		return
	}

	reservations, err := h.reservationService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, reservations))
}

// ownsReservation is true for staff sessions, and for customer sessions
// only when the reservation belongs to their linked client.
func (h *ReservationHandler) ownsReservation(c *gin.Context, r service.ReservationResponse) bool {
	clientID, ok := middleware.SessionFromContext(c).CurrentClientID()
	if !ok {
		return true
	}
	return r.ClientID == clientID.String()
}
