package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/permission"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FineHandler struct {
	fineService service.FineService
}

func NewFineHandler(fineService service.FineService) *FineHandler {
	return &FineHandler{fineService: fineService}
}

func (h *FineHandler) RegisterRoutes(router *gin.RouterGroup) {
	fines := router.Group("/api/fines")
	{
		fines.POST("", middleware.RequireCapability(permission.CapManageFines), h.AttachFine)
		fines.GET("", middleware.RequireCapability(permission.CapManageFines), h.ListFines)
		fines.GET("/:id", middleware.RequireCapability(permission.CapManageFines), h.GetFine)
	}

	// Fines hang off a rental, so expose them there too
	router.GET("/api/rentals/:id/fines", middleware.RequireCapability(permission.CapManageFines), h.ListRentalFines)

	// Self-service route for customer accounts
	router.GET("/api/my/fines", middleware.RequireCapability(permission.CapViewOwnFines), h.ListMyFines)
}

// AttachFine records a fine against a rental
// @Summary      Attach fine
// @Description  Records a fine against a rental in any state. Amount must be positive and the description non-empty.
// @Tags         fines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.AttachFineRequest  true  "Attach Fine Payload"
// @Success      201      {object}  response.Response{data=service.FineResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/fines [post]
func (h *FineHandler) AttachFine(c *gin.Context) {
	var req service.AttachFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	fine, err := h.fineService.AttachFine(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, fine))
}

// ListFines returns a paginated list of all fines
// @Summary      List fines
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/fines [get]
func (h *FineHandler) ListFines(c *gin.Context) {
	p := pagination.Parse(c)

	fines, total, err := h.fineService.ListFines(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch fines"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paged{
		Items: fines,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}))
}

// GetFine fetches a single fine
// @Summary      Get fine by ID
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Fine ID"
// @Success      200  {object}  response.Response{data=service.FineResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/fines/{id} [get]
func (h *FineHandler) GetFine(c *gin.Context) {
	fine, err := h.fineService.GetFine(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, fine))
}

// ListRentalFines returns all fines attached to a rental
// @Summary      List fines for a rental
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rental ID"
// @Success      200  {object}  response.Response{data=[]service.FineResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/rentals/{id}/fines [get]
func (h *FineHandler) ListRentalFines(c *gin.Context) {
	rentalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid rental ID"))
		return
	}

	fines, err := h.fineService.ListByRental(c.Request.Context(), rentalID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, fines))
}

// ListMyFines returns the fines on the logged-in customer's rentals
// @Summary      List own fines
// @Tags         fines
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.FineResponse}
// @Failure      403  {object}  response.Response
// @Router       /api/my/fines [get]
func (h *FineHandler) ListMyFines(c *gin.Context) {
	clientID, ok := middleware.SessionFromContext(c).CurrentClientID()
	if !ok {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "no client account linked to this session"))
		return
	}

	fines, err := h.fineService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, fines))
}
