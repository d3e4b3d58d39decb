package handlers

import (
	"net/http"

	"charitybridge/internal/middleware"
	"charitybridge/internal/models"
	"charitybridge/internal/services"
	"charitybridge/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	*BaseHandler
	donationService services.DonationService
}

func NewDonationHandler(base *BaseHandler, donationService services.DonationService) *DonationHandler {
	return &DonationHandler{
		BaseHandler:     base,
		donationService: donationService,
	}
}

// RegisterRoutes expects r to be behind AuthMiddleware.
func (h *DonationHandler) RegisterRoutes(r *gin.RouterGroup) {
	donations := r.Group("/donations")
	{
		donations.GET("", h.ListDonations)
		donations.GET("/:id", h.GetDonation)
		donations.POST("", h.CreateDonation)
		donations.PUT("/:id", h.UpdateDonation)
		donations.DELETE("/:id", h.DeleteDonation)
	}

	donor := r.Group("/donor")
	donor.Use(middleware.RequireRoles(models.UserRoleDonor, models.UserRoleAdmin))
	{
		donor.GET("/donations", h.ListMyDonations)
		donor.GET("/stats", h.GetDonorStats)
	}
}

func (h *DonationHandler) ListDonations(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ListDonationsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.donationService.ListDonations(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *DonationHandler) GetDonation(c *gin.Context) {
	if _, ok := h.GetActor(c); !ok {
		return
	}
	donationID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	donation, err := h.donationService.GetDonation(c.Request.Context(), h.GetDB(c), donationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

func (h *DonationHandler) CreateDonation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDonationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	donation, err := h.donationService.CreateDonation(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donation)
}

func (h *DonationHandler) UpdateDonation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	donationID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDonationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	donation, err := h.donationService.UpdateDonation(c.Request.Context(), h.GetDB(c), actor, donationID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, donation)
}

func (h *DonationHandler) DeleteDonation(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	donationID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.donationService.DeleteDonation(c.Request.Context(), h.GetDB(c), actor, donationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	donations, err := h.donationService.ListMyDonations(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": donations})
}

func (h *DonationHandler) GetDonorStats(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	stats, err := h.donationService.GetDonorStats(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
