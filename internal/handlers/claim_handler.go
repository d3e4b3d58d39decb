package handlers

import (
	"context"
	"net/http"

	"charitybridge/internal/middleware"
	"charitybridge/internal/models"
	"charitybridge/internal/policy"
	"charitybridge/internal/services"
	"charitybridge/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClaimHandler struct {
	*BaseHandler
	claimService services.ClaimService
}

func NewClaimHandler(base *BaseHandler, claimService services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		BaseHandler:  base,
		claimService: claimService,
	}
}

// RegisterRoutes expects r to be behind AuthMiddleware. Role checks beyond the
// admin group live in the service, which knows the claim's parties.
func (h *ClaimHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/donations/:id/claims", h.RequestClaim)
	r.GET("/donations/:id/claims", h.ListDonationClaims)

	claims := r.Group("/claims")
	{
		claims.GET("/:id", h.GetClaim)
		claims.DELETE("/:id", h.CancelClaim)
		claims.POST("/:id/complete", h.CompleteClaim)
	}

	charity := r.Group("/charity")
	charity.Use(middleware.RequireRoles(models.UserRoleCharity))
	{
		charity.GET("/claims", h.ListCharityClaims)
		charity.GET("/stats", h.GetCharityStats)
	}

	admin := r.Group("/admin/claims")
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAllClaims)
		admin.POST("/:id/approve", h.ApproveClaim)
		admin.POST("/:id/reject", h.RejectClaim)
	}
}

func (h *ClaimHandler) RequestClaim(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	donationID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	// Тело необязательно: заявка может быть без заметок и даты
	var req dto.CreateClaimRequest
	if c.Request.ContentLength != 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	claim, err := h.claimService.RequestClaim(c.Request.Context(), h.GetDB(c), actor, donationID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

func (h *ClaimHandler) ListDonationClaims(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	donationID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	claims, err := h.claimService.ListDonationClaims(c.Request.Context(), h.GetDB(c), actor, donationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims})
}

func (h *ClaimHandler) GetClaim(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	claim, err := h.claimService.GetClaim(c.Request.Context(), h.GetDB(c), actor, claimID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

func (h *ClaimHandler) CancelClaim(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.claimService.CancelClaim(c.Request.Context(), h.GetDB(c), actor, claimID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClaimHandler) CompleteClaim(c *gin.Context) {
	h.transition(c, h.claimService.CompleteClaim)
}

func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	h.transition(c, h.claimService.ApproveClaim)
}

func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	h.transition(c, h.claimService.RejectClaim)
}

type claimTransition func(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error)

func (h *ClaimHandler) transition(c *gin.Context, fn claimTransition) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	claimID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	claim, err := fn(c.Request.Context(), h.GetDB(c), actor, claimID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}

func (h *ClaimHandler) ListCharityClaims(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ListClaimsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.claimService.ListCharityClaims(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ClaimHandler) ListAllClaims(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.ListClaimsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	response, err := h.claimService.ListAllClaims(c.Request.Context(), h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ClaimHandler) GetCharityStats(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	stats, err := h.claimService.GetCharityStats(c.Request.Context(), h.GetDB(c), actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
