package services

import (
	"context"
	"errors"
	"strings"

	"charitybridge/internal/logger"
	"charitybridge/internal/models"
	"charitybridge/internal/policy"
	"charitybridge/internal/repositories"
	"charitybridge/internal/services/dto"
	"charitybridge/internal/validator"
	"charitybridge/pkg/apperrors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=donation_service.go -destination=mocks/donation_service_mock.go -package=mocks

// DonationService is the donation registry. Status changes after creation
// belong to the claim ledger.
type DonationService interface {
	CreateDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error)
	UpdateDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string, req *dto.UpdateDonationRequest) (*dto.DonationResponse, error)
	DeleteDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string) error
	GetDonation(ctx context.Context, db *gorm.DB, donationID string) (*dto.DonationResponse, error)
	ListDonations(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListDonationsRequest) (*dto.DonationListResponse, error)
	ListMyDonations(ctx context.Context, db *gorm.DB, actor policy.Actor) ([]*dto.DonationResponse, error)
	GetDonorStats(ctx context.Context, db *gorm.DB, actor policy.Actor) (*dto.DonorStatsResponse, error)
}

type donationService struct {
	donationRepo repositories.DonationRepository
}

func NewDonationService(donationRepo repositories.DonationRepository) DonationService {
	return &donationService{donationRepo: donationRepo}
}

func (s *donationService) CreateDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	if !policy.CanCreateDonation(actor) {
		return nil, apperrors.ErrNotDonor
	}

	expiry, err := validator.ParseDate(req.ExpiryDate)
	if err != nil {
		return nil, apperrors.FieldError("expiry_date", "Must be a date in YYYY-MM-DD format")
	}

	donation := &models.Donation{
		UserID:        actor.ID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      models.DonationCategory(req.Category),
		Quantity:      req.Quantity,
		Location:      strings.TrimSpace(req.Location),
		MonetaryValue: req.MonetaryValue,
		ExpiryDate:    expiry,
		IsUrgent:      req.IsUrgent,
		Status:        models.DonationStatusAvailable,
	}

	if err := s.donationRepo.Create(db.WithContext(ctx), donation); err != nil {
		return nil, handleDonationError(err)
	}

	logger.CtxInfo(ctx, "donation created", "donation_id", donation.ID, "category", donation.Category)
	return s.GetDonation(ctx, db, donation.ID)
}

func (s *donationService) UpdateDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string, req *dto.UpdateDonationRequest) (*dto.DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(db.WithContext(ctx), donationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	if !policy.CanManageDonation(actor, donation) {
		return nil, apperrors.ErrNotDonationOwner
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.IsUrgent != nil {
		updates["is_urgent"] = *req.IsUrgent
	}
	if req.ExpiryDate != nil {
		expiry, err := validator.ParseDate(req.ExpiryDate)
		if err != nil {
			return nil, apperrors.FieldError("expiry_date", "Must be a date in YYYY-MM-DD format")
		}
		updates["expiry_date"] = expiry
	}

	if len(updates) > 0 {
		if err := s.donationRepo.Update(db.WithContext(ctx), donationID, updates); err != nil {
			return nil, handleDonationError(err)
		}
	}

	return s.GetDonation(ctx, db, donationID)
}

// DeleteDonation removes the donation only while it is still available. The
// delete itself is conditional, so a concurrent approval wins.
func (s *donationService) DeleteDonation(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string) error {
	donation, err := s.donationRepo.FindByID(db.WithContext(ctx), donationID)
	if err != nil {
		return handleDonationError(err)
	}
	if !policy.CanManageDonation(actor, donation) {
		return apperrors.ErrNotDonationOwner
	}
	if donation.Status != models.DonationStatusAvailable {
		return apperrors.ErrDonationNotDeletable
	}

	deleted, err := s.donationRepo.DeleteIfAvailable(db.WithContext(ctx), donationID)
	if err != nil {
		return handleDonationError(err)
	}
	if !deleted {
		return apperrors.ErrDonationNotDeletable
	}

	logger.CtxInfo(ctx, "donation deleted", "donation_id", donationID)
	return nil
}

func (s *donationService) GetDonation(ctx context.Context, db *gorm.DB, donationID string) (*dto.DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(db.WithContext(ctx), donationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	return dto.NewDonationResponse(donation), nil
}

func (s *donationService) ListDonations(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListDonationsRequest) (*dto.DonationListResponse, error) {
	criteria := repositories.DonationCriteria{
		Query:      req.Query,
		Category:   req.Category,
		Pagination: repositories.Pagination{Page: req.Page, PageSize: req.PageSize}.Normalize(),
	}
	if actor.IsCharity() {
		criteria.ExcludeClaimedBy = actor.ID
	}

	donations, total, err := s.donationRepo.ListAvailable(db.WithContext(ctx), criteria)
	if err != nil {
		return nil, handleDonationError(err)
	}

	items := make([]*dto.DonationResponse, 0, len(donations))
	for i := range donations {
		items = append(items, dto.NewDonationResponse(&donations[i]))
	}

	return &dto.DonationListResponse{
		Donations:  items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: dto.TotalPages(total, criteria.PageSize),
	}, nil
}

func (s *donationService) ListMyDonations(ctx context.Context, db *gorm.DB, actor policy.Actor) ([]*dto.DonationResponse, error) {
	if !policy.CanCreateDonation(actor) {
		return nil, apperrors.ErrNotDonor
	}

	rows, err := s.donationRepo.ListByOwner(db.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, handleDonationError(err)
	}

	items := make([]*dto.DonationResponse, 0, len(rows))
	for i := range rows {
		resp := dto.NewDonationResponse(&rows[i].Donation)
		count := rows[i].ClaimCount
		resp.ClaimCount = &count
		items = append(items, resp)
	}
	return items, nil
}

func (s *donationService) GetDonorStats(ctx context.Context, db *gorm.DB, actor policy.Actor) (*dto.DonorStatsResponse, error) {
	if !policy.CanCreateDonation(actor) {
		return nil, apperrors.ErrNotDonor
	}

	counts, err := s.donationRepo.CountByStatusForOwner(db.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, handleDonationError(err)
	}

	stats := &dto.DonorStatsResponse{
		Available: counts[models.DonationStatusAvailable],
		Claimed:   counts[models.DonationStatusClaimed],
		Completed: counts[models.DonationStatusCompleted],
	}
	stats.Total = stats.Available + stats.Claimed + stats.Completed
	return stats, nil
}

func handleDonationError(err error) error {
	if errors.Is(err, repositories.ErrDonationNotFound) || isRecordNotFound(err) {
		return apperrors.ErrDonationNotFound.WithError(err)
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
