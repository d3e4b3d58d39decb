package services

import (
	"context"
	"errors"

	"charitybridge/internal/logger"
	"charitybridge/internal/metrics"
	"charitybridge/internal/models"
	"charitybridge/internal/policy"
	"charitybridge/internal/repositories"
	"charitybridge/internal/services/dto"
	"charitybridge/internal/telemetry"
	"charitybridge/internal/validator"
	"charitybridge/pkg/apperrors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

//go:generate mockgen -source=claim_service.go -destination=mocks/claim_service_mock.go -package=mocks

// ClaimService is the claim ledger. Every transition runs in one transaction
// and re-checks its guards under row locks, so a failed guard never leaves a
// partial change behind.
type ClaimService interface {
	RequestClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string, req *dto.CreateClaimRequest) (*dto.ClaimResponse, error)
	CancelClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) error
	ApproveClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error)
	RejectClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error)
	CompleteClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error)

	GetClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error)
	ListCharityClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListClaimsRequest) (*dto.ClaimListResponse, error)
	ListDonationClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string) ([]*dto.ClaimResponse, error)
	ListAllClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListClaimsRequest) (*dto.ClaimListResponse, error)
	GetCharityStats(ctx context.Context, db *gorm.DB, actor policy.Actor) (*dto.CharityStatsResponse, error)
}

type claimService struct {
	claimRepo    repositories.ClaimRepository
	donationRepo repositories.DonationRepository
	notifier     Notifier
	metrics      *metrics.Metrics
}

func NewClaimService(
	claimRepo repositories.ClaimRepository,
	donationRepo repositories.DonationRepository,
	notifier Notifier,
	m *metrics.Metrics,
) ClaimService {
	return &claimService{
		claimRepo:    claimRepo,
		donationRepo: donationRepo,
		notifier:     notifier,
		metrics:      m,
	}
}

func (s *claimService) startSpan(ctx context.Context, event policy.ClaimEvent, id string) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, "claim."+string(event),
		trace.WithAttributes(attribute.String("claim.target_id", id)))
}

func (s *claimService) finish(span trace.Span, event policy.ClaimEvent, err error) {
	recordTransition(s.metrics, string(event), err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// =======================
// Transitions
// =======================

func (s *claimService) RequestClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string, req *dto.CreateClaimRequest) (_ *dto.ClaimResponse, err error) {
	ctx, span := s.startSpan(ctx, policy.EventRequest, donationID)
	defer func() { s.finish(span, policy.EventRequest, err) }()

	if !policy.CanRequestClaim(actor) {
		return nil, apperrors.ErrNotCharity
	}

	pickup, err := validator.ParseDate(req.PickupDate)
	if err != nil {
		return nil, apperrors.FieldError("pickup_date", "Must be a date in YYYY-MM-DD format")
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// The donation lock orders this request against a concurrent approval.
	donation, err := s.donationRepo.FindByIDForUpdate(tx, donationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	if donation.Status != models.DonationStatusAvailable {
		return nil, apperrors.ErrDonationUnavailable
	}

	exists, err := s.claimRepo.HasActiveClaim(tx, donationID, actor.ID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateClaim
	}

	claim := &models.Claim{
		DonationID: donationID,
		CharityID:  actor.ID,
		Status:     models.ClaimStatusPending,
		Notes:      req.Notes,
		PickupDate: pickup,
	}
	if err := s.claimRepo.Create(tx, claim); err != nil {
		return nil, handleClaimError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleClaimError(err)
	}

	logger.TransitionLog("claim", claim.ID, "", string(models.ClaimStatusPending), "donation_id", donationID)
	return s.loadResponse(ctx, db, claim.ID)
}

func (s *claimService) CancelClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (err error) {
	ctx, span := s.startSpan(ctx, policy.EventCancel, claimID)
	defer func() { s.finish(span, policy.EventCancel, err) }()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	claim, err := s.claimRepo.FindByIDForUpdate(tx, claimID)
	if err != nil {
		return handleClaimError(err)
	}
	if !policy.CanCancelClaim(actor, claim) {
		return apperrors.ErrNotClaimCharity
	}
	if _, err := policy.NextClaimStatus(claim.Status, policy.EventCancel); err != nil {
		return apperrors.ErrClaimNotPending
	}

	deleted, err := s.claimRepo.DeleteIfPending(tx, claimID)
	if err != nil {
		return handleClaimError(err)
	}
	if !deleted {
		return apperrors.ErrClaimNotPending
	}

	if err := tx.Commit().Error; err != nil {
		return handleClaimError(err)
	}

	logger.TransitionLog("claim", claimID, string(claim.Status), "deleted")
	return nil
}

// ApproveClaim locks the donation and the claim, re-checks both guards, then
// flips the donation, rejects the pending siblings and approves the claim.
// Both status writes are conditional so a lost race surfaces as InvalidState.
func (s *claimService) ApproveClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (_ *dto.ClaimResponse, err error) {
	ctx, span := s.startSpan(ctx, policy.EventApprove, claimID)
	defer func() { s.finish(span, policy.EventApprove, err) }()

	if !policy.CanArbitrate(actor) {
		return nil, apperrors.ErrAdminOnly
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Unlocked read to learn the donation id, then lock donation before claim
	// so every writer takes the locks in the same order.
	probe, err := s.claimRepo.FindByID(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}

	donation, err := s.donationRepo.FindByIDForUpdate(tx, probe.DonationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	claim, err := s.claimRepo.FindByIDForUpdate(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}

	next, err := policy.NextClaimStatus(claim.Status, policy.EventApprove)
	if err != nil {
		return nil, apperrors.ErrClaimNotPending
	}
	from, to, _ := policy.DonationStatusAfter(policy.EventApprove)
	if donation.Status != from {
		return nil, apperrors.ErrDonationUnavailable
	}

	flipped, err := s.donationRepo.TransitionStatus(tx, donation.ID, from, to)
	if err != nil {
		return nil, handleDonationError(err)
	}
	if !flipped {
		return nil, apperrors.ErrDonationUnavailable
	}

	rejected, err := s.claimRepo.RejectPendingSiblings(tx, donation.ID, claim.ID)
	if err != nil {
		return nil, handleClaimError(err)
	}

	approved, err := s.claimRepo.TransitionStatus(tx, claim.ID, claim.Status, next)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !approved {
		return nil, apperrors.ErrClaimNotPending
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleClaimError(err)
	}

	logger.TransitionLog("claim", claim.ID, string(claim.Status), string(next), "donation_id", donation.ID, "rejected_siblings", len(rejected))
	logger.TransitionLog("donation", donation.ID, string(from), string(to))

	resp, err := s.loadResponse(ctx, db, claim.ID)
	if err != nil {
		return nil, err
	}

	go s.notifyStatus(detach(ctx), db, claim.ID)
	for _, id := range rejected {
		go s.notifyStatus(detach(ctx), db, id)
	}
	return resp, nil
}

func (s *claimService) RejectClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (_ *dto.ClaimResponse, err error) {
	ctx, span := s.startSpan(ctx, policy.EventReject, claimID)
	defer func() { s.finish(span, policy.EventReject, err) }()

	if !policy.CanArbitrate(actor) {
		return nil, apperrors.ErrAdminOnly
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	claim, err := s.claimRepo.FindByIDForUpdate(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	next, err := policy.NextClaimStatus(claim.Status, policy.EventReject)
	if err != nil {
		return nil, apperrors.ErrClaimNotPending
	}

	ok, err := s.claimRepo.TransitionStatus(tx, claim.ID, claim.Status, next)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !ok {
		return nil, apperrors.ErrClaimNotPending
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleClaimError(err)
	}

	logger.TransitionLog("claim", claim.ID, string(claim.Status), string(next))

	resp, err := s.loadResponse(ctx, db, claim.ID)
	if err != nil {
		return nil, err
	}
	go s.notifyStatus(detach(ctx), db, claim.ID)
	return resp, nil
}

func (s *claimService) CompleteClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (_ *dto.ClaimResponse, err error) {
	ctx, span := s.startSpan(ctx, policy.EventComplete, claimID)
	defer func() { s.finish(span, policy.EventComplete, err) }()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	probe, err := s.claimRepo.FindByID(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !policy.CanCompleteClaim(actor, probe) {
		return nil, apperrors.ErrNotClaimParty
	}

	donation, err := s.donationRepo.FindByIDForUpdate(tx, probe.DonationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	claim, err := s.claimRepo.FindByIDForUpdate(tx, claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}

	next, err := policy.NextClaimStatus(claim.Status, policy.EventComplete)
	if err != nil {
		return nil, apperrors.ErrClaimNotApproved
	}
	from, to, _ := policy.DonationStatusAfter(policy.EventComplete)

	ok, err := s.claimRepo.TransitionStatus(tx, claim.ID, claim.Status, next)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !ok {
		return nil, apperrors.ErrClaimNotApproved
	}

	flipped, err := s.donationRepo.TransitionStatus(tx, donation.ID, from, to)
	if err != nil {
		return nil, handleDonationError(err)
	}
	if !flipped {
		// An approved claim always sits on a claimed donation; anything else is
		// corrupted state and must not be papered over.
		return nil, apperrors.NewInvalidStateError("donation", "Donation is not in the claimed state")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleClaimError(err)
	}

	logger.TransitionLog("claim", claim.ID, string(claim.Status), string(next))
	logger.TransitionLog("donation", donation.ID, string(from), string(to))
	return s.loadResponse(ctx, db, claim.ID)
}

// =======================
// Reads
// =======================

func (s *claimService) GetClaim(ctx context.Context, db *gorm.DB, actor policy.Actor, claimID string) (*dto.ClaimResponse, error) {
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	if !policy.CanInspectClaim(actor, claim) {
		return nil, apperrors.ErrNotClaimParty
	}
	return dto.NewClaimResponse(claim), nil
}

func (s *claimService) ListCharityClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListClaimsRequest) (*dto.ClaimListResponse, error) {
	if !actor.IsCharity() {
		return nil, apperrors.ErrNotCharity
	}
	criteria := claimCriteria(req)
	claims, total, err := s.claimRepo.ListByCharity(db.WithContext(ctx), actor.ID, criteria)
	if err != nil {
		return nil, handleClaimError(err)
	}
	return claimList(claims, total, criteria), nil
}

func (s *claimService) ListDonationClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, donationID string) ([]*dto.ClaimResponse, error) {
	donation, err := s.donationRepo.FindByID(db.WithContext(ctx), donationID)
	if err != nil {
		return nil, handleDonationError(err)
	}
	if !policy.CanManageDonation(actor, donation) {
		return nil, apperrors.ErrNotDonationOwner
	}

	claims, err := s.claimRepo.ListByDonation(db.WithContext(ctx), donationID)
	if err != nil {
		return nil, handleClaimError(err)
	}

	items := make([]*dto.ClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, dto.NewClaimResponse(&claims[i]))
	}
	return items, nil
}

func (s *claimService) ListAllClaims(ctx context.Context, db *gorm.DB, actor policy.Actor, req *dto.ListClaimsRequest) (*dto.ClaimListResponse, error) {
	if !policy.CanArbitrate(actor) {
		return nil, apperrors.ErrAdminOnly
	}
	criteria := claimCriteria(req)
	claims, total, err := s.claimRepo.ListAll(db.WithContext(ctx), criteria)
	if err != nil {
		return nil, handleClaimError(err)
	}
	return claimList(claims, total, criteria), nil
}

func (s *claimService) GetCharityStats(ctx context.Context, db *gorm.DB, actor policy.Actor) (*dto.CharityStatsResponse, error) {
	if !actor.IsCharity() {
		return nil, apperrors.ErrNotCharity
	}

	counts, err := s.claimRepo.CountByStatusForCharity(db.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	available, err := s.donationRepo.CountAvailable(db.WithContext(ctx))
	if err != nil {
		return nil, handleDonationError(err)
	}

	stats := &dto.CharityStatsResponse{
		Pending:            counts[models.ClaimStatusPending],
		Approved:           counts[models.ClaimStatusApproved],
		Rejected:           counts[models.ClaimStatusRejected],
		Completed:          counts[models.ClaimStatusCompleted],
		AvailableDonations: available,
	}
	stats.Submitted = stats.Pending + stats.Approved + stats.Rejected + stats.Completed
	return stats, nil
}

// =======================
// Helpers
// =======================

func (s *claimService) loadResponse(ctx context.Context, db *gorm.DB, claimID string) (*dto.ClaimResponse, error) {
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), claimID)
	if err != nil {
		return nil, handleClaimError(err)
	}
	return dto.NewClaimResponse(claim), nil
}

func (s *claimService) notifyStatus(ctx context.Context, db *gorm.DB, claimID string) {
	claim, err := s.claimRepo.FindByID(db.WithContext(ctx), claimID)
	if err != nil {
		logNotifyFailure(ctx, "claim_status", err)
		return
	}
	logNotifyFailure(ctx, "claim_status", s.notifier.NotifyClaimStatus(ctx, db, claim))
}

func claimCriteria(req *dto.ListClaimsRequest) repositories.ClaimCriteria {
	return repositories.ClaimCriteria{
		Status:     req.Status,
		Pagination: repositories.Pagination{Page: req.Page, PageSize: req.PageSize}.Normalize(),
	}
}

func claimList(claims []models.Claim, total int64, criteria repositories.ClaimCriteria) *dto.ClaimListResponse {
	items := make([]*dto.ClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, dto.NewClaimResponse(&claims[i]))
	}
	return &dto.ClaimListResponse{
		Claims:     items,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: dto.TotalPages(total, criteria.PageSize),
	}
}

func handleClaimError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrClaimNotFound) || isRecordNotFound(err):
		return apperrors.ErrClaimNotFound.WithError(err)
	case errors.Is(err, repositories.ErrActiveClaimExists):
		return apperrors.ErrDuplicateClaim.WithError(err)
	case errors.Is(err, repositories.ErrApprovedClaimExists):
		return apperrors.ErrDonationUnavailable.WithError(err)
	}
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
