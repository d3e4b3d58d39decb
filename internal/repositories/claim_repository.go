package repositories

import (
	"errors"

	"charitybridge/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=claim_repository.go -destination=mocks/claim_repository_mock.go -package=mocks

type ClaimRepository interface {
	// Create maps a partial-index violation to ErrActiveClaimExists.
	Create(db *gorm.DB, claim *models.Claim) error
	FindByID(db *gorm.DB, id string) (*models.Claim, error)
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Claim, error)
	HasActiveClaim(db *gorm.DB, donationID, charityID string) (bool, error)
	TransitionStatus(db *gorm.DB, id string, from, to models.ClaimStatus) (bool, error)
	RejectPendingSiblings(db *gorm.DB, donationID, exceptID string) ([]string, error)
	DeleteIfPending(db *gorm.DB, id string) (bool, error)
	ListByCharity(db *gorm.DB, charityID string, criteria ClaimCriteria) ([]models.Claim, int64, error)
	ListByDonation(db *gorm.DB, donationID string) ([]models.Claim, error)
	ListAll(db *gorm.DB, criteria ClaimCriteria) ([]models.Claim, int64, error)
	CountByStatusForCharity(db *gorm.DB, charityID string) (map[models.ClaimStatus]int64, error)
}

type ClaimCriteria struct {
	Status string
	Pagination
}

type ClaimRepositoryImpl struct{}

func NewClaimRepository() ClaimRepository {
	return &ClaimRepositoryImpl{}
}

func (r *ClaimRepositoryImpl) Create(db *gorm.DB, claim *models.Claim) error {
	return mapClaimConstraint(db.Omit(clause.Associations).Create(claim).Error)
}

func (r *ClaimRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Claim, error) {
	var claim models.Claim
	err := db.Preload("Donation").Preload("Donation.Owner").Preload("Charity").Preload("Charity.CharityProfile").
		First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Claim, error) {
	var claim models.Claim
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepositoryImpl) HasActiveClaim(db *gorm.DB, donationID, charityID string) (bool, error) {
	var count int64
	err := db.Model(&models.Claim{}).
		Where("donation_id = ? AND charity_id = ? AND status IN ?", donationID, charityID,
			[]models.ClaimStatus{models.ClaimStatusPending, models.ClaimStatusApproved}).
		Count(&count).Error
	return count > 0, err
}

func (r *ClaimRepositoryImpl) TransitionStatus(db *gorm.DB, id string, from, to models.ClaimStatus) (bool, error) {
	result := db.Model(&models.Claim{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, mapClaimConstraint(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RejectPendingSiblings rejects every other pending claim on the donation and
// returns the ids it touched.
func (r *ClaimRepositoryImpl) RejectPendingSiblings(db *gorm.DB, donationID, exceptID string) ([]string, error) {
	var rejected []models.Claim
	err := db.Model(&rejected).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("donation_id = ? AND id <> ? AND status = ?", donationID, exceptID, models.ClaimStatusPending).
		Update("status", models.ClaimStatusRejected).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rejected))
	for _, c := range rejected {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (r *ClaimRepositoryImpl) DeleteIfPending(db *gorm.DB, id string) (bool, error) {
	result := db.Where("id = ? AND status = ?", id, models.ClaimStatusPending).Delete(&models.Claim{})
	return result.RowsAffected == 1, result.Error
}

func (r *ClaimRepositoryImpl) ListByCharity(db *gorm.DB, charityID string, criteria ClaimCriteria) ([]models.Claim, int64, error) {
	return r.list(db.Where("claims.charity_id = ?", charityID), criteria)
}

func (r *ClaimRepositoryImpl) ListAll(db *gorm.DB, criteria ClaimCriteria) ([]models.Claim, int64, error) {
	return r.list(db, criteria)
}

func (r *ClaimRepositoryImpl) list(query *gorm.DB, criteria ClaimCriteria) ([]models.Claim, int64, error) {
	query = query.Model(&models.Claim{})
	if criteria.Status != "" {
		query = query.Where("claims.status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var claims []models.Claim
	err := query.Preload("Donation").Preload("Charity").Preload("Charity.CharityProfile").
		Order("claims.created_at DESC").
		Order("claims.id DESC").
		Limit(criteria.Limit()).
		Offset(criteria.Offset()).
		Find(&claims).Error
	return claims, total, err
}

func (r *ClaimRepositoryImpl) ListByDonation(db *gorm.DB, donationID string) ([]models.Claim, error) {
	var claims []models.Claim
	err := db.Preload("Charity").Preload("Charity.CharityProfile").
		Where("donation_id = ?", donationID).
		Order("created_at ASC").
		Find(&claims).Error
	return claims, err
}

func (r *ClaimRepositoryImpl) CountByStatusForCharity(db *gorm.DB, charityID string) (map[models.ClaimStatus]int64, error) {
	var rows []struct {
		Status models.ClaimStatus
		Count  int64
	}
	err := db.Model(&models.Claim{}).
		Select("status, COUNT(*) AS count").
		Where("charity_id = ?", charityID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ClaimStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
