package repositories

import (
	"errors"
	"strings"

	"charitybridge/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=donation_repository.go -destination=mocks/donation_repository_mock.go -package=mocks

type DonationRepository interface {
	Create(db *gorm.DB, donation *models.Donation) error
	FindByID(db *gorm.DB, id string) (*models.Donation, error)
	// FindByIDForUpdate takes a row lock; db must be a transaction.
	FindByIDForUpdate(db *gorm.DB, id string) (*models.Donation, error)
	Update(db *gorm.DB, id string, fields map[string]interface{}) error
	// DeleteIfAvailable reports whether a row was removed.
	DeleteIfAvailable(db *gorm.DB, id string) (bool, error)
	// TransitionStatus flips the status only when it still equals from.
	TransitionStatus(db *gorm.DB, id string, from, to models.DonationStatus) (bool, error)
	ListAvailable(db *gorm.DB, criteria DonationCriteria) ([]models.Donation, int64, error)
	ListByOwner(db *gorm.DB, ownerID string) ([]models.DonationWithClaimCount, error)
	CountByStatusForOwner(db *gorm.DB, ownerID string) (map[models.DonationStatus]int64, error)
	CountAvailable(db *gorm.DB) (int64, error)
}

// DonationCriteria filters the public listing. ExcludeClaimedBy hides
// donations the given charity already holds an active claim on.
type DonationCriteria struct {
	Query            string
	Category         string
	ExcludeClaimedBy string
	Pagination
}

type DonationRepositoryImpl struct{}

func NewDonationRepository() DonationRepository {
	return &DonationRepositoryImpl{}
}

func (r *DonationRepositoryImpl) Create(db *gorm.DB, donation *models.Donation) error {
	return db.Omit(clause.Associations).Create(donation).Error
}

func (r *DonationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Donation, error) {
	var donation models.Donation
	err := db.Preload("Owner").Preload("Owner.CharityProfile").First(&donation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *DonationRepositoryImpl) FindByIDForUpdate(db *gorm.DB, id string) (*models.Donation, error) {
	var donation models.Donation
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&donation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	return &donation, nil
}

func (r *DonationRepositoryImpl) Update(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Donation{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDonationNotFound
	}
	return nil
}

func (r *DonationRepositoryImpl) DeleteIfAvailable(db *gorm.DB, id string) (bool, error) {
	result := db.Where("id = ? AND status = ?", id, models.DonationStatusAvailable).Delete(&models.Donation{})
	return result.RowsAffected == 1, result.Error
}

func (r *DonationRepositoryImpl) TransitionStatus(db *gorm.DB, id string, from, to models.DonationStatus) (bool, error) {
	result := db.Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected == 1, result.Error
}

func (r *DonationRepositoryImpl) ListAvailable(db *gorm.DB, criteria DonationCriteria) ([]models.Donation, int64, error) {
	query := db.Model(&models.Donation{}).Where("donations.status = ?", models.DonationStatusAvailable)

	if q := strings.TrimSpace(criteria.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where("(donations.title ILIKE ? OR donations.description ILIKE ?)", pattern, pattern)
	}
	if criteria.Category != "" && criteria.Category != models.CategoryAll {
		query = query.Where("donations.category = ?", criteria.Category)
	}
	if criteria.ExcludeClaimedBy != "" {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM claims WHERE claims.donation_id = donations.id AND claims.charity_id = ? AND claims.status IN ?)",
			criteria.ExcludeClaimedBy,
			[]models.ClaimStatus{models.ClaimStatusPending, models.ClaimStatusApproved},
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var donations []models.Donation
	err := query.Preload("Owner").Preload("Owner.CharityProfile").
		Order("donations.created_at DESC").
		Order("donations.id DESC").
		Limit(criteria.Limit()).
		Offset(criteria.Offset()).
		Find(&donations).Error
	return donations, total, err
}

func (r *DonationRepositoryImpl) ListByOwner(db *gorm.DB, ownerID string) ([]models.DonationWithClaimCount, error) {
	var rows []models.DonationWithClaimCount
	err := db.Model(&models.Donation{}).
		Select("donations.*, (SELECT COUNT(*) FROM claims WHERE claims.donation_id = donations.id) AS claim_count").
		Where("donations.user_id = ?", ownerID).
		Order("donations.created_at DESC").
		Order("donations.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *DonationRepositoryImpl) CountByStatusForOwner(db *gorm.DB, ownerID string) (map[models.DonationStatus]int64, error) {
	var rows []struct {
		Status models.DonationStatus
		Count  int64
	}
	err := db.Model(&models.Donation{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.DonationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *DonationRepositoryImpl) CountAvailable(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Donation{}).Where("status = ?", models.DonationStatusAvailable).Count(&count).Error
	return count, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
