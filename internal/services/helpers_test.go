package services

import (
	"testing"

	"charitybridge/internal/models"
	"charitybridge/internal/policy"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	donor    = policy.Actor{ID: "11111111-1111-1111-1111-111111111111", Role: models.UserRoleDonor}
	charity  = policy.Actor{ID: "22222222-2222-2222-2222-222222222222", Role: models.UserRoleCharity}
	outsider = policy.Actor{ID: "33333333-3333-3333-3333-333333333333", Role: models.UserRoleCharity}
	admin    = policy.Actor{ID: "44444444-4444-4444-4444-444444444444", Role: models.UserRoleAdmin}
)

// dryRunDB never touches a server; repositories are mocked anyway.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func testDonation(status models.DonationStatus) *models.Donation {
	return &models.Donation{
		BaseModel: models.BaseModel{ID: "d0000000-0000-0000-0000-000000000001"},
		UserID:    donor.ID,
		Title:     "Vegetables",
		Category:  models.CategoryFood,
		Status:    status,
	}
}

func testClaim(status models.ClaimStatus) *models.Claim {
	d := testDonation(models.DonationStatusAvailable)
	return &models.Claim{
		BaseModel:  models.BaseModel{ID: "c0000000-0000-0000-0000-000000000001"},
		DonationID: d.ID,
		CharityID:  charity.ID,
		Status:     status,
		Donation:   d,
	}
}
