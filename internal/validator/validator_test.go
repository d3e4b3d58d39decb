package validator

import (
	"testing"

	"charitybridge/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validDonation() dto.CreateDonationRequest {
	return dto.CreateDonationRequest{
		Title:       "Winter coats",
		Description: "Ten adult coats, lightly used",
		Category:    "clothes",
		Location:    "Almaty",
	}
}

func TestValidate_CreateDonation(t *testing.T) {
	v := New()

	req := validDonation()
	require.NoError(t, v.Validate(&req))

	req.Quantity = ptr(3)
	req.MonetaryValue = ptr(0.0)
	req.ExpiryDate = ptr("2026-12-31")
	require.NoError(t, v.Validate(&req))
}

func TestValidate_CreateDonationFieldErrors(t *testing.T) {
	v := New()

	req := dto.CreateDonationRequest{
		Title:         "   ",
		Category:      "furniture",
		Quantity:      ptr(0),
		MonetaryValue: ptr(-1.5),
		ExpiryDate:    ptr("31/12/2026"),
	}

	err := v.Validate(&req)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	for _, field := range []string{"title", "description", "category", "quantity", "location", "monetary_value", "expiry_date"} {
		assert.Contains(t, vErr.Errors, field)
	}
	assert.Equal(t, "Must be a date in YYYY-MM-DD format", vErr.Errors["expiry_date"])
}

func TestValidate_CreateDonationColumnBounds(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		mutate  func(r *dto.CreateDonationRequest)
		field   string
		message string
	}{
		{
			name:    "quantity above int4",
			mutate:  func(r *dto.CreateDonationRequest) { r.Quantity = ptr(2147483648) },
			field:   "quantity",
			message: "Must be at most 2147483647",
		},
		{
			name:    "monetary value above decimal(10,2)",
			mutate:  func(r *dto.CreateDonationRequest) { r.MonetaryValue = ptr(1e8) },
			field:   "monetary_value",
			message: "Must be at most 99999999.99",
		},
		{
			name:    "monetary value far out of range",
			mutate:  func(r *dto.CreateDonationRequest) { r.MonetaryValue = ptr(1e12) },
			field:   "monetary_value",
			message: "Must be at most 99999999.99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validDonation()
			tt.mutate(&req)

			err := v.Validate(&req)
			require.Error(t, err)
			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.message, vErr.Errors[tt.field])
		})
	}

	req := validDonation()
	req.Quantity = ptr(2147483647)
	req.MonetaryValue = ptr(99999999.99)
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_CategoryFilter(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.ListDonationsRequest{Category: "all"}))
	assert.NoError(t, v.Validate(&dto.ListDonationsRequest{Category: "food"}))
	assert.Error(t, v.Validate(&dto.ListDonationsRequest{Category: "cars"}))
}

func TestValidate_ClaimStatus(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.ListClaimsRequest{Status: "approved"}))
	assert.Error(t, v.Validate(&dto.ListClaimsRequest{Status: "cancelled"}))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(ptr("2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())

	got, err = ParseDate(nil)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
