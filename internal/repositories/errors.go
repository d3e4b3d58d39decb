package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrActiveClaimExists    = errors.New("active claim already exists for this charity")
	ErrApprovedClaimExists  = errors.New("donation already has an approved claim")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

const (
	pgUniqueViolation = "23505"

	activeClaimIndex   = "uq_claims_active_per_charity"
	approvedClaimIndex = "uq_claims_one_approved"
)

// uniqueViolation returns the violated constraint name, or "" when err is not
// a unique violation.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == "" {
			return "unknown"
		}
		return pgErr.ConstraintName
	}
	return ""
}

// mapClaimConstraint turns a violation of the claim partial indexes into the
// matching sentinel.
func mapClaimConstraint(err error) error {
	switch uniqueViolation(err) {
	case "":
		return err
	case approvedClaimIndex:
		return ErrApprovedClaimExists
	default:
		return ErrActiveClaimExists
	}
}
