package apperrors

import (
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

// ErrNotFound wraps a repository miss (gorm.ErrRecordNotFound or a
// repository sentinel) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Donations
// =========================================================================

var ErrDonationNotFound = New(
	CodeNotFound,
	"donation",
	"Donation not found",
	http.StatusNotFound,
)

// ErrNotDonationOwner - only the donor who posted a donation (or an admin)
// may change or remove it.
var ErrNotDonationOwner = New(
	CodeForbidden,
	"donation",
	"Only the donation owner or an administrator can do this",
	http.StatusForbidden,
)

var ErrNotDonor = New(
	CodeForbidden,
	"donation",
	"Only donors can post donations",
	http.StatusForbidden,
)

// ErrDonationUnavailable is returned whenever a flow needs the donation to be
// available and it is not (claim request, approval).
var ErrDonationUnavailable = New(
	CodeInvalidState,
	"donation",
	"This donation is no longer available",
	http.StatusConflict,
)

var ErrDonationNotDeletable = New(
	CodeInvalidState,
	"donation",
	"Only available donations can be deleted",
	http.StatusConflict,
)

// =========================================================================
// Claims
// =========================================================================

var ErrClaimNotFound = New(
	CodeNotFound,
	"claim",
	"Claim not found",
	http.StatusNotFound,
)

var ErrNotCharity = New(
	CodeForbidden,
	"claim",
	"Only charities can claim donations",
	http.StatusForbidden,
)

var ErrDuplicateClaim = New(
	CodeConflict,
	"claim",
	"You already have a claim for this donation",
	http.StatusConflict,
)

var ErrAdminOnly = New(
	CodeForbidden,
	"claim",
	"Only administrators can approve or reject claims",
	http.StatusForbidden,
)

var ErrNotClaimCharity = New(
	CodeForbidden,
	"claim",
	"Only the charity that made the claim can cancel it",
	http.StatusForbidden,
)

var ErrNotClaimParty = New(
	CodeForbidden,
	"claim",
	"You are not a party to this claim",
	http.StatusForbidden,
)

var ErrClaimNotPending = New(
	CodeInvalidState,
	"claim",
	"Only pending claims can be changed this way",
	http.StatusConflict,
)

var ErrClaimNotApproved = New(
	CodeInvalidState,
	"claim",
	"Only approved claims can be completed",
	http.StatusConflict,
)

// =========================================================================
// Messages & notifications
// =========================================================================

var ErrMessageNotFound = New(
	CodeNotFound,
	"message",
	"Message not found",
	http.StatusNotFound,
)

var ErrThreadAccessDenied = New(
	CodeForbidden,
	"message",
	"You cannot access messages of this claim",
	http.StatusForbidden,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// =========================================================================
// Request level
// =========================================================================

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Too many requests, slow down",
	http.StatusTooManyRequests,
)
