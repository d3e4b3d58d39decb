package validator

import (
	"log"
	"strings"
	"time"

	"charitybridge/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format of calendar dates (expiry, pickup).
const DateLayout = "2006-01-02"

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-category", validateCategory)
	mustRegister("is-category-filter", validateCategoryFilter)
	mustRegister("is-claim-status", validateClaimStatus)
	mustRegister("is-date", validateDate)
	mustRegister("notblank", validateNotBlank)
}

// Empty values pass every rule below; 'required' covers presence.

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.DonationCategory(value).Valid()
}

func validateCategoryFilter(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == models.CategoryAll {
		return true
	}
	return models.DonationCategory(value).Valid()
}

func validateClaimStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ClaimStatus(value).Valid()
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ParseDate parses an optional date already checked by 'is-date'.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
