package models

// User is the local read model of an identity issued elsewhere. Rows are
// upserted from token claims on first sight and by the first-admin seed.
// Email is not unique here: the identity provider owns that constraint.
type User struct {
	BaseModel
	Name  string   `gorm:"size:255" json:"name"`
	Email string   `gorm:"index" json:"email"`
	Role  UserRole `gorm:"type:varchar(20);not null" json:"role"`

	CharityProfile *CharityProfile `gorm:"foreignKey:UserID" json:"charity_profile,omitempty"`
}

type CharityProfile struct {
	BaseModel
	UserID           string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	OrganizationName string `gorm:"size:255;not null" json:"organization_name"`
	Verified         bool   `gorm:"default:false" json:"verified"`
}

// DisplayName prefers the organization name for charities.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.CharityProfile != nil && u.CharityProfile.OrganizationName != "" {
		return u.CharityProfile.OrganizationName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
