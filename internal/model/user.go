package model

import "time"

// UserStatus is the lifecycle state of an invitation account.
type UserStatus int

const (
	// UserStatusUnseen is the provisioning default; the invitation was never used.
	UserStatusUnseen UserStatus = iota
	// UserStatusUnverified means the invitation was used but the email is not confirmed yet.
	UserStatusUnverified
	// UserStatusVerified means the email was confirmed and the user may log in.
	UserStatusVerified
	// UserStatusDisabled is set by administrative action only.
	UserStatusDisabled
	// UserStatusDeleted is set by administrative action only.
	UserStatusDeleted
)

func (s UserStatus) String() string {
	switch s {
	case UserStatusUnseen:
		return "unseen"
	case UserStatusUnverified:
		return "unverified"
	case UserStatusVerified:
		return "verified"
	case UserStatusDisabled:
		return "disabled"
	case UserStatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// CanRegister reports whether an invitation in this state may be (re-)registered.
func (s UserStatus) CanRegister() bool {
	return s == UserStatusUnseen || s == UserStatusUnverified
}

// User is the account of record for one invited household.
// Only fingerprints of issued tokens are stored, never the tokens themselves.
type User struct {
	ID                           uint       `json:"id" gorm:"primaryKey"`
	InvitationFingerprint        string     `json:"-" gorm:"size:128;uniqueIndex;not null"`
	EmailVerificationFingerprint *string    `json:"-" gorm:"size:128;uniqueIndex"`
	PasswordResetFingerprint     *string    `json:"-" gorm:"size:128;uniqueIndex"`
	Email                        *string    `json:"email,omitempty" gorm:"size:255;uniqueIndex"`
	PasswordDigest               *string    `json:"-" gorm:"size:255"` // Never expose in JSON
	Status                       UserStatus `json:"status" gorm:"not null;default:0;index"`
	LastLogin                    *time.Time `json:"last_login,omitempty"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`

	// Relations
	Guests []Guest `json:"guests,omitempty" gorm:"foreignKey:UserID"`
}

// EmailAddress returns the registered email or "" before registration.
func (u *User) EmailAddress() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}
