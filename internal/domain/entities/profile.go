package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProfileKind distinguishes business and community profiles.
type ProfileKind string

const (
	ProfileKindBusiness  ProfileKind = "business"
	ProfileKindCommunity ProfileKind = "community"
)

// Valid reports whether k is a known profile kind.
func (k ProfileKind) Valid() bool {
	return k == ProfileKindBusiness || k == ProfileKindCommunity
}

// KindForRole returns the profile kind matching an account role, if any.
func KindForRole(r Role) (ProfileKind, bool) {
	switch r {
	case RoleBusiness:
		return ProfileKindBusiness, true
	case RoleCommunity:
		return ProfileKindCommunity, true
	}
	return "", false
}

// VerificationStatus is the admin-controlled approval state of a
// profile. Approved and rejected are terminal.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Decision reports whether s is a state an admin may decide into.
func (s VerificationStatus) Decision() bool {
	return s == VerificationApproved || s == VerificationRejected
}

// Profile is the organization extension of a business or community
// account. It shares the account's id; at most one exists per account.
type Profile struct {
	AccountID          uuid.UUID          `json:"accountId"`
	Kind               ProfileKind        `json:"kind"`
	OrgName            string             `json:"orgName"`
	RegistrationNo     null.String        `json:"registrationNo,omitempty"`
	Address            null.String        `json:"address,omitempty"`
	Sector             null.String        `json:"sector,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedBy         *uuid.UUID         `json:"verifiedBy,omitempty"`
	VerifiedAt         null.Time          `json:"verifiedAt,omitempty"`
	Notes              null.String        `json:"notes,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// ProfilePayloadInput carries the organization fields accepted from the
// profile owner (at registration and on profile updates).
type ProfilePayloadInput struct {
	OrgName        string `json:"orgName" binding:"omitempty,min=2,max=150"`
	RegistrationNo string `json:"registrationNo"`
	Address        string `json:"address"`
	Sector         string `json:"sector"`
}

// VerifyProfileInput is the admin decision payload.
type VerifyProfileInput struct {
	Decision VerificationStatus `json:"decision" binding:"required"`
	Notes    string             `json:"notes"`
}
