package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role classifies what kind of actor owns an account. It is fixed at
// registration and only an admin action may change it afterwards.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleBusiness   Role = "business"
	RoleCommunity  Role = "community"
	RoleAdmin      Role = "admin"
)

// RegistrableRoles are the roles an account may self-register with.
var RegistrableRoles = []Role{RoleIndividual, RoleBusiness, RoleCommunity}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleIndividual, RoleBusiness, RoleCommunity, RoleAdmin:
		return true
	}
	return false
}

// Registrable reports whether r may be chosen at registration.
func (r Role) Registrable() bool {
	for _, role := range RegistrableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AccountStatus is the lifecycle state of an account. Suspended accounts
// are rejected at the authorization gate regardless of token validity.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
)

// Account represents a registered user of the platform.
type Account struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Phone        null.String   `json:"phone,omitempty"`
	AvatarURL    null.String   `json:"avatarUrl,omitempty"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	LastLoginAt  null.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Suspended reports whether the account is blocked from authenticating.
func (a *Account) Suspended() bool {
	return a.Status == StatusSuspended
}

// RegisterInput is the payload for creating an account. A business or
// community registration may carry a matching profile payload.
type RegisterInput struct {
	Name     string               `json:"name" binding:"required,min=2,max=100"`
	Email    string               `json:"email" binding:"required,email"`
	Password string               `json:"password" binding:"required,min=8"`
	Role     Role                 `json:"role"`
	Phone    string               `json:"phone"`
	Profile  *ProfilePayloadInput `json:"profile"`
}

// LoginInput is the payload for authenticating.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountInput carries the allow-listed account fields a user may
// change on their own record. Unknown fields never reach the store.
type UpdateAccountInput struct {
	Name      *string              `json:"name"`
	Phone     *string              `json:"phone"`
	AvatarURL *string              `json:"avatarUrl"`
	Profile   *ProfilePayloadInput `json:"profile"`
}

// ChangePasswordInput is the payload for rotating a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
	Profile *Profile `json:"profile,omitempty"`
}

// ImpactSnapshot summarizes an account's standing, returned alongside
// the account on the verify endpoint.
type ImpactSnapshot struct {
	MemberSince         time.Time `json:"memberSince"`
	LastLoginAt         null.Time `json:"lastLoginAt,omitempty"`
	ProfileVerification string    `json:"profileVerification,omitempty"`
}
