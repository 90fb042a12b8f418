package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AuditAction is the kind of moderation action recorded in the trail.
type AuditAction string

const (
	AuditActionSuspend       AuditAction = "suspend"
	AuditActionActivate      AuditAction = "activate"
	AuditActionRoleChange    AuditAction = "role_change"
	AuditActionProfileVerify AuditAction = "profile_verify"
	AuditActionProfileReject AuditAction = "profile_reject"
)

// AuditTargetType identifies what kind of record an entry refers to.
type AuditTargetType string

const (
	AuditTargetAccount AuditTargetType = "account"
	AuditTargetProfile AuditTargetType = "profile"
)

// AuditEntry is one append-only record of an admin-initiated state
// change. Every moderation operation writes exactly one entry in the
// same transaction as the change itself.
type AuditEntry struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    uuid.UUID       `json:"actorId"`
	Action     AuditAction     `json:"action"`
	TargetType AuditTargetType `json:"targetType"`
	TargetID   uuid.UUID       `json:"targetId"`
	Reason     null.String     `json:"reason,omitempty"`
	PrevState  null.String     `json:"prevState,omitempty"`
	NewState   null.String     `json:"newState,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
