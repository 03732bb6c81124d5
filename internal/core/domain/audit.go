package domain

import "time"

// AuditAction names a privileged mutation recorded in the moderation trail.
type AuditAction string

const (
	AuditRoleGranted    AuditAction = "role_granted"
	AuditRoleRevoked    AuditAction = "role_revoked"
	AuditAccountRemoved AuditAction = "account_removed"
	AuditPostDeleted    AuditAction = "post_deleted"
)

// AuditEvent records who did what to which subject.
type AuditEvent struct {
	ID        string
	Action    AuditAction
	Actor     string // empty when the action is not tied to a token
	Subject   string // login or post id
	Detail    string
	Timestamp time.Time
}
