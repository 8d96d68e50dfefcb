package domain

import "time"

// AuditEvent records one authorization verdict on a mutating action.
type AuditEvent struct {
	Action   Action
	ActorID  int64 // 0 when the request carried no identity
	TargetID int64
	OwnerID  int64
	Allowed  bool
	Reason   string // empty when allowed
	At       time.Time
}

// NewAuditEvent builds the audit record for a verdict returned by Authorize.
func NewAuditEvent(principal *Identity, action Action, target *Target, verdict error, at time.Time) AuditEvent {
	ev := AuditEvent{
		Action:  action,
		Allowed: verdict == nil,
		At:      at.UTC(),
	}
	if principal != nil {
		ev.ActorID = principal.ID
	}
	if target != nil {
		ev.TargetID = target.ID
		ev.OwnerID = target.OwnerID
	}
	if verdict != nil {
		ev.Reason = verdict.Error()
	}
	return ev
}
