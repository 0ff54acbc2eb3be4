// Package reminders converts profile and entry state into the set of local
// notifications that should exist right now, and reconciles that set against a
// notification service. The service itself only needs idempotent cancel-by-id
// and schedule-by-id primitives.
package reminders

// DailyTrigger fires every day at the given local time.
type DailyTrigger struct {
	Hour   int
	Minute int
}

// OnceTrigger fires a single time, the given number of seconds from now.
type OnceTrigger struct {
	InSeconds int
}

// Trigger is a tagged union: exactly one of Daily or Once is set.
type Trigger struct {
	Daily *DailyTrigger
	Once  *OnceTrigger
}

// PermissionStatus reports whether the user has granted notification delivery.
type PermissionStatus struct {
	Granted bool
}

// Service is the contract required from the underlying notification service.
// Cancel must not fail for ids that were never scheduled, and scheduling under
// an existing id replaces the previous notification.
type Service interface {
	Schedule(id string, trigger Trigger, title, body string) error
	Cancel(id string) error
	PermissionStatus() PermissionStatus
}

// NudgeLister is an optional Service extension that enumerates the per-task
// nudge ids currently scheduled. Services that can report their live state let
// reconciliation cancel nudges whose tasks are no longer part of today's
// entry, such as a one-shot left behind after a missed fire window.
type NudgeLister interface {
	LiveNudgeIDs() ([]string, error)
}
