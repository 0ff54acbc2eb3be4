package models

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
)

type TriggerKind string

const (
	TriggerDaily TriggerKind = "daily"
	TriggerOnce  TriggerKind = "once"
)

// ScheduledReminder is a reminder handed to the notification service, persisted
// until delivered (one-shot) or canceled (daily). The ID identifies the logical
// slot, so re-scheduling under the same ID replaces the previous reminder.
type ScheduledReminder struct {
	ID        string      `json:"id"`
	Kind      TriggerKind `json:"kind"`
	Hour      int         `json:"hour"`   // daily trigger
	Minute    int         `json:"minute"` // daily trigger
	FireAt    *time.Time  `json:"fire_at,omitempty"` // one-shot trigger
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	LastSent  *time.Time  `json:"last_sent,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (r *ScheduledReminder) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("reminder id cannot be empty")
	}
	if r.Body == "" {
		return fmt.Errorf("reminder body cannot be empty")
	}
	switch r.Kind {
	case TriggerDaily:
		if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
			return fmt.Errorf("invalid daily trigger time %02d:%02d", r.Hour, r.Minute)
		}
	case TriggerOnce:
		if r.FireAt == nil {
			return fmt.Errorf("one-shot reminder must carry a fire time")
		}
	default:
		return fmt.Errorf("unknown trigger kind: %q", r.Kind)
	}
	return nil
}

// IsDue reports whether the reminder should fire during the minute containing now.
// Daily reminders that already fired today are not due again.
func (r *ScheduledReminder) IsDue(now time.Time) bool {
	switch r.Kind {
	case TriggerDaily:
		if now.Hour() != r.Hour || now.Minute() != r.Minute {
			return false
		}
		if r.LastSent != nil && r.LastSent.In(now.Location()).Format(constants.DateFormat) == now.Format(constants.DateFormat) {
			return false
		}
		return true
	case TriggerOnce:
		if r.FireAt == nil {
			return false
		}
		fire := r.FireAt.In(now.Location())
		return !now.Before(fire.Truncate(time.Minute)) && now.Sub(fire) < time.Minute
	default:
		return false
	}
}
