package reminders

import (
	"strings"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/errors"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/storage"
)

// Availability reports whether the delivery transport can currently reach the
// user. Implemented by the notifier's tray-app probe.
type Availability interface {
	Available() bool
}

// StoreService implements Service on top of the persistent store. Scheduling
// upserts a reminder row and canceling deletes it, which makes both primitives
// naturally idempotent; the notify command later delivers whatever rows are
// due. Permission maps to the delivery transport being reachable.
type StoreService struct {
	Store     storage.Provider
	Transport Availability
	Now       func() time.Time
}

func NewStoreService(store storage.Provider, transport Availability) *StoreService {
	return &StoreService{
		Store:     store,
		Transport: transport,
		Now:       time.Now,
	}
}

func (s *StoreService) Schedule(id string, trigger Trigger, title, body string) error {
	reminder := models.ScheduledReminder{
		ID:        id,
		Title:     title,
		Body:      body,
		CreatedAt: s.Now().UTC(),
	}
	switch {
	case trigger.Daily != nil:
		reminder.Kind = models.TriggerDaily
		reminder.Hour = trigger.Daily.Hour
		reminder.Minute = trigger.Daily.Minute
	case trigger.Once != nil:
		reminder.Kind = models.TriggerOnce
		fireAt := s.Now().Add(time.Duration(trigger.Once.InSeconds) * time.Second)
		reminder.FireAt = &fireAt
	default:
		// The planner always sets exactly one trigger arm.
		return errors.Invariant("trigger must be daily or one-shot")
	}
	if err := reminder.Validate(); err != nil {
		return err
	}
	return s.Store.UpsertReminder(reminder)
}

func (s *StoreService) Cancel(id string) error {
	return s.Store.DeleteReminder(id)
}

// LiveNudgeIDs lists the per-task nudge rows currently persisted, letting
// reconciliation clean up nudges for tasks no longer in today's entry.
func (s *StoreService) LiveNudgeIDs() ([]string, error) {
	rows, err := s.Store.GetReminders()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, r := range rows {
		if strings.HasPrefix(r.ID, constants.ReminderNudgeIDPrefix) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *StoreService) PermissionStatus() PermissionStatus {
	if s.Transport == nil {
		return PermissionStatus{Granted: false}
	}
	return PermissionStatus{Granted: s.Transport.Available()}
}
