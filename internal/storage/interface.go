package storage

import "github.com/Kanishkaanand/One-Thing-Focus/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Daily entries
	GetEntry(date string) (models.DailyEntry, error)
	GetAllEntries() (map[string]models.DailyEntry, error)
	SaveEntry(models.DailyEntry) error

	// Scheduled reminders
	GetReminders() ([]models.ScheduledReminder, error)
	UpsertReminder(models.ScheduledReminder) error
	DeleteReminder(id string) error

	// Reset wipes all persisted state back to a fresh installation.
	Reset() error

	// Utils
	GetConfigPath() string
}
