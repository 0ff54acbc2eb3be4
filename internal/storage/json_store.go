package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type Store struct {
	Version   int                                 `json:"version"`
	Profile   models.Profile                      `json:"profile"`
	Entries   map[string]models.DailyEntry        `json:"entries"`
	Reminders map[string]models.ScheduledReminder `json:"reminders"`
}

type JSONStore struct {
	path  string
	store *Store
	now   func() time.Time
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
		now:  time.Now,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = defaultStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'otf init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Local cache data, not a ledger: recover with a fresh store rather
		// than surfacing corruption to the user.
		logger.Warn("Storage file is corrupted, starting from defaults", "path", s.path, "error", err)
		s.store = defaultStore()
		return nil
	}

	s.sanitize()
	return nil
}

// sanitize discards malformed records, substituting safe defaults. A bad
// profile becomes a fresh one; a bad entry loses only its own date.
func (s *JSONStore) sanitize() {
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.DailyEntry)
	}
	if s.store.Reminders == nil {
		s.store.Reminders = make(map[string]models.ScheduledReminder)
	}

	s.store.Profile.Reminders = models.MigrateReminderScheme(s.store.Profile.Reminders)
	if s.store.Profile.CurrentLevel == 0 {
		s.store.Profile = models.DefaultProfile()
	} else if err := s.store.Profile.Validate(); err != nil {
		logger.Warn("Discarding malformed profile", "error", err)
		s.store.Profile = models.DefaultProfile()
	}

	for date, entry := range s.store.Entries {
		if err := entry.Validate(); err != nil {
			logger.Warn("Dropping malformed entry", "date", date, "error", err)
			delete(s.store.Entries, date)
		}
	}
	for id, reminder := range s.store.Reminders {
		if err := reminder.Validate(); err != nil {
			logger.Warn("Dropping malformed reminder", "id", id, "error", err)
			delete(s.store.Reminders, id)
		}
	}
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetProfile() (models.Profile, error) {
	if s.store == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Profile, nil
}

func (s *JSONStore) SaveProfile(profile models.Profile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid profile: %w", err)
	}
	profile.UpdatedAt = s.now().UTC()
	s.store.Profile = profile
	return s.save()
}

func (s *JSONStore) GetEntry(date string) (models.DailyEntry, error) {
	if s.store == nil {
		return models.DailyEntry{}, fmt.Errorf("storage not loaded")
	}
	entry, ok := s.store.Entries[date]
	if !ok {
		return models.DailyEntry{}, fmt.Errorf("no entry found for date: %s", date)
	}
	return entry, nil
}

func (s *JSONStore) GetAllEntries() (map[string]models.DailyEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	entries := make(map[string]models.DailyEntry, len(s.store.Entries))
	for date, entry := range s.store.Entries {
		entries[date] = entry
	}
	return entries, nil
}

func (s *JSONStore) SaveEntry(entry models.DailyEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid entry: %w", err)
	}

	// Past days are immutable history; only today's entry may change.
	today, err := s.today()
	if err != nil {
		return err
	}
	if entry.Date < today {
		if _, exists := s.store.Entries[entry.Date]; exists {
			return fmt.Errorf("entry for %s is immutable history", entry.Date)
		}
	}

	entry.UpdatedAt = s.now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = entry.UpdatedAt
	}
	s.store.Entries[entry.Date] = entry
	return s.save()
}

func (s *JSONStore) GetReminders() ([]models.ScheduledReminder, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	reminders := make([]models.ScheduledReminder, 0, len(s.store.Reminders))
	for _, r := range s.store.Reminders {
		reminders = append(reminders, r)
	}
	return reminders, nil
}

func (s *JSONStore) UpsertReminder(reminder models.ScheduledReminder) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := reminder.Validate(); err != nil {
		return err
	}
	s.store.Reminders[reminder.ID] = reminder
	return s.save()
}

func (s *JSONStore) DeleteReminder(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	// Deleting an unknown id is harmless; the scheduler cancels defensively.
	delete(s.store.Reminders, id)
	return s.save()
}

func (s *JSONStore) Reset() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store = defaultStore()
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) today() (string, error) {
	loc, err := utils.LoadLocation(s.store.Profile.Timezone)
	if err != nil {
		loc = time.Local
	}
	return utils.DateString(s.now().In(loc)), nil
}

func defaultStore() *Store {
	return &Store{
		Version:   1,
		Profile:   models.DefaultProfile(),
		Entries:   make(map[string]models.DailyEntry),
		Reminders: make(map[string]models.ScheduledReminder),
	}
}
