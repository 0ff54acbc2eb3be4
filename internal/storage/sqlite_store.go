package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/migration"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type SQLiteStore struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

func NewSQLiteStore(configPath string) *SQLiteStore {
	return &SQLiteStore{
		path: configPath,
		now:  time.Now,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.ensureProfileRow()
}

func (s *SQLiteStore) Load() error {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'otf init' first")
		}
		return fmt.Errorf("failed to stat storage: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.ensureProfileRow()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	migrationsFS, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to access embedded migrations: %w", err)
	}
	if err := migration.NewRunner(db, migrationsFS).ApplyPending(); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) ensureProfileRow() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM profile").Scan(&count); err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.writeProfile(models.DefaultProfile())
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetProfile() (models.Profile, error) {
	if s.db == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}

	var p models.Profile
	var reminders, updatedAt string
	var onboarding int
	err := s.db.QueryRow(`
		SELECT current_level, current_level_streak, longest_streak, total_tasks_completed,
		       reminders, onboarding_complete, name, timezone, last_evaluated_date, updated_at
		FROM profile WHERE id = 1
	`).Scan(&p.CurrentLevel, &p.CurrentLevelStreak, &p.LongestStreak, &p.TotalTasksCompleted,
		&reminders, &onboarding, &p.Name, &p.Timezone, &p.LastEvaluatedDate, &updatedAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p.OnboardingComplete = onboarding != 0
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		p.UpdatedAt = t
	}
	if err := json.Unmarshal([]byte(reminders), &p.Reminders); err != nil {
		logger.Warn("Discarding malformed reminder scheme", "error", err)
		p.Reminders = models.DefaultReminderScheme()
	}
	p.Reminders = models.MigrateReminderScheme(p.Reminders)

	// Local cache, not a ledger: a malformed profile is replaced, not surfaced.
	if err := p.Validate(); err != nil {
		logger.Warn("Discarding malformed profile", "error", err)
		fresh := models.DefaultProfile()
		if err := s.writeProfile(fresh); err != nil {
			return fresh, nil
		}
		return fresh, nil
	}
	return p, nil
}

func (s *SQLiteStore) SaveProfile(profile models.Profile) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid profile: %w", err)
	}
	profile.UpdatedAt = s.now().UTC()
	return s.writeProfile(profile)
}

func (s *SQLiteStore) writeProfile(profile models.Profile) error {
	reminders, err := json.Marshal(profile.Reminders)
	if err != nil {
		return fmt.Errorf("failed to serialize reminder scheme: %w", err)
	}
	onboarding := 0
	if profile.OnboardingComplete {
		onboarding = 1
	}
	_, err = s.db.Exec(`
		INSERT INTO profile (id, current_level, current_level_streak, longest_streak,
			total_tasks_completed, reminders, onboarding_complete, name, timezone,
			last_evaluated_date, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_level = excluded.current_level,
			current_level_streak = excluded.current_level_streak,
			longest_streak = excluded.longest_streak,
			total_tasks_completed = excluded.total_tasks_completed,
			reminders = excluded.reminders,
			onboarding_complete = excluded.onboarding_complete,
			name = excluded.name,
			timezone = excluded.timezone,
			last_evaluated_date = excluded.last_evaluated_date,
			updated_at = excluded.updated_at
	`, profile.CurrentLevel, profile.CurrentLevelStreak, profile.LongestStreak,
		profile.TotalTasksCompleted, string(reminders), onboarding, profile.Name,
		profile.Timezone, profile.LastEvaluatedDate, profile.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetEntry(date string) (models.DailyEntry, error) {
	if s.db == nil {
		return models.DailyEntry{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT date, level_at_time, completed, tasks, reflection_mood, reflection_note,
		       created_at, updated_at
		FROM entries WHERE date = ?
	`, date)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DailyEntry{}, fmt.Errorf("no entry found for date: %s", date)
		}
		return models.DailyEntry{}, err
	}
	return entry, nil
}

func (s *SQLiteStore) GetAllEntries() (map[string]models.DailyEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT date, level_at_time, completed, tasks, reflection_mood, reflection_note,
		       created_at, updated_at
		FROM entries
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]models.DailyEntry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		// Drop just the malformed date's history, keep the rest.
		if err := entry.Validate(); err != nil {
			logger.Warn("Dropping malformed entry", "date", entry.Date, "error", err)
			continue
		}
		entries[entry.Date] = entry
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.DailyEntry, error) {
	var entry models.DailyEntry
	var completed int
	var tasks, createdAt, updatedAt string
	var mood, note sql.NullString

	err := row.Scan(&entry.Date, &entry.LevelAtTime, &completed, &tasks, &mood, &note,
		&createdAt, &updatedAt)
	if err != nil {
		return models.DailyEntry{}, err
	}

	entry.Completed = completed != 0
	if err := json.Unmarshal([]byte(tasks), &entry.Tasks); err != nil {
		return models.DailyEntry{}, fmt.Errorf("failed to parse tasks for %s: %w", entry.Date, err)
	}
	if mood.Valid {
		entry.Reflection = &models.Reflection{Mood: mood.String, Note: note.String}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		entry.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		entry.UpdatedAt = t
	}
	return entry, nil
}

func (s *SQLiteStore) SaveEntry(entry models.DailyEntry) error {
	if s.db == nil {
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
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE date = ?", entry.Date).Scan(&count); err != nil {
			return fmt.Errorf("failed to check entry: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("entry for %s is immutable history", entry.Date)
		}
	}

	tasks, err := json.Marshal(entry.Tasks)
	if err != nil {
		return fmt.Errorf("failed to serialize tasks: %w", err)
	}
	completed := 0
	if entry.Completed {
		completed = 1
	}
	var mood, note sql.NullString
	if entry.Reflection != nil {
		mood = sql.NullString{String: entry.Reflection.Mood, Valid: true}
		note = sql.NullString{String: entry.Reflection.Note, Valid: true}
	}
	updatedAt := s.now().UTC()
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (date, level_at_time, completed, tasks, reflection_mood,
			reflection_note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			level_at_time = excluded.level_at_time,
			completed = excluded.completed,
			tasks = excluded.tasks,
			reflection_mood = excluded.reflection_mood,
			reflection_note = excluded.reflection_note,
			updated_at = excluded.updated_at
	`, entry.Date, entry.LevelAtTime, completed, string(tasks), mood, note,
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetReminders() ([]models.ScheduledReminder, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, kind, hour, minute, fire_at, title, body, last_sent, created_at
		FROM scheduled_reminders
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.ScheduledReminder
	for rows.Next() {
		var r models.ScheduledReminder
		var fireAt, lastSent sql.NullString
		var createdAt string
		var kind string
		if err := rows.Scan(&r.ID, &kind, &r.Hour, &r.Minute, &fireAt, &r.Title, &r.Body,
			&lastSent, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		r.Kind = models.TriggerKind(kind)
		if fireAt.Valid {
			if t, err := time.Parse(time.RFC3339, fireAt.String); err == nil {
				r.FireAt = &t
			}
		}
		if lastSent.Valid {
			if t, err := time.Parse(time.RFC3339, lastSent.String); err == nil {
				r.LastSent = &t
			}
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) UpsertReminder(reminder models.ScheduledReminder) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := reminder.Validate(); err != nil {
		return err
	}

	var fireAt, lastSent sql.NullString
	if reminder.FireAt != nil {
		fireAt = sql.NullString{String: reminder.FireAt.UTC().Format(time.RFC3339), Valid: true}
	}
	if reminder.LastSent != nil {
		lastSent = sql.NullString{String: reminder.LastSent.UTC().Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO scheduled_reminders (id, kind, hour, minute, fire_at, title, body, last_sent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			hour = excluded.hour,
			minute = excluded.minute,
			fire_at = excluded.fire_at,
			title = excluded.title,
			body = excluded.body,
			last_sent = excluded.last_sent
	`, reminder.ID, string(reminder.Kind), reminder.Hour, reminder.Minute, fireAt,
		reminder.Title, reminder.Body, lastSent, reminder.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write reminder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteReminder(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	// Deleting an unknown id is harmless; the scheduler cancels defensively.
	if _, err := s.db.Exec("DELETE FROM scheduled_reminders WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Reset() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	for _, table := range []string{"entries", "scheduled_reminders", "profile"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return s.writeProfile(models.DefaultProfile())
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) today() (string, error) {
	profile, err := s.GetProfile()
	if err != nil {
		return utils.DateString(s.now()), nil
	}
	loc, err := utils.LoadLocation(profile.Timezone)
	if err != nil {
		loc = time.Local
	}
	return utils.DateString(s.now().In(loc)), nil
}
