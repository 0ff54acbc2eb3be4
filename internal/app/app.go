// Package app is the orchestration layer: every user-facing mutation flows
// through here, in the mandated order of evaluate progression, persist
// profile, persist entry, reconcile notifications. Scheduling against state
// that has not been written yet is never allowed.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/progression"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/reminders"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/storage"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type App struct {
	Store   storage.Provider
	Service reminders.Service
	Planner *reminders.Planner
	Now     func() time.Time

	// Serializes evaluate-persist-reconcile sequences so no two
	// reconciliations run concurrently for the same user.
	mu sync.Mutex
}

func New(store storage.Provider, service reminders.Service) *App {
	return &App{
		Store:   store,
		Service: service,
		Planner: reminders.NewPlanner(),
		Now:     time.Now,
	}
}

// Sync runs the app-start sequence: end-of-day evaluation, profile persist if
// changed, then reminder reconciliation. Storage read failures are logged and
// the sequence continues with in-memory defaults rather than crashing.
func (a *App) Sync() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	profile, entries := a.loadState()
	profile = a.evaluateAndPersist(profile, entries)
	a.reconcile(profile, entries)
	return nil
}

// AddTask appends a task to today's entry, enforcing the per-day cap recorded
// when the day's first task was added.
func (a *App) AddTask(text, scheduledTime string) (models.TaskItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if text == "" {
		return models.TaskItem{}, fmt.Errorf("task text cannot be empty")
	}
	if scheduledTime != "" && !utils.ValidateTimeFormat(scheduledTime) {
		return models.TaskItem{}, fmt.Errorf("invalid scheduled time format (expected HH:MM): %s", scheduledTime)
	}

	profile, entries := a.loadState()
	profile = a.evaluateAndPersist(profile, entries)

	today := a.today(profile)
	entry, ok := entries[today]
	if !ok {
		entry = models.DailyEntry{
			Date:        today,
			LevelAtTime: profile.CurrentLevel,
			CreatedAt:   a.Now().UTC(),
		}
	}
	if len(entry.Tasks) >= entry.LevelAtTime {
		return models.TaskItem{}, fmt.Errorf("daily limit reached: level %d allows %d task(s)",
			entry.LevelAtTime, entry.LevelAtTime)
	}

	task := models.TaskItem{
		ID:            uuid.New().String(),
		Text:          text,
		CreatedAt:     a.Now().UTC(),
		ScheduledTime: scheduledTime,
	}
	entry.Tasks = append(entry.Tasks, task)
	entry.RecomputeCompleted()

	if err := a.Store.SaveEntry(entry); err != nil {
		return models.TaskItem{}, err
	}
	entries[today] = entry
	a.reconcile(profile, entries)
	return task, nil
}

// CompleteTask marks a task done. When the day's entry flips to completed the
// completion-path transition runs, which may advance the level. The updated
// profile is returned for the caller to report on.
func (a *App) CompleteTask(id string) (models.Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	profile, entries := a.loadState()
	profile = a.evaluateAndPersist(profile, entries)

	today := a.today(profile)
	entry, ok := entries[today]
	if !ok {
		return profile, fmt.Errorf("no tasks added today")
	}
	task := entry.Task(id)
	if task == nil {
		return profile, fmt.Errorf("task not found: %s", id)
	}
	if task.IsCompleted {
		return profile, fmt.Errorf("task already completed: %s", id)
	}

	now := a.Now().UTC()
	task.IsCompleted = true
	task.CompletedAt = &now
	entry.RecomputeCompleted()

	profile.TotalTasksCompleted++
	if entry.Completed {
		profile = progression.RecordCompletion(profile, entry)
	}

	// Profile commits before the entry, entry before any scheduling.
	if err := a.Store.SaveProfile(profile); err != nil {
		return profile, err
	}
	if err := a.Store.SaveEntry(entry); err != nil {
		return profile, err
	}
	entries[today] = entry
	a.reconcile(profile, entries)
	return profile, nil
}

// AddReflection records the end-of-day mood note. Only a completed day can
// carry a reflection.
func (a *App) AddReflection(mood, note string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	reflection := models.Reflection{Mood: mood, Note: note}
	if err := reflection.Validate(); err != nil {
		return err
	}

	profile, entries := a.loadState()
	today := a.today(profile)
	entry, ok := entries[today]
	if !ok || !entry.Completed {
		return fmt.Errorf("a reflection can only be added once today's tasks are complete")
	}

	entry.Reflection = &reflection
	if err := a.Store.SaveEntry(entry); err != nil {
		return err
	}
	entries[today] = entry
	a.reconcile(profile, entries)
	return nil
}

// SetReminders replaces the reminder configuration and reschedules.
func (a *App) SetReminders(scheme models.ReminderScheme) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	scheme = models.MigrateReminderScheme(scheme)
	if err := scheme.Validate(); err != nil {
		return err
	}

	profile, entries := a.loadState()
	profile.Reminders = scheme
	if err := a.Store.SaveProfile(profile); err != nil {
		return err
	}
	a.reconcile(profile, entries)
	return nil
}

// SetName updates the display name used for message personalization.
func (a *App) SetName(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	profile, entries := a.loadState()
	profile.Name = name
	if err := a.Store.SaveProfile(profile); err != nil {
		return err
	}
	a.reconcile(profile, entries)
	return nil
}

// Reset wipes all persisted state and cancels today's reminders.
func (a *App) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Store.Reset(); err != nil {
		return err
	}
	profile, entries := a.loadState()
	a.reconcile(profile, entries)
	return nil
}

func (a *App) loadState() (models.Profile, map[string]models.DailyEntry) {
	profile, err := a.Store.GetProfile()
	if err != nil {
		logger.Error("Failed to read profile, proceeding with defaults", "error", err)
		profile = models.DefaultProfile()
	}
	profile.Reminders = models.MigrateReminderScheme(profile.Reminders)

	entries, err := a.Store.GetAllEntries()
	if err != nil {
		logger.Error("Failed to read entries, proceeding with none", "error", err)
		entries = make(map[string]models.DailyEntry)
	}
	return profile, entries
}

func (a *App) evaluateAndPersist(profile models.Profile, entries map[string]models.DailyEntry) models.Profile {
	evaluated := progression.EvaluateEndOfDay(profile, entries, a.localNow(profile))
	if evaluated != profile {
		if err := a.Store.SaveProfile(evaluated); err != nil {
			logger.Error("Failed to persist progression result", "error", err)
		}
	}
	return evaluated
}

func (a *App) reconcile(profile models.Profile, entries map[string]models.DailyEntry) {
	now := a.localNow(profile)
	var entry *models.DailyEntry
	if e, ok := entries[utils.DateString(now)]; ok {
		entry = &e
	}
	a.Planner.Reconcile(a.Service, profile, entry, now)
}

func (a *App) localNow(profile models.Profile) time.Time {
	loc, err := utils.LoadLocation(profile.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone, falling back to local", "timezone", profile.Timezone)
		loc = time.Local
	}
	return a.Now().In(loc)
}

func (a *App) today(profile models.Profile) string {
	return utils.DateString(a.localNow(profile))
}
