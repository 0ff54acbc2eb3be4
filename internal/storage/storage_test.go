package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "otf.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

func setupTestSQLiteStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "otf.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store, func() { store.Close() }
}

func testEntry(date string) models.DailyEntry {
	return models.DailyEntry{
		Date:        date,
		LevelAtTime: 1,
		Tasks: []models.TaskItem{
			{ID: uuid.New().String(), Text: "write draft", CreatedAt: time.Now()},
		},
	}
}

func TestJSONStoreProfileRoundTrip(t *testing.T) {
	store := setupTestJSONStore(t)

	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if profile.CurrentLevel != 1 {
		t.Errorf("expected fresh profile at level 1, got %d", profile.CurrentLevel)
	}

	profile.Name = "Kani"
	profile.CurrentLevelStreak = 3
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	loaded, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if loaded.Name != "Kani" || loaded.CurrentLevelStreak != 3 {
		t.Errorf("profile did not round-trip: %+v", loaded)
	}
}

func TestJSONStoreRejectsInvalidProfile(t *testing.T) {
	store := setupTestJSONStore(t)

	profile, _ := store.GetProfile()
	profile.CurrentLevel = 7
	if err := store.SaveProfile(profile); err == nil {
		t.Error("expected error persisting an out-of-range level")
	}
}

func TestJSONStoreEntryRoundTrip(t *testing.T) {
	store := setupTestJSONStore(t)
	today := utils.DateString(time.Now())

	entry := testEntry(today)
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	loaded, err := store.GetEntry(today)
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].Text != "write draft" {
		t.Errorf("entry did not round-trip: %+v", loaded)
	}
}

func TestJSONStorePastEntryImmutable(t *testing.T) {
	store := setupTestJSONStore(t)
	pastDate := utils.DateString(time.Now().AddDate(0, 0, -3))

	// First write for a past date is tolerated (no history exists yet).
	entry := testEntry(pastDate)
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("failed to save past entry: %v", err)
	}

	// Mutating it afterwards is not.
	entry.Tasks[0].IsCompleted = true
	if err := store.SaveEntry(entry); err == nil {
		t.Error("expected error mutating a past entry")
	}
}

func TestJSONStoreCorruptedFileRecovered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otf.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("expected corrupted file to load with defaults, got %v", err)
	}
	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to get profile after recovery: %v", err)
	}
	if profile.CurrentLevel != 1 {
		t.Errorf("expected default profile after recovery, got level %d", profile.CurrentLevel)
	}
}

func TestJSONStoreReminderLifecycle(t *testing.T) {
	store := setupTestJSONStore(t)

	reminder := models.ScheduledReminder{
		ID:        "reminder-pick-task",
		Kind:      models.TriggerDaily,
		Hour:      9,
		Body:      "Pick a task.",
		CreatedAt: time.Now(),
	}
	if err := store.UpsertReminder(reminder); err != nil {
		t.Fatalf("failed to upsert reminder: %v", err)
	}

	// Upserting under the same id replaces, never duplicates.
	reminder.Hour = 10
	if err := store.UpsertReminder(reminder); err != nil {
		t.Fatalf("failed to re-upsert reminder: %v", err)
	}

	reminders, err := store.GetReminders()
	if err != nil {
		t.Fatalf("failed to get reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected one reminder, got %d", len(reminders))
	}
	if reminders[0].Hour != 10 {
		t.Errorf("expected updated hour 10, got %d", reminders[0].Hour)
	}

	if err := store.DeleteReminder("reminder-pick-task"); err != nil {
		t.Fatalf("failed to delete reminder: %v", err)
	}
	if err := store.DeleteReminder("no-such-id"); err != nil {
		t.Errorf("deleting an unknown id must be harmless, got %v", err)
	}
}

func TestJSONStoreReset(t *testing.T) {
	store := setupTestJSONStore(t)
	today := utils.DateString(time.Now())

	if err := store.SaveEntry(testEntry(today)); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	profile, _ := store.GetProfile()
	profile.CurrentLevel = 3
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	if err := store.Reset(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}

	entries, err := store.GetAllEntries()
	if err != nil {
		t.Fatalf("failed to get entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after reset, got %d", len(entries))
	}
	fresh, _ := store.GetProfile()
	if fresh.CurrentLevel != 1 {
		t.Errorf("expected fresh profile after reset, got level %d", fresh.CurrentLevel)
	}
}

func TestSQLiteStoreProfileRoundTrip(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	profile.Name = "Kani"
	profile.CurrentLevel = 2
	profile.TotalTasksCompleted = 12
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	loaded, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if loaded.Name != "Kani" || loaded.CurrentLevel != 2 || loaded.TotalTasksCompleted != 12 {
		t.Errorf("profile did not round-trip: %+v", loaded)
	}
	if loaded.Reminders.Version != models.ReminderSchemeV3 {
		t.Errorf("expected canonical reminder scheme, got version %d", loaded.Reminders.Version)
	}
}

func TestSQLiteStoreEntryRoundTrip(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()
	today := utils.DateString(time.Now())

	entry := testEntry(today)
	entry.Tasks[0].ScheduledTime = "14:00"
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	loaded, err := store.GetEntry(today)
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if len(loaded.Tasks) != 1 || loaded.Tasks[0].ScheduledTime != "14:00" {
		t.Errorf("entry did not round-trip: %+v", loaded)
	}

	// Complete the task and add a reflection.
	loaded.Tasks[0].IsCompleted = true
	loaded.RecomputeCompleted()
	loaded.Reflection = &models.Reflection{Mood: "good", Note: "solid day"}
	if err := store.SaveEntry(loaded); err != nil {
		t.Fatalf("failed to update entry: %v", err)
	}

	updated, err := store.GetEntry(today)
	if err != nil {
		t.Fatalf("failed to reload entry: %v", err)
	}
	if !updated.Completed {
		t.Error("expected entry marked completed")
	}
	if updated.Reflection == nil || updated.Reflection.Mood != "good" {
		t.Errorf("reflection did not round-trip: %+v", updated.Reflection)
	}
}

func TestSQLiteStoreReminderLifecycle(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()

	fireAt := time.Now().Add(2 * time.Hour)
	reminder := models.ScheduledReminder{
		ID:        "reminder-nudge-" + uuid.New().String(),
		Kind:      models.TriggerOnce,
		FireAt:    &fireAt,
		Title:     "Focus time",
		Body:      "You planned this for 14:00.",
		CreatedAt: time.Now(),
	}
	if err := store.UpsertReminder(reminder); err != nil {
		t.Fatalf("failed to upsert reminder: %v", err)
	}

	reminders, err := store.GetReminders()
	if err != nil {
		t.Fatalf("failed to get reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected one reminder, got %d", len(reminders))
	}
	if reminders[0].Kind != models.TriggerOnce || reminders[0].FireAt == nil {
		t.Errorf("one-shot trigger did not round-trip: %+v", reminders[0])
	}

	if err := store.DeleteReminder(reminder.ID); err != nil {
		t.Fatalf("failed to delete reminder: %v", err)
	}
	remaining, _ := store.GetReminders()
	if len(remaining) != 0 {
		t.Errorf("expected no reminders after delete, got %d", len(remaining))
	}
}

func TestSQLiteStoreReset(t *testing.T) {
	store, cleanup := setupTestSQLiteStore(t)
	defer cleanup()
	today := utils.DateString(time.Now())

	if err := store.SaveEntry(testEntry(today)); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}

	entries, err := store.GetAllEntries()
	if err != nil {
		t.Fatalf("failed to get entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after reset, got %d", len(entries))
	}
	profile, err := store.GetProfile()
	if err != nil {
		t.Fatalf("failed to get profile after reset: %v", err)
	}
	if profile.CurrentLevel != 1 || profile.CurrentLevelStreak != 0 {
		t.Errorf("expected fresh profile after reset, got %+v", profile)
	}
}
