package progression

import (
	"testing"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
)

var testNow = time.Date(2025, 3, 15, 8, 30, 0, 0, time.UTC)

const (
	yesterday    = "2025-03-14"
	twoDaysAgo   = "2025-03-13"
	threeDaysAgo = "2025-03-12"
)

func makeEntry(date string, level int, completed ...bool) models.DailyEntry {
	entry := models.DailyEntry{
		Date:        date,
		LevelAtTime: level,
		CreatedAt:   testNow.AddDate(0, 0, -1),
	}
	for i, done := range completed {
		task := models.TaskItem{
			ID:          date + "-task-" + string(rune('a'+i)),
			Text:        "test task",
			CreatedAt:   entry.CreatedAt,
			IsCompleted: done,
		}
		entry.Tasks = append(entry.Tasks, task)
	}
	entry.RecomputeCompleted()
	return entry
}

func TestEvaluateEndOfDayMissedDayRegresses(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 5}
	entries := map[string]models.DailyEntry{
		yesterday: makeEntry(yesterday, 2, false),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 1 {
		t.Errorf("expected level 1 after miss, got %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 0 {
		t.Errorf("expected streak 0 after miss, got %d", result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayLevelFloorsAtOne(t *testing.T) {
	profile := models.Profile{CurrentLevel: 1, CurrentLevelStreak: 3}
	entries := map[string]models.DailyEntry{
		yesterday: makeEntry(yesterday, 1, false),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 1 {
		t.Errorf("expected level to stay at 1, got %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 0 {
		t.Errorf("expected streak 0, got %d", result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayCompletedYesterdayUnchanged(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 4}
	entries := map[string]models.DailyEntry{
		yesterday: makeEntry(yesterday, 2, true, true),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 2 || result.CurrentLevelStreak != 4 {
		t.Errorf("expected profile unchanged, got level=%d streak=%d",
			result.CurrentLevel, result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayZeroTaskYesterdayUnchanged(t *testing.T) {
	profile := models.Profile{CurrentLevel: 3, CurrentLevelStreak: 2}
	entries := map[string]models.DailyEntry{
		yesterday: makeEntry(yesterday, 3),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 3 || result.CurrentLevelStreak != 2 {
		t.Errorf("expected profile unchanged for never-started day, got level=%d streak=%d",
			result.CurrentLevel, result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayBrandNewUserNotPunished(t *testing.T) {
	profile := models.Profile{CurrentLevel: 1, CurrentLevelStreak: 0}

	result := EvaluateEndOfDay(profile, map[string]models.DailyEntry{}, testNow)

	if result.CurrentLevel != 1 || result.CurrentLevelStreak != 0 {
		t.Errorf("expected fresh profile unchanged, got level=%d streak=%d",
			result.CurrentLevel, result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayNoYesterdayEntryWithHistoryRegresses(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 6}
	entries := map[string]models.DailyEntry{
		twoDaysAgo: makeEntry(twoDaysAgo, 2, true, true),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 1 {
		t.Errorf("expected regression to level 1 for gap with prior history, got %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 0 {
		t.Errorf("expected streak reset, got %d", result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayNoYesterdayEntryWithoutStreakUnchanged(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 0}
	entries := map[string]models.DailyEntry{
		twoDaysAgo: makeEntry(twoDaysAgo, 2, false),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 2 {
		t.Errorf("expected no regression without active streak, got level %d", result.CurrentLevel)
	}
}

func TestEvaluateEndOfDayMultiDayGapRegressesOnce(t *testing.T) {
	// A five-day absence still costs a single level step and one streak reset.
	profile := models.Profile{CurrentLevel: 3, CurrentLevelStreak: 4}
	entries := map[string]models.DailyEntry{
		"2025-03-09": makeEntry("2025-03-09", 3, true, true, true),
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 2 {
		t.Errorf("expected exactly one level decrement, got level %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 0 {
		t.Errorf("expected streak 0, got %d", result.CurrentLevelStreak)
	}
}

func TestEvaluateEndOfDayIdempotentWithinDay(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 5}
	entries := map[string]models.DailyEntry{
		yesterday:  makeEntry(yesterday, 2, false),
		twoDaysAgo: makeEntry(twoDaysAgo, 2, true),
	}

	first := EvaluateEndOfDay(profile, entries, testNow)
	second := EvaluateEndOfDay(first, entries, testNow)

	if first != second {
		t.Errorf("expected identical results for repeated evaluation, got %+v and %+v", first, second)
	}
}

func TestEvaluateEndOfDayOwnOutputNotRegressedAgain(t *testing.T) {
	// An incomplete yesterday keeps sitting in the entries map all day, so
	// every re-evaluation sees it. Only the first call of the day may charge
	// the miss.
	profile := models.Profile{CurrentLevel: 3, CurrentLevelStreak: 5}
	entries := map[string]models.DailyEntry{
		yesterday:  makeEntry(yesterday, 3, false, false),
		twoDaysAgo: makeEntry(twoDaysAgo, 3, true, true, true),
	}

	first := EvaluateEndOfDay(profile, entries, testNow)
	if first.CurrentLevel != 2 {
		t.Fatalf("expected level 2 after the miss, got %d", first.CurrentLevel)
	}

	second := EvaluateEndOfDay(first, entries, testNow)
	if second.CurrentLevel != 2 {
		t.Errorf("second evaluation applied another regression: got level %d", second.CurrentLevel)
	}

	third := EvaluateEndOfDay(second, entries, testNow.Add(6*time.Hour))
	if third.CurrentLevel != 2 {
		t.Errorf("later same-day evaluation applied another regression: got level %d", third.CurrentLevel)
	}
}

func TestEvaluateEndOfDayRunsAgainNextDay(t *testing.T) {
	profile := models.Profile{CurrentLevel: 3, CurrentLevelStreak: 5}
	entries := map[string]models.DailyEntry{
		yesterday: makeEntry(yesterday, 3, false),
	}

	evaluated := EvaluateEndOfDay(profile, entries, testNow)
	if evaluated.CurrentLevel != 2 {
		t.Fatalf("expected level 2 after the first miss, got %d", evaluated.CurrentLevel)
	}

	// The user starts but does not finish a task today; tomorrow's evaluation
	// must charge that as a fresh miss despite today's stamp.
	entries["2025-03-15"] = makeEntry("2025-03-15", 2, false)
	nextDay := EvaluateEndOfDay(evaluated, entries, testNow.AddDate(0, 0, 1))
	if nextDay.CurrentLevel != 1 {
		t.Errorf("expected level 1 after a second missed day, got %d", nextDay.CurrentLevel)
	}
}

func TestEvaluateEndOfDayMalformedEntryTreatedAsAbsent(t *testing.T) {
	profile := models.Profile{CurrentLevel: 2, CurrentLevelStreak: 0}
	entries := map[string]models.DailyEntry{
		// Bad level and a task with no id: fails validation.
		yesterday: {Date: yesterday, LevelAtTime: 9, Tasks: []models.TaskItem{{Text: "x"}}},
	}

	result := EvaluateEndOfDay(profile, entries, testNow)

	if result.CurrentLevel != 2 {
		t.Errorf("expected malformed entry to be ignored, got level %d", result.CurrentLevel)
	}
}

func TestRecordCompletionIncrementsStreak(t *testing.T) {
	profile := models.Profile{CurrentLevel: 1, CurrentLevelStreak: 2, LongestStreak: 2}
	entry := makeEntry("2025-03-15", 1, true)

	result := RecordCompletion(profile, entry)

	if result.CurrentLevelStreak != 3 {
		t.Errorf("expected streak 3, got %d", result.CurrentLevelStreak)
	}
	if result.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", result.LongestStreak)
	}
}

func TestRecordCompletionLevelUpAtThreshold(t *testing.T) {
	profile := models.Profile{CurrentLevel: 1, CurrentLevelStreak: 6, LongestStreak: 6}
	entry := makeEntry("2025-03-15", 1, true)

	result := RecordCompletion(profile, entry)

	if result.CurrentLevel != 2 {
		t.Errorf("expected level 2 after seventh completed day, got %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 0 {
		t.Errorf("expected streak reset on level up, got %d", result.CurrentLevelStreak)
	}
	if result.LongestStreak != 7 {
		t.Errorf("expected longest streak 7, got %d", result.LongestStreak)
	}
}

func TestRecordCompletionNoLevelUpAtMaxLevel(t *testing.T) {
	profile := models.Profile{CurrentLevel: 3, CurrentLevelStreak: 6}
	entry := makeEntry("2025-03-15", 3, true, true, true)

	result := RecordCompletion(profile, entry)

	if result.CurrentLevel != 3 {
		t.Errorf("expected level to stay at 3, got %d", result.CurrentLevel)
	}
	if result.CurrentLevelStreak != 7 {
		t.Errorf("expected streak to keep growing at max level, got %d", result.CurrentLevelStreak)
	}
}

func TestRecordCompletionIgnoresIncompleteEntry(t *testing.T) {
	profile := models.Profile{CurrentLevel: 1, CurrentLevelStreak: 2}
	entry := makeEntry("2025-03-15", 1, false)

	result := RecordCompletion(profile, entry)

	if result.CurrentLevelStreak != 2 {
		t.Errorf("expected streak unchanged for incomplete entry, got %d", result.CurrentLevelStreak)
	}
}
