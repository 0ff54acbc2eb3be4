// Package progression implements the level and streak state machine. Both
// transitions are pure functions over explicit inputs: EvaluateEndOfDay is the
// day-boundary evaluator, RecordCompletion the task-completion path. Together
// they maintain the single invariant that the streak counts consecutive
// fully-completed days at the current level only, and that the level moves by
// exactly one step per transition.
package progression

import (
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

// EvaluateEndOfDay decides whether yesterday counts as a missed day and, if so,
// resets the streak and regresses the level by one (never below the minimum).
// Malformed entries are treated as absent. The evaluation is idempotent within
// a calendar day: the profile records the date it was last evaluated for, so
// feeding the output back in on the same day is a no-op rather than a second
// regression.
func EvaluateEndOfDay(profile models.Profile, entries map[string]models.DailyEntry, now time.Time) models.Profile {
	today := utils.DateString(now)
	if profile.LastEvaluatedDate == today {
		return profile
	}
	profile.LastEvaluatedDate = today

	yesterday := utils.YesterdayString(now)

	entry, ok := usableEntry(entries, yesterday)
	if !ok {
		// No record of yesterday. Only a genuine gap counts as a miss: the
		// user must have an active streak and history from before yesterday,
		// otherwise this is simply a brand-new installation.
		if profile.CurrentLevelStreak > 0 && hasHistoryBefore(entries, yesterday) {
			return regress(profile)
		}
		return profile
	}

	// A started but unfinished day is a miss. A completed day, or a day where
	// no task was ever added, leaves the profile untouched; streak increments
	// happen on the completion path, never here.
	if len(entry.Tasks) > 0 && !entry.Completed {
		return regress(profile)
	}
	return profile
}

// RecordCompletion applies the completion-path transition for a day that just
// became fully completed: the streak advances, the longest streak follows, and
// reaching the level-up threshold below the maximum level advances the level
// and restarts the streak. Entries that are not completed leave the profile
// unchanged.
func RecordCompletion(profile models.Profile, entry models.DailyEntry) models.Profile {
	if !entry.Completed || len(entry.Tasks) == 0 {
		return profile
	}

	profile.CurrentLevelStreak++
	if profile.CurrentLevelStreak > profile.LongestStreak {
		profile.LongestStreak = profile.CurrentLevelStreak
	}
	if profile.CurrentLevelStreak >= constants.LevelUpStreak && profile.CurrentLevel < constants.MaxLevel {
		profile.CurrentLevel++
		profile.CurrentLevelStreak = 0
	}
	return profile
}

func regress(profile models.Profile) models.Profile {
	profile.CurrentLevelStreak = 0
	if profile.CurrentLevel > constants.MinLevel {
		profile.CurrentLevel--
	}
	return profile
}

func usableEntry(entries map[string]models.DailyEntry, date string) (models.DailyEntry, bool) {
	entry, ok := entries[date]
	if !ok {
		return models.DailyEntry{}, false
	}
	if err := entry.Validate(); err != nil {
		return models.DailyEntry{}, false
	}
	return entry, true
}

// hasHistoryBefore reports whether any usable entry is dated strictly before
// the given date. ISO dates compare correctly as strings.
func hasHistoryBefore(entries map[string]models.DailyEntry, date string) bool {
	for d, entry := range entries {
		if d >= date {
			continue
		}
		if err := entry.Validate(); err != nil {
			continue
		}
		return true
	}
	return false
}
