package models

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
)

// Profile is the single per-installation user record. CurrentLevel is the
// maximum number of tasks allowed per day and only ever moves by one step
// per transition, staying within [MinLevel, MaxLevel].
type Profile struct {
	CurrentLevel        int            `json:"current_level"`
	CurrentLevelStreak  int            `json:"current_level_streak"`
	LongestStreak       int            `json:"longest_streak"`
	TotalTasksCompleted int            `json:"total_tasks_completed"`
	Reminders           ReminderScheme `json:"reminders"`
	OnboardingComplete  bool           `json:"onboarding_complete"`
	Name                string         `json:"name,omitempty"`
	Timezone            string         `json:"timezone"`

	// LastEvaluatedDate records the local date (YYYY-MM-DD) the end-of-day
	// evaluator last ran for, so re-running within the same day cannot apply
	// a second regression.
	LastEvaluatedDate string    `json:"last_evaluated_date,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultProfile returns a fresh level-1 profile with default reminder settings.
func DefaultProfile() Profile {
	return Profile{
		CurrentLevel: constants.MinLevel,
		Reminders:    DefaultReminderScheme(),
		Timezone:     constants.DefaultTimezone,
		UpdatedAt:    time.Now().UTC(),
	}
}

func (p *Profile) Validate() error {
	if p.CurrentLevel < constants.MinLevel || p.CurrentLevel > constants.MaxLevel {
		return fmt.Errorf("current level must be between %d and %d, got %d",
			constants.MinLevel, constants.MaxLevel, p.CurrentLevel)
	}
	if p.CurrentLevelStreak < 0 {
		return fmt.Errorf("current level streak cannot be negative")
	}
	if p.LongestStreak < 0 {
		return fmt.Errorf("longest streak cannot be negative")
	}
	if p.TotalTasksCompleted < 0 {
		return fmt.Errorf("total tasks completed cannot be negative")
	}
	if err := p.Reminders.Validate(); err != nil {
		return fmt.Errorf("invalid reminder scheme: %w", err)
	}
	return nil
}
