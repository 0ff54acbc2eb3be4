package models

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
)

// Reminder scheme versions. The configuration went through three shapes:
// V1 carried pick-task and wrap-up toggles, V2 added a focus-nudge toggle,
// V3 collapsed back to a pick-task toggle with focus nudges always on.
// Everything past the store boundary operates on the canonical V3 shape.
const (
	ReminderSchemeV1 = 1
	ReminderSchemeV2 = 2
	ReminderSchemeV3 = 3
)

// ReminderScheme is the versioned reminder configuration. FocusNudgeEnabled
// is only meaningful for version 2 records and is consumed by migration.
type ReminderScheme struct {
	Version         int    `json:"version"`
	PickTaskEnabled bool   `json:"pick_task_enabled"`
	PickTaskTime    string `json:"pick_task_time"` // HH:MM format
	WrapUpEnabled   bool   `json:"wrap_up_enabled"`
	WrapUpTime      string `json:"wrap_up_time"` // HH:MM format

	FocusNudgeEnabled *bool `json:"focus_nudge_enabled,omitempty"` // V2 only
}

// DefaultReminderScheme returns the canonical V3 configuration with defaults.
func DefaultReminderScheme() ReminderScheme {
	return ReminderScheme{
		Version:         ReminderSchemeV3,
		PickTaskEnabled: true,
		PickTaskTime:    constants.DefaultPickTaskTime,
		WrapUpEnabled:   true,
		WrapUpTime:      constants.DefaultWrapUpTime,
	}
}

func (s *ReminderScheme) Validate() error {
	switch s.Version {
	case ReminderSchemeV1, ReminderSchemeV2, ReminderSchemeV3:
	default:
		return fmt.Errorf("unknown reminder scheme version: %d", s.Version)
	}
	if s.PickTaskTime != "" {
		if _, err := time.Parse(constants.TimeFormat, s.PickTaskTime); err != nil {
			return fmt.Errorf("invalid pick-task time format (expected HH:MM): %w", err)
		}
	}
	if s.WrapUpTime != "" {
		if _, err := time.Parse(constants.TimeFormat, s.WrapUpTime); err != nil {
			return fmt.Errorf("invalid wrap-up time format (expected HH:MM): %w", err)
		}
	}
	return nil
}

// MigrateReminderScheme normalizes any stored scheme version to the canonical
// V3 shape. Migration never fails: a zero-valued or unrecognized scheme comes
// back as the default configuration.
func MigrateReminderScheme(s ReminderScheme) ReminderScheme {
	switch s.Version {
	case ReminderSchemeV3:
		// Already canonical; scrub the legacy toggle if it survived a re-encode.
		s.FocusNudgeEnabled = nil
	case ReminderSchemeV2:
		// V3 made focus nudges always-on, so the V2 toggle is dropped.
		s.Version = ReminderSchemeV3
		s.FocusNudgeEnabled = nil
	case ReminderSchemeV1:
		s.Version = ReminderSchemeV3
	default:
		return DefaultReminderScheme()
	}
	if s.PickTaskTime == "" {
		s.PickTaskTime = constants.DefaultPickTaskTime
	}
	if s.WrapUpTime == "" {
		s.WrapUpTime = constants.DefaultWrapUpTime
	}
	return s
}
