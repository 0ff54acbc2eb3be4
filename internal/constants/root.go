package constants

const (
	AppName           = "otf"
	DefaultConfigPath = "~/.config/otf/otf.json"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)

// Progression constants
const (
	// MinLevel and MaxLevel bound the daily task allowance. The level is the
	// number of tasks the user may take on in a single day.
	MinLevel = 1
	MaxLevel = 3

	// LevelUpStreak is the number of consecutive fully-completed days at the
	// current level required to advance to the next level.
	LevelUpStreak = 7
)

// Reminder constants
const (
	// QuietHour is the local hour at and after which no reminder may fire.
	QuietHour = 21

	// WrapUpWindowMin suppresses the wrap-up reminder when it would land
	// within this many minutes of an incomplete task's own nudge.
	WrapUpWindowMin = 60

	ReminderPickTaskID     = "reminder-pick-task"
	ReminderWrapUpID       = "reminder-wrap-up"
	ReminderNudgeIDPrefix  = "reminder-nudge-"
	NotificationDurationMs = 5000

	NotifierLockfileName = "otf-notifier.lock"
	TrayAppIdentifier    = "com.kanishkaanand.otf"
)

// Mood constants for daily reflections
const (
	MoodGreat = "great"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodHard  = "hard"
	MoodRough = "rough"
)

// Default settings values
const (
	DefaultPickTaskTime = "09:00"
	DefaultWrapUpTime   = "19:30"
	DefaultTimezone     = "Local" // Use system local timezone by default
)
