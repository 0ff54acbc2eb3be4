package models

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
)

// TaskItem is a single task within a day's entry.
type TaskItem struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	CreatedAt     time.Time  `json:"created_at"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ScheduledTime string     `json:"scheduled_time,omitempty"` // HH:MM format
	Proof         string     `json:"proof,omitempty"`          // path to a proof photo, carried opaque
}

func (t *TaskItem) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if t.Text == "" {
		return fmt.Errorf("task text cannot be empty")
	}
	if t.ScheduledTime != "" {
		if _, err := time.Parse(constants.TimeFormat, t.ScheduledTime); err != nil {
			return fmt.Errorf("invalid scheduled time format (expected HH:MM): %w", err)
		}
	}
	return nil
}

// Reflection is an optional end-of-day mood note, added only once the day is complete.
type Reflection struct {
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

func (r *Reflection) Validate() error {
	switch r.Mood {
	case constants.MoodGreat, constants.MoodGood, constants.MoodOkay, constants.MoodHard, constants.MoodRough:
		return nil
	default:
		return fmt.Errorf("invalid mood: %q", r.Mood)
	}
}

// DailyEntry holds one calendar day's tasks. Entries for past dates are
// immutable history; only today's entry is mutated by user action.
type DailyEntry struct {
	Date        string      `json:"date"` // YYYY-MM-DD, primary key
	Tasks       []TaskItem  `json:"tasks"`
	Completed   bool        `json:"completed"`
	LevelAtTime int         `json:"level_at_time"`
	Reflection  *Reflection `json:"reflection,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (e *DailyEntry) Validate() error {
	if _, err := time.Parse(constants.DateFormat, e.Date); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if e.LevelAtTime < constants.MinLevel || e.LevelAtTime > constants.MaxLevel {
		return fmt.Errorf("level at time must be between %d and %d, got %d",
			constants.MinLevel, constants.MaxLevel, e.LevelAtTime)
	}
	if len(e.Tasks) > e.LevelAtTime {
		return fmt.Errorf("entry holds %d tasks but level allows %d", len(e.Tasks), e.LevelAtTime)
	}
	for i := range e.Tasks {
		if err := e.Tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	if e.Reflection != nil {
		if err := e.Reflection.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeCompleted re-derives the Completed flag: true iff the entry has at
// least one task and every task is completed.
func (e *DailyEntry) RecomputeCompleted() {
	if len(e.Tasks) == 0 {
		e.Completed = false
		return
	}
	for i := range e.Tasks {
		if !e.Tasks[i].IsCompleted {
			e.Completed = false
			return
		}
	}
	e.Completed = true
}

// Task returns the task with the given id, or nil if it is not in the entry.
func (e *DailyEntry) Task(id string) *TaskItem {
	for i := range e.Tasks {
		if e.Tasks[i].ID == id {
			return &e.Tasks[i]
		}
	}
	return nil
}

// IncompleteTasks returns the tasks that have not been completed yet.
func (e *DailyEntry) IncompleteTasks() []TaskItem {
	var out []TaskItem
	for _, t := range e.Tasks {
		if !t.IsCompleted {
			out = append(out, t)
		}
	}
	return out
}
