package reminders

import (
	"math/rand"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type OpKind string

const (
	OpCancel   OpKind = "cancel"
	OpSchedule OpKind = "schedule"
)

// Op is a single reconciliation step against the notification service.
type Op struct {
	Kind    OpKind
	ID      string
	Trigger Trigger
	Title   string
	Body    string
}

// Planner computes the desired reminder operations for the current state.
// The random source is injected so message selection is deterministic in tests.
type Planner struct {
	Rand *rand.Rand
}

// NewPlanner returns a planner seeded from the current time.
func NewPlanner() *Planner {
	return &Planner{Rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Plan computes the full operation list for the given state. Every schedule is
// preceded by a cancel under the same id, so applying the plan can never leave
// two live notifications for one logical slot. The entry may be nil when no
// tasks have been added today.
func (p *Planner) Plan(profile models.Profile, entry *models.DailyEntry, now time.Time) []Op {
	scheme := models.MigrateReminderScheme(profile.Reminders)
	quietMin := constants.QuietHour * 60

	// No tasks yet today: the only candidate reminder is pick-task.
	if entry == nil || len(entry.Tasks) == 0 {
		ops := []Op{{Kind: OpCancel, ID: constants.ReminderWrapUpID}}
		ops = append(ops, p.planPickTask(profile, scheme, quietMin)...)
		return ops
	}

	// Day fully completed: nothing left to nudge about.
	if entry.Completed {
		ops := []Op{
			{Kind: OpCancel, ID: constants.ReminderPickTaskID},
			{Kind: OpCancel, ID: constants.ReminderWrapUpID},
		}
		for _, task := range entry.Tasks {
			ops = append(ops, Op{Kind: OpCancel, ID: nudgeID(task.ID)})
		}
		return ops
	}

	// In progress: the pick-task reminder is no longer relevant.
	ops := []Op{{Kind: OpCancel, ID: constants.ReminderPickTaskID}}
	nowMin := utils.MinutesOfDay(now)

	for _, task := range entry.Tasks {
		id := nudgeID(task.ID)
		if task.IsCompleted || task.ScheduledTime == "" {
			ops = append(ops, Op{Kind: OpCancel, ID: id})
			continue
		}
		taskMin, err := utils.ParseTimeToMinutes(task.ScheduledTime)
		if err != nil {
			logger.Warn("Skipping nudge with malformed scheduled time", "task", task.ID, "time", task.ScheduledTime)
			ops = append(ops, Op{Kind: OpCancel, ID: id})
			continue
		}
		// Never fire at or after the quiet hour, and never late-fire a time
		// that has already passed on a reschedule.
		if taskMin >= quietMin || taskMin <= nowMin {
			ops = append(ops, Op{Kind: OpCancel, ID: id})
			continue
		}
		body := pickMessage(p.Rand, focusNudgeNamed, focusNudgeAnon, messageVars{
			Name: profile.Name,
			Task: task.Text,
			Time: task.ScheduledTime,
		})
		ops = append(ops,
			Op{Kind: OpCancel, ID: id},
			Op{
				Kind:    OpSchedule,
				ID:      id,
				Trigger: Trigger{Once: &OnceTrigger{InSeconds: (taskMin - nowMin) * 60}},
				Title:   "Focus time",
				Body:    body,
			},
		)
	}

	ops = append(ops, p.planWrapUp(profile, scheme, entry, quietMin)...)
	return ops
}

func (p *Planner) planPickTask(profile models.Profile, scheme models.ReminderScheme, quietMin int) []Op {
	if !scheme.PickTaskEnabled {
		return []Op{{Kind: OpCancel, ID: constants.ReminderPickTaskID}}
	}
	pickMin, err := utils.ParseTimeToMinutes(scheme.PickTaskTime)
	if err != nil || pickMin >= quietMin {
		return []Op{{Kind: OpCancel, ID: constants.ReminderPickTaskID}}
	}
	body := pickMessage(p.Rand, pickTaskNamed, pickTaskAnon, messageVars{Name: profile.Name})
	return []Op{
		{Kind: OpCancel, ID: constants.ReminderPickTaskID},
		{
			Kind:    OpSchedule,
			ID:      constants.ReminderPickTaskID,
			Trigger: Trigger{Daily: &DailyTrigger{Hour: pickMin / 60, Minute: pickMin % 60}},
			Title:   "Pick today's task",
			Body:    body,
		},
	}
}

func (p *Planner) planWrapUp(profile models.Profile, scheme models.ReminderScheme, entry *models.DailyEntry, quietMin int) []Op {
	cancel := []Op{{Kind: OpCancel, ID: constants.ReminderWrapUpID}}

	incomplete := entry.IncompleteTasks()
	if !scheme.WrapUpEnabled || len(incomplete) == 0 {
		return cancel
	}
	wrapMin, err := utils.ParseTimeToMinutes(scheme.WrapUpTime)
	if err != nil || wrapMin >= quietMin {
		return cancel
	}
	// Anti-spam: a wrap-up landing within an hour of an incomplete task's own
	// nudge would nag twice about the same obligation.
	for _, task := range incomplete {
		if task.ScheduledTime == "" {
			continue
		}
		taskMin, err := utils.ParseTimeToMinutes(task.ScheduledTime)
		if err != nil {
			continue
		}
		diff := wrapMin - taskMin
		if diff < 0 {
			diff = -diff
		}
		if diff < constants.WrapUpWindowMin {
			return cancel
		}
	}
	body := pickMessage(p.Rand, wrapUpNamed, wrapUpAnon, messageVars{Name: profile.Name, Time: scheme.WrapUpTime})
	return []Op{
		{Kind: OpCancel, ID: constants.ReminderWrapUpID},
		{
			Kind:    OpSchedule,
			ID:      constants.ReminderWrapUpID,
			Trigger: Trigger{Daily: &DailyTrigger{Hour: wrapMin / 60, Minute: wrapMin % 60}},
			Title:   "Wrap up your day",
			Body:    body,
		},
	}
}

// Reconcile applies the planned operations to the service. Cancellations are
// always attempted, with failures swallowed, since canceling a missing id is
// harmless. Scheduling is skipped entirely when permission is not granted.
func (p *Planner) Reconcile(svc Service, profile models.Profile, entry *models.DailyEntry, now time.Time) {
	granted := svc.PermissionStatus().Granted

	cancelStaleNudges(svc, entry)

	for _, op := range p.Plan(profile, entry, now) {
		switch op.Kind {
		case OpCancel:
			if err := svc.Cancel(op.ID); err != nil {
				logger.Debug("Reminder cancel failed", "id", op.ID, "error", err)
			}
		case OpSchedule:
			if !granted {
				continue
			}
			if err := svc.Schedule(op.ID, op.Trigger, op.Title, op.Body); err != nil {
				logger.Warn("Reminder schedule failed", "id", op.ID, "error", err)
			}
		}
	}
}

// cancelStaleNudges removes scheduled nudges for tasks that are not in today's
// entry. The plan only names today's task ids, so without this a one-shot
// whose fire window was slept through would sit in the service forever.
func cancelStaleNudges(svc Service, entry *models.DailyEntry) {
	lister, ok := svc.(NudgeLister)
	if !ok {
		return
	}
	live, err := lister.LiveNudgeIDs()
	if err != nil {
		logger.Debug("Could not enumerate live nudges", "error", err)
		return
	}
	keep := make(map[string]bool)
	if entry != nil {
		for _, task := range entry.Tasks {
			keep[nudgeID(task.ID)] = true
		}
	}
	for _, id := range live {
		if keep[id] {
			continue
		}
		if err := svc.Cancel(id); err != nil {
			logger.Debug("Reminder cancel failed", "id", id, "error", err)
		}
	}
}

func nudgeID(taskID string) string {
	return constants.ReminderNudgeIDPrefix + taskID
}
