package system

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

// NotifyCmd is invoked from a minute cron job. It delivers whatever reminders
// are due and exits; all scheduling decisions happen elsewhere.
type NotifyCmd struct {
	DryRun bool `help:"Print due reminders to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.App.Sync(); err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	now, err := utils.NowInTimezone(profile.Timezone)
	if err != nil {
		now = time.Now()
	}

	reminders, err := ctx.Store.GetReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	for _, r := range reminders {
		if !r.IsDue(now) {
			continue
		}

		if c.DryRun {
			fmt.Printf("[DryRun] %s: %s\n", r.Title, r.Body)
		} else {
			if err := ctx.Notifier.Notify(r.Title, r.Body); err != nil {
				logger.Warn("failed to deliver reminder", "id", r.ID, "error", err)
				continue
			}
		}

		if err := markDelivered(ctx, r, now); err != nil {
			logger.Warn("failed to record delivery", "id", r.ID, "error", err)
		}
	}

	return nil
}

// One-shot reminders are removed once delivered. Daily reminders record the
// delivery so they fire at most once per day.
func markDelivered(ctx *cli.Context, r models.ScheduledReminder, now time.Time) error {
	if r.Kind == models.TriggerOnce {
		return ctx.Store.DeleteReminder(r.ID)
	}
	sent := now
	r.LastSent = &sent
	return ctx.Store.UpsertReminder(r)
}
