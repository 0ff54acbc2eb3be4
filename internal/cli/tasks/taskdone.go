package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type TaskDoneCmd struct {
	Task string `arg:"" optional:"" help:"Task id or text prefix (defaults to the only open task)."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	id, err := resolveTaskID(ctx, c.Task)
	if err != nil {
		return err
	}

	before, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	profile, err := ctx.App.CompleteTask(id)
	if err != nil {
		return err
	}

	fmt.Println("Done.")
	if profile.CurrentLevel > before.CurrentLevel {
		fmt.Printf("Level up! You're now level %d: up to %d tasks per day.\n",
			profile.CurrentLevel, profile.CurrentLevel)
	} else if profile.CurrentLevelStreak > before.CurrentLevelStreak {
		fmt.Printf("Streak: %d day(s).\n", profile.CurrentLevelStreak)
	}
	return nil
}

// resolveTaskID maps an id, a text prefix, or (for a single open task) nothing
// at all onto a task id in today's entry.
func resolveTaskID(ctx *cli.Context, ref string) (string, error) {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}
	now, err := utils.NowInTimezone(profile.Timezone)
	if err != nil {
		now = time.Now()
	}
	entry, err := ctx.Store.GetEntry(utils.DateString(now))
	if err != nil {
		return "", fmt.Errorf("no tasks added today")
	}

	if ref == "" {
		open := entry.IncompleteTasks()
		if len(open) == 1 {
			return open[0].ID, nil
		}
		return "", fmt.Errorf("%d open tasks, specify which one", len(open))
	}

	for _, task := range entry.Tasks {
		if task.ID == ref || strings.HasPrefix(strings.ToLower(task.Text), strings.ToLower(ref)) {
			return task.ID, nil
		}
	}
	return "", fmt.Errorf("task not found: %s", ref)
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
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
	entry, err := ctx.Store.GetEntry(utils.DateString(now))
	if err != nil {
		fmt.Printf("No tasks yet today. Level %d allows %d task(s).\n",
			profile.CurrentLevel, profile.CurrentLevel)
		return nil
	}

	for _, task := range entry.Tasks {
		mark := "[ ]"
		if task.IsCompleted {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s  (%s)", mark, task.Text, shortID(task.ID))
		if task.ScheduledTime != "" {
			line += fmt.Sprintf("  @%s", task.ScheduledTime)
		}
		fmt.Println(line)
	}
	if len(entry.Tasks) < entry.LevelAtTime {
		fmt.Printf("%d of %d tasks used today.\n", len(entry.Tasks), entry.LevelAtTime)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
