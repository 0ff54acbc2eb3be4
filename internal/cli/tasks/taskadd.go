package tasks

import (
	"fmt"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type TaskAddCmd struct {
	Text string `arg:"" help:"What you will do today."`
	At   string `short:"a" help:"Optional focus time (HH:MM) for a one-shot nudge."`
}

func (c *TaskAddCmd) Validate() error {
	if c.At != "" && !utils.ValidateTimeFormat(c.At) {
		return fmt.Errorf("invalid time format (expected HH:MM): %s", c.At)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	task, err := ctx.App.AddTask(c.Text, c.At)
	if err != nil {
		return err
	}

	fmt.Printf("Added: %s\n", task.Text)
	if task.ScheduledTime != "" {
		fmt.Printf("Focus nudge at %s.\n", task.ScheduledTime)
	}
	return nil
}
