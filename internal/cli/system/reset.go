package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
)

type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset all data?").
			Description("This deletes your profile, history, and scheduled reminders.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset canceled.")
			return nil
		}
	}

	if err := ctx.App.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println("All data reset. Run 'otf init' to start over.")
	return nil
}
