package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/models"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type InitCmd struct {
	Force bool   `help:"Re-run onboarding even if a profile already exists."`
	Name  string `help:"Display name. Skips the interactive prompt when set."`
	Yes   bool   `short:"y" help:"Accept defaults without prompting."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.OnboardingComplete && !c.Force {
		fmt.Printf("Already initialized at: %s\n", ctx.Store.GetConfigPath())
		fmt.Println("Use --force to run onboarding again.")
		return nil
	}

	name := c.Name
	pickTaskTime := profile.Reminders.PickTaskTime
	remindersOn := true

	if !c.Yes && name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("What should I call you?").
					Description("Used in reminder messages. Leave blank to stay anonymous.").
					Value(&name),
				huh.NewInput().
					Title("Morning reminder time").
					Description("When to nudge you to pick your task (HH:MM).").
					Value(&pickTaskTime).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return nil
						}
						if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
							return fmt.Errorf("use HH:MM, e.g. 09:00")
						}
						return nil
					}),
				huh.NewConfirm().
					Title("Enable reminders?").
					Value(&remindersOn),
			),
		).WithTheme(huh.ThemeDracula())

		if err := form.Run(); err != nil {
			return fmt.Errorf("onboarding canceled: %w", err)
		}
	}

	profile.Name = strings.TrimSpace(name)
	if strings.TrimSpace(pickTaskTime) != "" {
		profile.Reminders.PickTaskTime = strings.TrimSpace(pickTaskTime)
	}
	profile.Reminders = models.MigrateReminderScheme(profile.Reminders)
	profile.Reminders.PickTaskEnabled = remindersOn
	profile.Reminders.WrapUpEnabled = remindersOn
	profile.OnboardingComplete = true

	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Initialized storage at: %s\n", ctx.Store.GetConfigPath())
	if profile.Name != "" {
		fmt.Printf("Welcome, %s. Run 'otf task add' to pick your one thing.\n", profile.Name)
	} else {
		fmt.Println("Run 'otf task add' to pick your one thing.")
	}
	return nil
}
