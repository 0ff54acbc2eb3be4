package settings

import (
	"fmt"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Name     *string `help:"Display name used in reminder messages."`
	Timezone *string `help:"IANA timezone name, or 'Local'."`

	PickTaskEnabled *bool   `help:"Enable or disable the morning pick-task reminder."`
	PickTaskTime    *string `help:"Time for the pick-task reminder (HH:MM)."`
	WrapUpEnabled   *bool   `help:"Enable or disable the evening wrap-up reminder."`
	WrapUpTime      *string `help:"Time for the wrap-up reminder (HH:MM)."`
}

func (c *SettingsCmd) Validate() error {
	if c.PickTaskTime != nil && !utils.ValidateTimeFormat(*c.PickTaskTime) {
		return fmt.Errorf("invalid --pick-task-time %q (expected HH:MM)", *c.PickTaskTime)
	}
	if c.WrapUpTime != nil && !utils.ValidateTimeFormat(*c.WrapUpTime) {
		return fmt.Errorf("invalid --wrap-up-time %q (expected HH:MM)", *c.WrapUpTime)
	}
	if c.Timezone != nil && !utils.ValidateTimezone(*c.Timezone) {
		return fmt.Errorf("invalid --timezone %q", *c.Timezone)
	}
	return nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Name:              %s\n", displayName(profile.Name))
		fmt.Printf("  Timezone:          %s\n", profile.Timezone)
		fmt.Println("\nReminders:")
		fmt.Printf("  Pick-Task Enabled: %v\n", profile.Reminders.PickTaskEnabled)
		fmt.Printf("  Pick-Task Time:    %s\n", profile.Reminders.PickTaskTime)
		fmt.Printf("  Wrap-Up Enabled:   %v\n", profile.Reminders.WrapUpEnabled)
		fmt.Printf("  Wrap-Up Time:      %s\n", profile.Reminders.WrapUpTime)
		return nil
	}

	updated := false

	if c.Name != nil {
		if err := ctx.App.SetName(*c.Name); err != nil {
			return fmt.Errorf("failed to update name: %w", err)
		}
		updated = true
	}
	if c.Timezone != nil {
		profile.Timezone = *c.Timezone
		if err := ctx.Store.SaveProfile(profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		updated = true
	}

	scheme := profile.Reminders
	schemeChanged := false
	if c.PickTaskEnabled != nil {
		scheme.PickTaskEnabled = *c.PickTaskEnabled
		schemeChanged = true
	}
	if c.PickTaskTime != nil {
		scheme.PickTaskTime = *c.PickTaskTime
		schemeChanged = true
	}
	if c.WrapUpEnabled != nil {
		scheme.WrapUpEnabled = *c.WrapUpEnabled
		schemeChanged = true
	}
	if c.WrapUpTime != nil {
		scheme.WrapUpTime = *c.WrapUpTime
		schemeChanged = true
	}
	if schemeChanged {
		if err := ctx.App.SetReminders(scheme); err != nil {
			return fmt.Errorf("failed to update reminders: %w", err)
		}
		updated = true
	}

	if updated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func displayName(name string) string {
	if name == "" {
		return "(not set)"
	}
	return name
}
