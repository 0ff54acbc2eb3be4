package cli

import (
	"fmt"
	"strings"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
)

type ReflectCmd struct {
	Mood string `arg:"" help:"How the day felt (great|good|okay|hard|rough)."`
	Note string `arg:"" optional:"" help:"Optional note."`
}

func (c *ReflectCmd) Run(ctx *Context) error {
	if err := ctx.App.AddReflection(strings.ToLower(c.Mood), c.Note); err != nil {
		return err
	}
	fmt.Println("Reflection saved. See you tomorrow.")
	return nil
}

type ProfileCmd struct{}

func (c *ProfileCmd) Run(ctx *Context) error {
	if err := ctx.App.Sync(); err != nil {
		return err
	}
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	name := profile.Name
	if name == "" {
		name = "(not set)"
	}
	fmt.Printf("Name:                  %s\n", name)
	fmt.Printf("Level:                 %d (max %d tasks/day)\n", profile.CurrentLevel, profile.CurrentLevel)
	fmt.Printf("Current streak:        %d\n", profile.CurrentLevelStreak)
	fmt.Printf("Longest streak:        %d\n", profile.LongestStreak)
	fmt.Printf("Tasks completed:       %d\n", profile.TotalTasksCompleted)
	fmt.Printf("Days to next level:    %s\n", daysToNextLevel(profile.CurrentLevel, profile.CurrentLevelStreak))
	return nil
}

func daysToNextLevel(level, streak int) string {
	if level >= constants.MaxLevel {
		return "at max level"
	}
	return fmt.Sprintf("%d", constants.LevelUpStreak-streak)
}
