package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, default today)."`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.App.Sync(); err != nil {
		return err
	}
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}

	date := c.Date
	if date == "" {
		now, err := utils.NowInTimezone(profile.Timezone)
		if err != nil {
			now = time.Now()
		}
		date = utils.DateString(now)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("One Thing · %s", date)))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("Level %d · streak %d · longest %d · %d tasks completed all-time",
		profile.CurrentLevel, profile.CurrentLevelStreak, profile.LongestStreak, profile.TotalTasksCompleted)))
	b.WriteString("\n\n")

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		b.WriteString("No tasks yet. Pick your one thing: otf task add \"...\"\n")
		fmt.Print(b.String())
		return nil
	}

	for _, task := range entry.Tasks {
		mark := pendingStyle.Render("[ ]")
		if task.IsCompleted {
			mark = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", mark, task.Text)
		if task.ScheduledTime != "" {
			line += statStyle.Render(fmt.Sprintf("  @%s", task.ScheduledTime))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if entry.Completed {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("Day complete."))
		b.WriteString("\n")
		if entry.Reflection != nil {
			b.WriteString(statStyle.Render(fmt.Sprintf("Reflection: %s", entry.Reflection.Mood)))
			if entry.Reflection.Note != "" {
				b.WriteString(statStyle.Render(fmt.Sprintf(" · %s", entry.Reflection.Note)))
			}
			b.WriteString("\n")
		}
	}

	fmt.Print(b.String())
	return nil
}
