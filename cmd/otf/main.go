package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/app"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli/settings"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli/system"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli/tasks"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/errors"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/logger"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/notifier"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/reminders"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .db suffix selects the SQLite backend." type:"string" default:"~/.config/otf/otf.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd   `cmd:"" help:"Set up your profile and reminders."`
	Day     cli.DayCmd       `cmd:"" help:"Show today's task and progress." default:"1"`
	Reflect cli.ReflectCmd   `cmd:"" help:"Record how today felt."`
	Profile cli.ProfileCmd   `cmd:"" help:"Show level, streak, and lifetime stats."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Reset   system.ResetCmd  `cmd:"" help:"Delete all data and start over."`
	Task    struct {
		Add  tasks.TaskAddCmd  `cmd:"" help:"Add today's task."`
		Done tasks.TaskDoneCmd `cmd:"" help:"Mark a task complete."`
		List tasks.TaskListCmd `cmd:"" help:"List today's tasks."`
	} `cmd:"" help:"Manage today's tasks."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage profile and reminder settings."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Deliver due reminders (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("One-thing-a-day focus tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)

	var store storage.Provider
	if strings.HasSuffix(configPath, ".db") {
		store = storage.NewSQLiteStore(configPath)
	} else {
		store = storage.NewJSONStore(configPath)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	trayClient := notifier.New()
	service := reminders.NewStoreService(store, trayClient)

	appCtx := &cli.Context{
		Store:    store,
		App:      app.New(store, service),
		Notifier: trayClient,
		Debug:    CLI.Debug,
	}

	// Init handles its own loading so onboarding can run against a fresh file.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
