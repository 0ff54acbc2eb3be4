package system

import (
	"fmt"
	"time"

	"github.com/Kanishkaanand/One-Thing-Focus/internal/cli"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/constants"
	"github.com/Kanishkaanand/One-Thing-Focus/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: storage reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storeReachable = true
	}

	// Check 2: profile valid (only if storage is reachable)
	if storeReachable {
		if err := checkProfile(ctx); err != nil {
			fmt.Printf("❌ Profile: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Profile: OK\n")
		}
	} else {
		fmt.Printf("⊘ Profile: SKIPPED (storage not reachable)\n")
	}

	// Check 3: entry integrity (only if storage is reachable)
	if storeReachable {
		if err := checkEntries(ctx); err != nil {
			fmt.Printf("❌ Entry integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Entry integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Entry integrity: SKIPPED (storage not reachable)\n")
	}

	// Check 4: scheduled reminders valid (only if storage is reachable)
	if storeReachable {
		if err := checkReminders(ctx); err != nil {
			fmt.Printf("❌ Scheduled reminders: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Scheduled reminders: OK\n")
		}
	} else {
		fmt.Printf("⊘ Scheduled reminders: SKIPPED (storage not reachable)\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: notification service reachable (warning only)
	if ctx.Notifier.Available() {
		fmt.Printf("✓ Notification service: OK\n")
	} else {
		fmt.Printf("⚠ Notification service: WARNING\n")
		fmt.Printf("   Tray app not running. Reminders will not be delivered.\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("profile invalid: %w", err)
	}
	return nil
}

func checkEntries(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	for date, entry := range entries {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return fmt.Errorf("entry has invalid date key %q", date)
		}
		if entry.Date != date {
			return fmt.Errorf("entry for %s carries mismatched date %s", date, entry.Date)
		}
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry for %s invalid: %w", date, err)
		}
	}
	return nil
}

func checkReminders(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	seen := make(map[string]bool)
	for _, r := range reminders {
		if seen[r.ID] {
			return fmt.Errorf("duplicate reminder ID found: %s", r.ID)
		}
		seen[r.ID] = true
		if err := r.Validate(); err != nil {
			return fmt.Errorf("reminder %s invalid: %w", r.ID, err)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		// Covered by the storage check; do not double-report here.
		return nil
	}
	if !utils.ValidateTimezone(profile.Timezone) {
		return fmt.Errorf("profile timezone %q is not a recognized IANA name", profile.Timezone)
	}
	return nil
}
