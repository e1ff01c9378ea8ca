package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/models"
	"github.com/julianstephens/sober/internal/storage"
	"github.com/julianstephens/sober/internal/utils"
	"github.com/julianstephens/sober/internal/validation"
)

// errSkipped marks a check that does not apply to the current storage.
var errSkipped = errors.New("not applicable")

type DoctorCmd struct {
	Fix bool `help:"Rewrite the stored record when every problem found can be fixed by recomputing it."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}

	// Check 1: storage reachable
	dbReachable := false
	if err := checkStorageReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		ctx.Println("✓ Storage reachable: OK")
		dbReachable = true
	}

	// Check 2: schema version (SQL storage only)
	if !dbReachable {
		ctx.Println("⊘ Schema version: SKIPPED (storage not reachable)")
	} else if err := checkSchemaVersion(ctx); errors.Is(err, errSkipped) {
		ctx.Println("⊘ Schema version: SKIPPED (no schema for this storage)")
	} else if err != nil {
		fail("Schema version", err)
	} else {
		ctx.Println("✓ Schema version: OK")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); errors.Is(err, errSkipped) {
		ctx.Println("⊘ Backups present: SKIPPED (not a local file)")
	} else if err != nil {
		ctx.Println("⚠ Backups present: WARNING")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Println("✓ Backups present: OK")
	}

	// Check 4: stored record is consistent
	if !dbReachable {
		ctx.Println("⊘ Data validation: SKIPPED (storage not reachable)")
	} else if err := cmd.checkValidation(ctx); err != nil {
		fail("Data validation", err)
	} else {
		ctx.Println("✓ Data validation: OK")
	}

	// Check 5: clock and timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.Println("✓ Clock/timezone: OK")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, _, err := ctx.Store.Get(constants.StorageKey); err != nil {
		return fmt.Errorf("failed to read from storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return errSkipped
	}

	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("database is at version %d but version %d is available - run 'sober migrate'", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return errSkipped
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'sober backup create'")
	}
	return nil
}

// checkValidation inspects the record as stored, before the engine's
// load-time repair.
func (cmd *DoctorCmd) checkValidation(ctx *cli.Context) error {
	raw, found, err := ctx.Store.Get(constants.StorageKey)
	if err != nil {
		return err
	}
	if !found || strings.TrimSpace(raw) == "" {
		return nil
	}

	var stored models.SobrietyData
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return fmt.Errorf("stored data is corrupted: %w", err)
	}

	loc := time.Local
	now := time.Now()
	if ctx.Engine != nil {
		loc = ctx.Engine.Location()
		now = ctx.Engine.Now()
	}

	result := validation.New(loc).Validate(stored, now)
	if !result.HasConflicts() {
		return nil
	}
	ctx.Print(result.FormatReport())

	if !cmd.Fix {
		if result.Fixable() {
			return fmt.Errorf("%d problem(s) found - run 'sober doctor --fix' to repair", len(result.Conflicts))
		}
		return fmt.Errorf("%d problem(s) found", len(result.Conflicts))
	}
	if !result.Fixable() {
		return fmt.Errorf("%d problem(s) found that --fix cannot repair", len(result.Conflicts))
	}
	if ctx.Engine == nil {
		return fmt.Errorf("cannot repair: storage not loaded")
	}
	if _, err := ctx.Engine.Refresh(); err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}
	ctx.Printf("   Repaired %d problem(s).\n", len(result.Conflicts))
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil {
		if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
			return err
		}
	}
	return nil
}
