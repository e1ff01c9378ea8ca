package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/cli/backups"
	"github.com/julianstephens/sober/internal/cli/data"
	"github.com/julianstephens/sober/internal/cli/system"
	"github.com/julianstephens/sober/internal/cli/tracking"
	"github.com/julianstephens/sober/internal/config"
	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/errors"
	"github.com/julianstephens/sober/internal/keyring"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/storage"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." type:"path" default:"${config_file}"`
	Storage  string `help:"Storage target: SQLite path, .json file, PostgreSQL connection string or 'keyring'. Overrides the config file." env:"SOBER_STORAGE"`
	Timezone string `help:"IANA timezone used to decide calendar days. Overrides the config file."`
	Debug    bool   `help:"Enable debug logging."`

	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Init     system.InitCmd       `cmd:"" help:"Initialize sober storage and config."`
	Status   tracking.StatusCmd   `cmd:"" help:"Show the current streak."`
	Confirm  tracking.ConfirmCmd  `cmd:"" help:"Confirm today as a sober day."`
	Cancel   tracking.CancelCmd   `cmd:"" help:"Cancel today's confirmation."`
	Toggle   tracking.ToggleCmd   `cmd:"" help:"Mark or unmark a past day."`
	Calendar tracking.CalendarCmd `cmd:"" help:"Show a month of confirmed days."`
	Reset    tracking.ResetCmd    `cmd:"" help:"Reset the streak and start over."`
	Export   data.ExportCmd       `cmd:"" help:"Export sobriety data."`
	Import   data.ImportCmd       `cmd:"" help:"Import sobriety data from an export."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable."`
	} `cmd:"" help:"Manage PostgreSQL credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track sober days and keep your streak"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"export_file": constants.ExportFileName,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Storage != "" {
		cfg.Storage = CLI.Storage
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: filepath.Dir(cfg.Path),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{Config: cfg}

	command := ctx.Command()
	name := strings.Fields(command)[0]
	if name == "keyring" {
		errors.Fatal(ctx.Run(appCtx))
		return
	}

	target, err := keyring.ResolveTarget(cfg.Storage)
	if err != nil {
		errors.Fatal(err)
	}
	var opts []storage.Option
	if cfg.Storage == keyring.KeyringTarget {
		opts = append(opts, storage.WithTrustedCredentials())
	}

	// init manages the store's lifecycle itself.
	var store storage.Provider
	if name == "init" {
		store, err = storage.New(target, opts...)
	} else {
		store, err = storage.Open(target, opts...)
	}
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()
	appCtx.Store = store

	if name != "init" {
		engine := streak.New(store, streak.WithLocation(loc))
		if err := engine.Load(); err != nil {
			// doctor and backup restore exist to recover from a bad record.
			if name != "doctor" && !strings.HasPrefix(command, "backup restore") {
				errors.Fatal(err)
			}
			logger.Warn("Continuing with unreadable sobriety data", "command", command, "error", err)
		}
		appCtx.Engine = engine
	}

	logger.Debug("Running command", "command", command, "storage", store.GetConfigPath())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
