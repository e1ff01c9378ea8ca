package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/config"
	"github.com/julianstephens/sober/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Start over: back up and delete existing local storage and overwrite the config file."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.resetStorage(ctx); err != nil {
			return err
		}
	}

	if ctx.Store.Exists() {
		if err := ctx.Store.Load(); err != nil {
			return err
		}
		ctx.Printf("Storage already initialized at: %s\n", ctx.Store.GetConfigPath())
	} else {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		ctx.Printf("Initialized sober storage at: %s\n", ctx.Store.GetConfigPath())
	}

	if ctx.Config == nil || ctx.Config.Path == "" {
		return nil
	}
	if _, err := os.Stat(ctx.Config.Path); err == nil && !c.Force {
		ctx.Printf("Config file kept at: %s\n", ctx.Config.Path)
		return nil
	}
	if err := config.Init(ctx.Config.Path, ctx.Config, c.Force); err != nil {
		return err
	}
	ctx.Printf("Config written to: %s\n", ctx.Config.Path)
	return nil
}

// resetStorage removes a local store so Init starts from scratch. Server
// stores are left alone; their schema setup is idempotent.
func (c *InitCmd) resetStorage(ctx *cli.Context) error {
	fb, ok := ctx.Store.(storage.FileBacked)
	if !ok {
		ctx.Println("--force does not delete PostgreSQL data; use 'sober reset' to clear the streak.")
		return nil
	}

	path := fb.FilePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		// Some other error occurred while checking the database; surface it to the user
		return fmt.Errorf("failed to access existing storage: %w", err)
	}

	if backupPath := ctx.PerformAutomaticBackup("init --force"); backupPath != "" {
		ctx.Printf("Backed up existing storage to: %s\n", backupPath)
	}
	// Close first to prevent file locking issues
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing storage: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing storage: %w", err)
	}
	ctx.Printf("Deleted existing storage at: %s\n", path)
	return nil
}
