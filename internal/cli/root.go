package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sober/internal/backup"
	"github.com/julianstephens/sober/internal/config"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/storage"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/utils"
)

// Confirm asks a yes/no question before a destructive action. Tests swap
// it out.
var Confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Context is handed to every command's Run method. Engine is nil for
// commands that run before storage is opened (init, keyring).
type Context struct {
	Engine *streak.Engine
	Store  storage.Provider
	Config *config.Config
	In     *os.File
	Out    io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() *os.File {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Print writes to the command output.
func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.out(), args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Writer returns the command output.
func (c *Context) Writer() io.Writer { return c.out() }

// Input returns the command input.
func (c *Context) Input() *os.File { return c.in() }

// WeekStart returns the configured first day of the week.
func (c *Context) WeekStart() time.Weekday {
	if c.Config == nil {
		return time.Monday
	}
	wd, err := utils.ParseWeekday(c.Config.WeekStart)
	if err != nil {
		return time.Monday
	}
	return wd
}

// BackupManager returns a backup manager when the store is a single local
// file, and false for server-backed stores.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	fb, ok := c.Store.(storage.FileBacked)
	if !ok {
		return nil, false
	}
	return backup.NewManager(fb.FilePath()), true
}

// PerformAutomaticBackup creates a backup before a destructive change and
// silently handles errors. It is a no-op when auto_backup is off or the
// store is not file-backed.
func (c *Context) PerformAutomaticBackup(reason string) string {
	if c.Config != nil && !c.Config.AutoBackup {
		return ""
	}
	mgr, ok := c.BackupManager()
	if !ok {
		logger.Debug("Skipping automatic backup for non-file storage", "reason", reason)
		return ""
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "reason", reason, "error", err)
		return ""
	}
	logger.Info("Automatic backup created", "reason", reason, "path", path)
	return path
}
