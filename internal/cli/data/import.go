package data

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/transfer"
)

type ImportCmd struct {
	File string `arg:"" help:"Export file to import, or - for stdin."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	raw, err := c.read(ctx)
	if err != nil {
		return err
	}

	// Reject a bad file before asking or backing anything up.
	incoming, err := streak.ParsePayload(string(raw))
	if err != nil {
		logger.Warn("Rejected import file", "file", c.File, "error", err)
		return fmt.Errorf("import failed: %w", err)
	}

	if !c.Yes {
		days := len(ctx.Engine.State().History)
		ok, err := cli.Confirm(
			"Replace your current data?",
			fmt.Sprintf("Importing replaces all %d confirmed day(s) with the %d day(s) in %s.", days, len(incoming.History), c.File),
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	backupPath := ctx.PerformAutomaticBackup("import")
	if err := ctx.Engine.Import(string(raw)); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	data := ctx.Engine.State()
	ctx.Printf("✓ Imported %d confirmed day(s). %s\n", len(data.History), streak.Headline(data.Streak))
	if backupPath != "" {
		ctx.Printf("  Previous data saved to backup: %s\n", filepath.Base(backupPath))
	}
	return nil
}

// read decodes the file, prompting for a passphrase if it is encrypted.
// Stdin cannot double as the prompt, so encrypted input must come from a file.
func (c *ImportCmd) read(ctx *cli.Context) ([]byte, error) {
	if c.File == "-" {
		data, err := io.ReadAll(ctx.Input())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return transfer.Decode(data, nil)
	}
	return transfer.ReadFile(c.File, promptPassphrase(ctx, false))
}
