package data

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/transfer"
)

// promptPassphrase is replaced in tests.
var promptPassphrase = func(ctx *cli.Context, confirm bool) transfer.PassphraseFunc {
	return transfer.PromptPassphrase(ctx.Input(), os.Stderr, confirm)
}

type ExportCmd struct {
	Output   string `help:"File to write. Plain exports default to stdout, compressed or encrypted ones to ${export_file}." short:"o" type:"path"`
	Compress bool   `help:"Compress the export with zstd."`
	Encrypt  bool   `help:"Encrypt the export with a passphrase."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	payload, err := ctx.Engine.ExportData()
	if err != nil {
		return err
	}

	opts := transfer.Options{
		Compress: c.Compress || (ctx.Config != nil && ctx.Config.Export.Compress),
	}
	if c.Encrypt {
		pass, err := promptPassphrase(ctx, true)()
		if err != nil {
			return err
		}
		opts.Passphrase = pass
	}

	output := c.Output
	binary := opts.Compress || opts.Passphrase != ""
	if output == "" && binary {
		output = defaultFileName(opts)
	}
	if output == "" || output == "-" {
		if binary {
			return fmt.Errorf("refusing to write a compressed or encrypted export to the terminal, use --output")
		}
		_, err := io.WriteString(ctx.Writer(), payload+"\n")
		return err
	}

	if err := transfer.WriteFile(output, []byte(payload), opts); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ctx.Printf("✓ Exported %d confirmed day(s) to %s\n", len(ctx.Engine.State().History), output)
	return nil
}

func defaultFileName(opts transfer.Options) string {
	name := constants.ExportFileName
	if opts.Compress {
		name += ".zst"
	}
	if opts.Passphrase != "" {
		name += ".age"
	}
	return name
}
