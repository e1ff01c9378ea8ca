package tracking

import (
	"github.com/julianstephens/sober/internal/cli"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	return cli.RenderStatus(ctx.Writer(), cli.Status{
		Data:           ctx.Engine.State(),
		ConfirmedToday: ctx.Engine.IsConfirmedToday(),
		Now:            ctx.Engine.Now(),
		Location:       ctx.Engine.Location(),
		WeekStart:      ctx.WeekStart(),
	})
}
