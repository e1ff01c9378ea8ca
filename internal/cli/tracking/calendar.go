package tracking

import (
	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/utils"
)

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month." short:"m"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	loc := ctx.Engine.Location()
	now := ctx.Engine.Now()

	month := now.In(loc)
	if c.Month != "" {
		m, err := utils.ParseMonthInLocation(c.Month, loc)
		if err != nil {
			return err
		}
		month = m
	}

	first := ctx.WeekStart()
	weeks := streak.MonthGrid(ctx.Engine.State().History, month, now, loc, first)
	return cli.RenderMonth(ctx.Writer(), month, weeks, first)
}
