package tracking

import (
	"fmt"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/streak"
	"github.com/julianstephens/sober/internal/utils"
)

// ConfirmCmd marks today as a sober day.
type ConfirmCmd struct{}

func (c *ConfirmCmd) Run(ctx *cli.Context) error {
	if ctx.Engine.IsConfirmedToday() {
		ctx.Println("Today is already confirmed.")
		return nil
	}
	data, err := ctx.Engine.ConfirmDay()
	if err != nil {
		return fmt.Errorf("failed to confirm today: %w", err)
	}
	ctx.Printf("✓ Today confirmed. %s\n", streak.Headline(data.Streak))
	return nil
}

// CancelCmd removes today's confirmation.
type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	wasConfirmed := ctx.Engine.IsConfirmedToday()
	data, err := ctx.Engine.CancelConfirmation()
	if err != nil {
		return fmt.Errorf("failed to cancel confirmation: %w", err)
	}
	if !wasConfirmed {
		ctx.Println("Today was not confirmed.")
		return nil
	}
	ctx.Printf("✓ Today's confirmation cancelled. %s\n", streak.Headline(data.Streak))
	return nil
}

// ToggleCmd flips a single past or present day.
type ToggleCmd struct {
	Date string `arg:"" help:"Day to toggle (YYYY-MM-DD)."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	loc := ctx.Engine.Location()
	date, err := utils.ParseDateInLocation(c.Date, loc)
	if err != nil {
		return err
	}
	if date.After(ctx.Engine.Today()) {
		return fmt.Errorf("cannot toggle %s: date is in the future", date.Format(constants.DateFormat))
	}

	wasConfirmed := streak.Contains(ctx.Engine.State().History, date, loc)
	data, err := ctx.Engine.ToggleDate(date)
	if err != nil {
		return fmt.Errorf("failed to toggle %s: %w", c.Date, err)
	}

	if wasConfirmed {
		ctx.Printf("✓ %s unmarked. %s\n", date.Format(constants.DateFormat), streak.Headline(data.Streak))
	} else {
		ctx.Printf("✓ %s marked sober. %s\n", date.Format(constants.DateFormat), streak.Headline(data.Streak))
	}
	return nil
}
