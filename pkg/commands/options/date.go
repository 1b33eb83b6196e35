package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/contentcal/pkg/entity"
	"tableflip.dev/contentcal/pkg/timeutil"
)

const (
	layoutISO      = "2006-01-02"
	layoutISOShort = "1/2"
	layoutMonth    = "2006-01"
)

// ParseDate reads "2006-01-02" or the short "1/2" form. A short date that has
// already passed this year is taken to mean next year.
func ParseDate(v string, today entity.Date) (entity.Date, error) {
	if v == "" {
		return entity.Date{}, nil
	}
	if d, err := entity.ParseDate(v); err == nil {
		return d, nil
	}
	t, err := time.Parse(layoutISOShort, v)
	if err != nil {
		return entity.Date{}, fmt.Errorf("invalid date %q, expected %s or %s", v, layoutISO, layoutISOShort)
	}
	d := entity.NewDate(today.Year(), t.Month(), t.Day())
	if d.Before(today) {
		d = entity.NewDate(today.Year()+1, t.Month(), t.Day())
	}
	return d, nil
}

// MonthOptions selects the month to show.
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show, example: --month="2024-06". Defaults to this month.`)
}

// Anchor returns the first of the selected month, or today.
func (o *MonthOptions) Anchor(today entity.Date) (entity.Date, error) {
	if o.Month == "" {
		return today, nil
	}
	t, err := time.Parse(layoutMonth, o.Month)
	if err != nil {
		return entity.Date{}, fmt.Errorf("invalid month %q, expected YYYY-MM", o.Month)
	}
	return entity.DateOf(t), nil
}

// WindowOptions bounds an agenda.
type WindowOptions struct {
	Since string
	Until string
	Next  string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		"First day to include. Defaults to today.")
	cmd.Flags().StringVar(&o.Until, "until", "",
		"Last day to include. Defaults to a week after since.")
	cmd.Flags().StringVar(&o.Next, "next", "",
		`Span to include instead of --until, example: --next=2w or --next=1w3d.`)
}

func (o *WindowOptions) Window(today entity.Date) (since, until entity.Date, err error) {
	if since, err = ParseDate(o.Since, today); err != nil {
		return
	}
	if until, err = ParseDate(o.Until, today); err != nil || o.Next == "" {
		return
	}
	if o.Until != "" {
		return since, until, fmt.Errorf("--until and --next can not be combined")
	}
	days, _, err := timeutil.ParseSpan(o.Next)
	if err != nil {
		return since, until, err
	}
	if since.IsZero() {
		since = today
	}
	return since, since.AddDays(days - 1), nil
}
