package cli

import (
	"first20_backend/internal/planner"
	"first20_backend/internal/util"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect generated practice plans",
	}
	cmd.AddCommand(newPlanPreviewCmd())
	return cmd
}

func newPlanPreviewCmd() *cobra.Command {
	var (
		name    string
		daily   int
		target  int
		startOn string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the plan a skill would get, without touching the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now().UTC()
			if startOn != "" {
				d, err := util.ParseDate(startOn)
				if err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
				start = d
			}

			days, err := planner.Generate(name, daily, target)
			if err != nil {
				return err
			}

			total := 0
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DAY\tDATE\tMINUTES\tFOCUS")
			for _, d := range days {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
					d.DayNumber,
					planner.ScheduledDate(start, d.DayNumber).Format(util.DateFormat),
					d.DurationMinutes,
					d.FocusTopic,
				)
				total += d.DurationMinutes
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d days, %d minutes total\n", len(days), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "skill name")
	cmd.Flags().IntVar(&daily, "daily-minutes", 60, "minutes of practice per day")
	cmd.Flags().IntVar(&target, "target-minutes", util.TargetMinutes, "total practice minutes")
	cmd.Flags().StringVar(&startOn, "start", "", "first day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
