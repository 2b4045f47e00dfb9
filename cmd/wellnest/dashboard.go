package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/client"
	"wellnest/tracker-api/internal/config"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

var watchInterval time.Duration

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show this week's tracker dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedClient(cmd)
		if err != nil {
			return err
		}
		d, err := c.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		printDashboard(cmd.OutOrStdout(), d)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print the dashboard whenever it refreshes (Ctrl-C to stop)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedClient(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		w := client.NewWatcher(c.Dashboard, resolveInterval(cmd))
		w.OnUpdate = func(d *service.Dashboard) {
			fmt.Fprintf(out, "\n--- %s ---\n", d.GeneratedAt.Format(time.RFC1123))
			printDashboard(out, d)
		}
		w.OnError = func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %v\n", err)
		}
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Refresh interval (default: tracker.refresh_interval, 30s)")
	rootCmd.AddCommand(dashboardCmd, watchCmd)
}

// resolveInterval prefers --interval, then tracker.refresh_interval from
// config.yaml or TRACKER_REFRESH_INTERVAL.
func resolveInterval(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("interval") && watchInterval > 0 {
		return watchInterval
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return 0
	}
	return cfg.Tracker.RefreshInterval
}

func printDashboard(out io.Writer, d *service.Dashboard) {
	fmt.Fprintf(out, "Week (%s)      %s\n", d.Timezone, strings.Join(d.Labels[:], "  "))
	printSeries(out, "Water glasses", d.Water.WeeklyGlasses)
	printSeries(out, "Water % goal ", d.Water.WeeklyPercent)
	printSeries(out, "Workout min  ", d.Workouts.WeeklyMinutes)
	printSeries(out, "Workout kcal ", d.Workouts.WeeklyCalories)
	printSeries(out, "Sleep hours  ", d.Sleep.WeeklyHours)
	printSeries(out, "Meal kcal    ", d.Meals.WeeklyCalories)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Today: water %.0f/%.0f glasses (%d%%) | workout %.0f min, %.0f kcal, %d sessions\n",
		d.Water.TodayGlasses, d.Water.GoalGlasses, d.Water.TodayPercent,
		d.Workouts.TodayMinutes, d.Workouts.TodayCalories, d.Workouts.TodaySessions)
	fmt.Fprintf(out, "Meals: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n",
		d.Meals.TodayCalories, d.Meals.TodayProtein, d.Meals.TodayCarbs, d.Meals.TodayFats)
	for _, t := range domain.MealTypes {
		if m, ok := d.Meals.TodayByType[t]; ok {
			fmt.Fprintf(out, "  %-9s %d kcal\n", t, m.Calories)
		}
	}
	if d.Sleep.Latest != nil {
		fmt.Fprintf(out, "Sleep: last %.1f h, average %.1f h\n", d.Sleep.Latest.DurationHours, d.Sleep.AverageHours)
	}
	for _, g := range d.Goals {
		fmt.Fprintf(out, "Goal %-9s %.1f/%.1f %s (%d%%)\n", g.Type, g.Actual, g.Target, g.Unit, g.Percent)
	}
}

func printSeries(out io.Writer, label string, s aggregate.WeeklySeries) {
	fmt.Fprintf(out, "%s ", label)
	for _, v := range s {
		fmt.Fprintf(out, "%5.0f", v)
	}
	fmt.Fprintf(out, "   total %.0f\n", s.Total())
}
