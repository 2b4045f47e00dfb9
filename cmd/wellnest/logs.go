package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wellnest/tracker-api/internal/client"
	"wellnest/tracker-api/internal/domain"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List or delete tracker entries",
}

var logsListCmd = &cobra.Command{
	Use:   "list <water|sleep|workout|meal>",
	Short: "List entries newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedClient(cmd)
		if err != nil {
			return err
		}
		return withKind(args[0], kindOps{
			water:   func() error { return listLogs[domain.WaterLog](cmd, c, domain.KindWater, describeWater) },
			sleep:   func() error { return listLogs[domain.SleepLog](cmd, c, domain.KindSleep, describeSleep) },
			workout: func() error { return listLogs[domain.WorkoutLog](cmd, c, domain.KindWorkout, describeWorkout) },
			meal:    func() error { return listLogs[domain.MealLog](cmd, c, domain.KindMeal, describeMeal) },
		})
	},
}

var logsDeleteCmd = &cobra.Command{
	Use:   "delete <water|sleep|workout|meal> <number>",
	Short: "Delete the entry shown with <number> by `logs list`",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid entry number %q", args[1])
		}
		c, err := authedClient(cmd)
		if err != nil {
			return err
		}
		return withKind(args[0], kindOps{
			water:   func() error { return deleteLog[domain.WaterLog](cmd, c, domain.KindWater, n-1, describeWater) },
			sleep:   func() error { return deleteLog[domain.SleepLog](cmd, c, domain.KindSleep, n-1, describeSleep) },
			workout: func() error { return deleteLog[domain.WorkoutLog](cmd, c, domain.KindWorkout, n-1, describeWorkout) },
			meal:    func() error { return deleteLog[domain.MealLog](cmd, c, domain.KindMeal, n-1, describeMeal) },
		})
	},
}

func init() {
	logsCmd.AddCommand(logsListCmd, logsDeleteCmd)
	rootCmd.AddCommand(logsCmd)
}

type kindOps struct {
	water, sleep, workout, meal func() error
}

func withKind(name string, ops kindOps) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "water":
		return ops.water()
	case "sleep":
		return ops.sleep()
	case "workout", "workouts":
		return ops.workout()
	case "meal", "meals":
		return ops.meal()
	}
	return fmt.Errorf("unknown log kind %q (want water, sleep, workout or meal)", name)
}

func fetchList[E domain.Entry](ctx context.Context, c *client.Client, kind domain.Kind) (*client.LocalLogList[E], error) {
	entries, err := client.ListLogs[E](ctx, c, kind)
	if err != nil {
		return nil, err
	}
	return client.NewLocalLogList(entries), nil
}

func listLogs[E domain.Entry](cmd *cobra.Command, c *client.Client, kind domain.Kind, describe func(E) string) error {
	list, err := fetchList[E](cmd.Context(), c, kind)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if list.Len() == 0 {
		fmt.Fprintln(out, "No entries.")
		return nil
	}
	for i, e := range list.Entries() {
		printEntry(out, i+1, e, describe)
	}
	return nil
}

// deleteLog refetches the list so numbering matches the server's current
// order, then deletes remotely before dropping the local row.
func deleteLog[E domain.Entry](cmd *cobra.Command, c *client.Client, kind domain.Kind, index int, describe func(E) string) error {
	list, err := fetchList[E](cmd.Context(), c, kind)
	if err != nil {
		return err
	}
	removed, err := list.DeleteAt(cmd.Context(), c, index)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Deleted: ")
	printEntry(out, index+1, removed, describe)
	fmt.Fprintf(out, "%d entries left.\n", list.Len())
	return nil
}

func printEntry[E domain.Entry](out io.Writer, n int, e E, describe func(E) string) {
	when := "(no time)"
	if ts, ok := e.Meta().Time(); ok {
		when = ts.Local().Format(time.DateTime)
	}
	fmt.Fprintf(out, "%3d. %s  %s\n", n, when, describe(e))
}

func describeWater(w domain.WaterLog) string {
	return fmt.Sprintf("%.2f L + %.0f cups", w.Liters, w.Cups)
}

func describeSleep(s domain.SleepLog) string {
	if s.Notes != "" {
		return fmt.Sprintf("%.1f h  %s", s.DurationHours, s.Notes)
	}
	return fmt.Sprintf("%.1f h", s.DurationHours)
}

func describeWorkout(w domain.WorkoutLog) string {
	return fmt.Sprintf("%s %d min, %d kcal", w.ExerciseType, w.DurationMinutes, w.Calories)
}

func describeMeal(m domain.MealLog) string {
	return fmt.Sprintf("%s %d kcal (P %d / C %d / F %d)", m.MealType, m.Calories, m.Protein, m.Carbs, m.Fats)
}
