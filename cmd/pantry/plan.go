package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/grocer"
	"github.com/kitchenwise/pantry/internal/model"
)

const dateLayout = "2006-01-02"

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan meals and shop for them",
		Long: `Schedule recipes on dates, then fold a date range's worth of
ingredients into a shopping list in one pass.`,
	}

	cmd.AddCommand(planAddCmd())
	cmd.AddCommand(planListCmd())
	cmd.AddCommand(planRemoveCmd())
	cmd.AddCommand(planShopCmd())

	return cmd
}

func planAddCmd() *cobra.Command {
	var meal string

	cmd := &cobra.Command{
		Use:   "add <recipe> <date>",
		Short: "Schedule a recipe on a date",
		Long:  `Schedules a recipe for a date (YYYY-MM-DD). Defaults to dinner.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			date, err := parseDate(args[1])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recipe, err := findRecipe(ctx, store, args[0])
			if err != nil {
				return err
			}

			entry := &model.MealPlanEntry{
				ID:         uuid.NewString(),
				Date:       date,
				RecipeID:   recipe.ID,
				RecipeName: recipe.Name,
				Meal:       model.ParseMealType(meal),
			}
			if err := store.SaveMealPlanEntry(ctx, entry); err != nil {
				return fmt.Errorf("failed to save meal plan entry: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ %s: %s (%s)", date.Format(dateLayout), recipe.Name, entry.Meal)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&meal, "meal", "m", "dinner", "meal slot (breakfast, lunch, dinner)")

	return cmd
}

func planListCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show planned meals",
		Long:  `Shows planned meals for a date range, defaulting to the next 7 days.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, end, err := parseDateRange(from, to)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetMealPlanEntries(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to load meal plan: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing planned for this range."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "DATE\tMEAL\tRECIPE")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					entry.Date.Format(dateLayout), entry.Meal, entry.RecipeName)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD, default from+6 days)")

	return cmd
}

func planRemoveCmd() *cobra.Command {
	var meal string

	cmd := &cobra.Command{
		Use:   "remove <date>",
		Short: "Remove planned meals from a date",
		Long: `Removes the planned meals on a date. With --meal, removes only that
slot; otherwise clears the whole day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			date, err := parseDate(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetMealPlanEntries(ctx, date, date)
			if err != nil {
				return fmt.Errorf("failed to load meal plan: %w", err)
			}

			removed := 0
			for _, entry := range entries {
				if meal != "" && entry.Meal != model.ParseMealType(meal) {
					continue
				}
				if err := store.DeleteMealPlanEntry(ctx, entry.ID); err != nil {
					return fmt.Errorf("failed to remove meal plan entry: %w", err)
				}
				removed++
			}
			if removed == 0 {
				return common.NewUserError(
					fmt.Sprintf("Nothing planned on %s.", date.Format(dateLayout)),
					fmt.Errorf("%w: meal plan for %s", common.ErrNotFound, date.Format(dateLayout)))
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Removed %d planned meal(s) from %s", removed, date.Format(dateLayout))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&meal, "meal", "m", "", "only remove this meal slot")

	return cmd
}

func planShopCmd() *cobra.Command {
	var from, to, listName string

	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Add a date range's planned recipes to the shopping list",
		Long: `Folds every recipe planned in the date range into the shopping list,
one aggregation pass per planned meal, so shared ingredients merge
across recipes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, end, err := parseDateRange(from, to)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetMealPlanEntries(ctx, start, end)
			if err != nil {
				return fmt.Errorf("failed to load meal plan: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing planned for this range."))
				return nil
			}

			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			rules, err := store.GetMergeRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load merge rules: %w", err)
			}

			items := list.Items
			folded := 0
			for _, entry := range entries {
				recipe, err := store.GetRecipe(ctx, entry.RecipeID)
				if err != nil {
					slog.Warn("skipping planned meal, recipe missing",
						"recipe", entry.RecipeName, "date", entry.Date.Format(dateLayout))
					continue
				}
				items = grocer.Aggregate(items, recipe.Ingredients, grocer.Source{
					Label: recipe.Name,
					ID:    recipe.ID,
				}, rules)
				folded++
			}

			if err := store.ReplaceItems(ctx, list.ID, items); err != nil {
				return fmt.Errorf("failed to update list: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Added %d planned meal(s) to %q (%d items)", folded, list.Name, len(items))))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD, default from+6 days)")
	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, common.NewUserError(
			fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD.", s),
			fmt.Errorf("%w: date %q", common.ErrInvalidConfig, s))
	}
	return date, nil
}

// parseDateRange interprets empty bounds as "today" and "start plus six
// days", covering the common plan-a-week case without flags.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if from == "" {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else if start, err = parseDate(from); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if to == "" {
		end = start.AddDate(0, 0, 6)
	} else if end, err = parseDate(to); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, common.NewUserError(
			"End date is before start date.",
			fmt.Errorf("%w: range %s..%s", common.ErrInvalidConfig,
				start.Format(dateLayout), end.Format(dateLayout)))
	}
	return start, end, nil
}
