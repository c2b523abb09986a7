package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/grocer"
	"github.com/kitchenwise/pantry/internal/model"
)

func mergesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merges",
		Short: "Manage ingredient merge rules",
		Long: `Merge rules map ingredient name variants onto one canonical name, so
"scallion" and "green onion" land on a single shopping list entry. Rules
apply in saved order, first match wins.`,
	}

	cmd.AddCommand(mergesListCmd())
	cmd.AddCommand(mergesAddCmd())
	cmd.AddCommand(mergesDeleteCmd())
	cmd.AddCommand(mergesSuggestCmd())

	return cmd
}

func mergesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved merge rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.GetMergeRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load merge rules: %w", err)
			}
			if len(rules) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No merge rules yet. Try 'pantry merges suggest'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "CANONICAL\tMERGES")
			for _, rule := range rules {
				fmt.Fprintf(w, "%s\t%s\n", rule.CanonicalName, strings.Join(rule.SourceNames, ", "))
			}

			return nil
		},
	}
}

func mergesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <canonical> <source>...",
		Short: "Save a merge rule",
		Long:  `Saves a rule mapping each source name onto the canonical name.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule := model.NewIngredientMerge(args[0], args[1:])
			if err := store.SaveMergeRule(ctx, rule); err != nil {
				return fmt.Errorf("failed to save merge rule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ %s ← %s", rule.CanonicalName, strings.Join(rule.SourceNames, ", "))))
			return nil
		},
	}
}

func mergesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <canonical>",
		Short: "Delete the rule with the given canonical name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteMergeRule(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete merge rule: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted rule for %q", args[0])))
			return nil
		},
	}
}

func mergesSuggestCmd() *cobra.Command {
	var (
		threshold float64
		limit     int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest merge rules from similar ingredient names",
		Long: `Scans every ingredient name the database knows for pairs that look
like the same thing spelled differently, then walks through them
interactively. Accepted pairs become merge rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Config values land after flag construction, so flags
			// left at their defaults defer to the config file.
			if !cmd.Flags().Changed("threshold") {
				threshold = viper.GetFloat64("merge.threshold")
			}
			if !cmd.Flags().Changed("limit") {
				limit = viper.GetInt("merge.suggestions")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			names, err := store.GetKnownIngredientNames(ctx)
			if err != nil {
				return fmt.Errorf("failed to load ingredient names: %w", err)
			}
			rules, err := store.GetMergeRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load merge rules: %w", err)
			}

			pairs := grocer.FindSimilarPairs(names, rules, threshold)
			if len(pairs) > limit {
				pairs = pairs[:limit]
			}
			if len(pairs) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No merge candidates found."))
				return nil
			}

			if dryRun {
				for _, pair := range pairs {
					fmt.Printf("%.0f%%  %s / %s\n", pair.Similarity*100, pair.Name1, pair.Name2)
				}
				return nil
			}

			prompter := cli.NewMergePrompter(os.Stdin, os.Stdout)
			accepted, err := prompter.Review(ctx, pairs)
			if err != nil {
				return err
			}
			for _, rule := range accepted {
				if err := store.SaveMergeRule(ctx, rule); err != nil {
					return fmt.Errorf("failed to save merge rule: %w", err)
				}
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Saved %d merge rule(s)", len(accepted))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", grocer.DefaultThreshold,
		"minimum similarity score to suggest a pair")
	cmd.Flags().IntVar(&limit, "limit", 5,
		"maximum number of suggestions to review")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print candidates without prompting")

	return cmd
}
