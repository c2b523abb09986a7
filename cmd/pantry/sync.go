package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/gist"
	"github.com/kitchenwise/pantry/internal/model"
	"github.com/kitchenwise/pantry/internal/service"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync data through a private GitHub Gist",
		Long: `Backs up recipes, shopping lists, and merge rules to a private GitHub
Gist and restores them on other devices. The gist token stays in the
local database and is never uploaded.`,
	}

	cmd.AddCommand(syncInitCmd())
	cmd.AddCommand(syncPushCmd())
	cmd.AddCommand(syncPullCmd())
	cmd.AddCommand(syncStatusCmd())

	return cmd
}

func syncInitCmd() *cobra.Command {
	var token, gistID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Link a gist for syncing",
		Long: `Stores the GitHub token and either creates a fresh private gist from
the local data or, with --gist, links an existing one to pull from.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			if token == "" {
				token = settings.GistToken
			}
			if token == "" {
				return common.NewUserError(
					"A GitHub token is required. Pass one with --token.",
					fmt.Errorf("%w: gist token", common.ErrMissingConfig))
			}

			settings.GistToken = token
			if gistID != "" {
				settings.GistID = gistID
				if err := store.UpdateSettings(ctx, settings); err != nil {
					return fmt.Errorf("failed to save settings: %w", err)
				}
				fmt.Println(cli.SuccessStyle.Render(
					"✓ Linked existing gist. Run 'pantry sync pull' to fetch its data."))
				return nil
			}

			doc, err := buildSyncDocument(ctx, store)
			if err != nil {
				return err
			}

			id, err := gist.NewClient(token).Create(ctx, doc)
			if err != nil {
				return err
			}

			settings.GistID = id
			settings.LastSync = time.Now()
			if err := store.UpdateSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Created gist " + id))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub token with the gist scope")
	cmd.Flags().StringVar(&gistID, "gist", "", "link an existing gist instead of creating one")

	return cmd
}

func syncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload local data to the linked gist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := linkedSettings(ctx, store)
			if err != nil {
				return err
			}
			doc, err := buildSyncDocument(ctx, store)
			if err != nil {
				return err
			}

			if err := gist.NewClient(settings.GistToken).Push(ctx, settings.GistID, doc); err != nil {
				return err
			}

			settings.LastSync = time.Now()
			if err := store.UpdateSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Pushed %d recipe(s), %d list(s), %d merge rule(s)",
				len(doc.Recipes), len(doc.ShoppingLists), len(doc.MergeRules))))
			return nil
		},
	}
}

func syncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace local data with the linked gist's",
		Long: `Downloads the gist document and replaces local recipes, shopping
lists, and merge rules with it. The stored gist credentials are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := linkedSettings(ctx, store)
			if err != nil {
				return err
			}

			doc, err := gist.NewClient(settings.GistToken).Pull(ctx, settings.GistID)
			if err != nil {
				return err
			}

			for i := range doc.Recipes {
				if err := store.SaveRecipe(ctx, &doc.Recipes[i]); err != nil {
					return fmt.Errorf("failed to import recipe %q: %w", doc.Recipes[i].Name, err)
				}
			}
			for i := range doc.ShoppingLists {
				if err := store.ImportList(ctx, &doc.ShoppingLists[i]); err != nil {
					return fmt.Errorf("failed to import list %q: %w", doc.ShoppingLists[i].Name, err)
				}
			}
			if err := store.ReplaceMergeRules(ctx, doc.MergeRules); err != nil {
				return fmt.Errorf("failed to import merge rules: %w", err)
			}
			if doc.CurrentListID != "" {
				if err := store.SetCurrentList(ctx, doc.CurrentListID); err != nil &&
					!errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("failed to set current list: %w", err)
				}
			}

			settings.LastSync = time.Now()
			if err := store.UpdateSettings(ctx, settings); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Pulled %d recipe(s), %d list(s), %d merge rule(s)",
				len(doc.Recipes), len(doc.ShoppingLists), len(doc.MergeRules))))
			return nil
		},
	}
}

func syncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			if settings.GistID == "" {
				fmt.Println(cli.SubtleStyle.Render("Sync is not set up. Run 'pantry sync init'."))
				return nil
			}

			fmt.Printf("Gist:      %s\n", settings.GistID)
			fmt.Printf("Token:     %s\n", maskToken(settings.GistToken))
			if settings.LastSync.IsZero() {
				fmt.Println("Last sync: never")
			} else {
				fmt.Printf("Last sync: %s\n", settings.LastSync.Format(time.RFC1123))
			}
			return nil
		},
	}
}

// buildSyncDocument snapshots everything the gist carries. The token is
// excluded on purpose.
func buildSyncDocument(ctx context.Context, store service.Storage) (*gist.Document, error) {
	recipes, err := store.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	summaries, err := store.ListLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping lists: %w", err)
	}
	lists := make([]model.ShoppingList, 0, len(summaries))
	for _, summary := range summaries {
		list, err := store.GetList(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load list %q: %w", summary.Name, err)
		}
		lists = append(lists, *list)
	}

	rules, err := store.GetMergeRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load merge rules: %w", err)
	}

	currentID := ""
	if current, err := store.CurrentList(ctx); err == nil {
		currentID = current.ID
	} else if !errors.Is(err, common.ErrNoCurrentList) {
		return nil, err
	}

	return &gist.Document{
		ExportedAt:    time.Now(),
		Recipes:       recipes,
		ShoppingLists: lists,
		MergeRules:    rules,
		CurrentListID: currentID,
	}, nil
}

func linkedSettings(ctx context.Context, store service.Storage) (*model.Settings, error) {
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.GistID == "" || settings.GistToken == "" {
		return nil, common.NewUserError(
			"Sync is not set up. Run 'pantry sync init' first.",
			common.ErrGistNotLinked)
	}
	return settings, nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
