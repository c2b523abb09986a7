package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/grocer"
	"github.com/kitchenwise/pantry/internal/model"
)

func itemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage items on the current shopping list",
		Long: `Add recipe ingredients or individual items to a shopping list, check
items off while shopping, and clear what you have bought. Items with the
same name merge automatically, honoring any saved merge rules.`,
	}

	cmd.AddCommand(itemsAddCmd())
	cmd.AddCommand(itemsPutCmd())
	cmd.AddCommand(itemsCheckCmd(true))
	cmd.AddCommand(itemsCheckCmd(false))
	cmd.AddCommand(itemsDeleteCmd())
	cmd.AddCommand(itemsClearCmd())

	return cmd
}

func itemsAddCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "add <recipe>",
		Short: "Add a recipe's ingredients to the list",
		Long: `Folds every ingredient of the named recipe into the shopping list.
Ingredients already on the list get their quantities merged and the
recipe name added to their provenance. Adding the same recipe twice
does not double provenance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recipe, err := findRecipe(ctx, store, args[0])
			if err != nil {
				return err
			}
			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			rules, err := store.GetMergeRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load merge rules: %w", err)
			}

			before := len(list.Items)
			items := grocer.Aggregate(list.Items, recipe.Ingredients, grocer.Source{
				Label: recipe.Name,
				ID:    recipe.ID,
			}, rules)

			if err := store.ReplaceItems(ctx, list.ID, items); err != nil {
				return fmt.Errorf("failed to update list: %w", err)
			}

			added := len(items) - before
			merged := len(recipe.Ingredients) - added
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf(
				"✓ Added %q to %q (%d new, %d merged)", recipe.Name, list.Name, added, merged)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func itemsPutCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "put <name[,quantity[,category]]>",
		Short: "Add a single item to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ing, err := parseIngredientSpec(args[0])
			if err != nil {
				return err
			}
			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			rules, err := store.GetMergeRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load merge rules: %w", err)
			}

			items := grocer.Aggregate(list.Items, []model.Ingredient{ing}, grocer.Source{}, rules)
			if err := store.ReplaceItems(ctx, list.ID, items); err != nil {
				return fmt.Errorf("failed to update list: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Added %q to %q", ing.Name, list.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func itemsCheckCmd(checked bool) *cobra.Command {
	var listName string

	use, short := "check <name>", "Check an item off the list"
	if !checked {
		use, short = "uncheck <name>", "Put a checked item back on the list"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			item, err := findItem(list, args[0])
			if err != nil {
				return err
			}
			if err := store.SetItemChecked(ctx, list.ID, item.ID, checked); err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}

			if checked {
				fmt.Println(cli.CheckedStyle.Render("✓ " + item.Name))
			} else {
				fmt.Printf("☐ %s\n", item.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func itemsDeleteCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove an item from the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			item, err := findItem(list, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteItem(ctx, list.ID, item.ID); err != nil {
				return fmt.Errorf("failed to delete item: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Removed %q", item.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func itemsClearCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all checked items from the list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, listName)
			if err != nil {
				return err
			}
			removed, err := store.ClearCheckedItems(ctx, list.ID)
			if err != nil {
				return fmt.Errorf("failed to clear checked items: %w", err)
			}

			fmt.Printf("Cleared %d checked item(s) from %q\n", removed, list.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

// findItem matches a list item by name, tolerating case and whitespace
// differences the same way aggregation does.
func findItem(list *model.ShoppingList, name string) (*model.ShoppingItem, error) {
	key := grocer.Normalize(name)
	for i := range list.Items {
		if grocer.Normalize(list.Items[i].Name) == key {
			return &list.Items[i], nil
		}
	}
	return nil, common.NewUserError(
		fmt.Sprintf("No item named %q on %q.", name, list.Name),
		fmt.Errorf("%w: item %q", common.ErrNotFound, name))
}
