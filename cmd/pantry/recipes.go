package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/model"
)

func recipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage recipes",
		Long:  `Add, list, show, and delete recipes.`,
	}

	cmd.AddCommand(recipesAddCmd())
	cmd.AddCommand(recipesListCmd())
	cmd.AddCommand(recipesShowCmd())
	cmd.AddCommand(recipesDeleteCmd())
	cmd.AddCommand(recipesFavoriteCmd())

	return cmd
}

func recipesAddCmd() *cobra.Command {
	var (
		description string
		tags        []string
		ingredients []string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recipe",
		Long: `Add a recipe with its ingredient list. Each --ingredient takes
"name,quantity,category", e.g. --ingredient "Tomato,2个,vegetable".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recipe := &model.Recipe{
				ID:          uuid.NewString(),
				Name:        args[0],
				Description: description,
				Tags:        tags,
			}
			for _, spec := range ingredients {
				ing, err := parseIngredientSpec(spec)
				if err != nil {
					return err
				}
				recipe.Ingredients = append(recipe.Ingredients, ing)
			}

			if err := store.SaveRecipe(ctx, recipe); err != nil {
				return fmt.Errorf("failed to save recipe: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(
				fmt.Sprintf("✓ Added %q with %d ingredients", recipe.Name, len(recipe.Ingredients))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "recipe description")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "recipe tags (repeatable)")
	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, `ingredient as "name,quantity,category" (repeatable)`)

	return cmd
}

func recipesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all recipes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			recipes, err := store.ListRecipes(ctx)
			if err != nil {
				return fmt.Errorf("failed to list recipes: %w", err)
			}

			if len(recipes) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No recipes yet. Use 'pantry recipes add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "NAME\tINGREDIENTS\tTAGS")
			for _, r := range recipes {
				name := r.Name
				if r.IsFavorite {
					name = "★ " + name
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(r.Ingredients), strings.Join(r.Tags, ", "))
			}

			return nil
		},
	}
}

func recipesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a recipe with its ingredients",
		Args:  cobra.ExactArgs(1),
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

			title := recipe.Name
			if recipe.IsFavorite {
				title = "★ " + title
			}
			fmt.Println(cli.TitleStyle.Render(title))
			if recipe.Description != "" {
				fmt.Println(recipe.Description)
			}
			if len(recipe.Tags) > 0 {
				fmt.Println(cli.SubtleStyle.Render("tags: " + strings.Join(recipe.Tags, ", ")))
			}

			fmt.Println()
			for _, ing := range recipe.Ingredients {
				line := fmt.Sprintf("%s %s", ing.Category.Icon(), ing.Name)
				if ing.Quantity != "" {
					line += cli.SubtleStyle.Render("  " + ing.Quantity)
				}
				fmt.Println(line)
			}

			return nil
		},
	}
}

func recipesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
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
			if err := store.DeleteRecipe(ctx, recipe.ID); err != nil {
				return fmt.Errorf("failed to delete recipe: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted %q", recipe.Name)))
			return nil
		},
	}
}

func recipesFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <name>",
		Short: "Toggle a recipe's favorite flag",
		Args:  cobra.ExactArgs(1),
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
			if err := store.SetRecipeFavorite(ctx, recipe.ID, !recipe.IsFavorite); err != nil {
				return fmt.Errorf("failed to update favorite: %w", err)
			}

			if recipe.IsFavorite {
				fmt.Printf("Removed %q from favorites\n", recipe.Name)
			} else {
				fmt.Printf("★ Added %q to favorites\n", recipe.Name)
			}
			return nil
		},
	}
}
