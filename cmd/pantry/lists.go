package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/export"
)

func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage shopping lists",
		Long:  `Create, list, select, and delete shopping lists. Item commands target the current list.`,
	}

	cmd.AddCommand(listsCreateCmd())
	cmd.AddCommand(listsListCmd())
	cmd.AddCommand(listsShowCmd())
	cmd.AddCommand(listsUseCmd())
	cmd.AddCommand(listsDeleteCmd())

	return cmd
}

func listsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a shopping list and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := store.CreateList(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Created %q (now current)", list.Name)))
			return nil
		},
	}
}

func listsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all shopping lists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			lists, err := store.ListLists(ctx)
			if err != nil {
				return fmt.Errorf("failed to list shopping lists: %w", err)
			}
			if len(lists) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No shopping lists yet. Use 'pantry lists create' to start one."))
				return nil
			}

			currentID := ""
			if current, err := store.CurrentList(ctx); err == nil {
				currentID = current.ID
			} else if !errors.Is(err, common.ErrNoCurrentList) {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "NAME\tCREATED")
			for _, list := range lists {
				name := list.Name
				if list.ID == currentID {
					name = "* " + name
				}
				fmt.Fprintf(w, "%s\t%s\n", name, list.CreatedAt.Format("2006-01-02"))
			}

			return nil
		},
	}
}

func listsShowCmd() *cobra.Command {
	var listName string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a shopping list grouped by category",
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

			fmt.Println(cli.TitleStyle.Render(list.Name))
			if len(list.Items) == 0 {
				fmt.Println(cli.SubtleStyle.Render("(empty)"))
				return nil
			}

			checked := 0
			for _, item := range list.Items {
				line := export.ItemLine(item)
				if item.Checked {
					checked++
					fmt.Println("  " + cli.CheckedStyle.Render("✓ "+line))
				} else {
					fmt.Println("  ☐ " + line)
				}
			}
			fmt.Println(cli.SubtleStyle.Render(
				fmt.Sprintf("%d items, %d checked", len(list.Items), checked)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")

	return cmd
}

func listsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the current shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.SetCurrentList(ctx, list.ID); err != nil {
				return fmt.Errorf("failed to set current list: %w", err)
			}

			fmt.Printf("Now using %q\n", list.Name)
			return nil
		},
	}
}

func listsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a shopping list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			list, err := resolveList(ctx, store, args[0])
			if err != nil {
				return err
			}
			if err := store.DeleteList(ctx, list.ID); err != nil {
				return fmt.Errorf("failed to delete list: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Deleted %q", list.Name)))
			return nil
		},
	}
}
