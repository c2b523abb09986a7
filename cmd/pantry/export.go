package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kitchenwise/pantry/internal/cli"
	"github.com/kitchenwise/pantry/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		listName string
		flat     bool
		copyOut  bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a shopping list as plain text",
		Long: `Renders the unchecked items of a shopping list as plain text, grouped
by category by default. Use --flat for one item per line, --copy to put
the text on the clipboard, or --out to write it to a file.`,
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

			var text string
			if flat {
				text = export.FlatText(list.Items)
			} else {
				text = export.GroupedText(list.Items)
			}
			if text == "" {
				fmt.Println(cli.SubtleStyle.Render("Nothing to export, every item is checked."))
				return nil
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("failed to write export file: %w", err)
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Wrote " + outPath))
				return nil
			}
			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				fmt.Println(cli.SuccessStyle.Render("✓ Copied to clipboard"))
				return nil
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listName, "list", "l", "", "list name (default: current list)")
	cmd.Flags().BoolVar(&flat, "flat", false, "one item per line, no category headers")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the text to the clipboard")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the text to a file")

	return cmd
}
