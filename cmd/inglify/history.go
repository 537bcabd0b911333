package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/inglify/inglify"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, delete, export and import past translations",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
		newHistoryDeleteCmd(a),
		newHistoryClearCmd(a),
		newHistoryExportCmd(a),
		newHistoryImportCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			items, err := h.Items()
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(a.stdout, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(a.stdout, "No history yet.")
				return nil
			}
			printHistory(a, items)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printHistory(a *app, items []inglify.HistoryItem) {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			item.ID,
			time.UnixMilli(item.Timestamp).Local().Format("2006-01-02 15:04"),
			inglify.LanguageLabel(item.TargetLanguage),
			item.OriginalText,
		)
	}
	_ = tw.Flush()
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			item, ok, err := h.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no history entry %q", args[0])
			}
			return printResponse(a.stdout, item.Response())
		},
	}
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			ok, err := h.Delete(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no history entry %q", args[0])
			}
			fmt.Fprintf(a.stdout, "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newHistoryClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			if err := h.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "History cleared")
			return nil
		},
	}
}

func newHistoryExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export history as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			meta := map[string]string{"app": inglify.Name, "version": inglify.Version}
			if len(args) == 0 {
				return h.Export(a.stdout, meta)
			}
			if err := h.ExportToFile(args[0], meta); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func newHistoryImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON export into the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			h, err := a.history()
			if err != nil {
				return err
			}
			res, err := h.ImportFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Imported %d entries, skipped %d already present, dropped %d beyond the limit, %d in history\n",
				res.Imported, res.Skipped, res.Dropped, res.Total)
			return nil
		},
	}
}
