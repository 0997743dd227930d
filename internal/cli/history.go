package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/ui"
)

func (a *app) newHistoryCmd() *cobra.Command {
	var limit int
	var clear bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently run commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, argv []string) error {
			store, err := a.openHistory()
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			if clear {
				if err := store.Clear(); err != nil {
					return err
				}
				ui.Success("History cleared")
				return nil
			}

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(ui.Hint("No history yet."))
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				status := ui.SymbolSuccess
				if entry.ExitCode != 0 {
					status = ui.SymbolError
				}
				rows = append(rows, []string{
					entry.RanAt.Local().Format("2006-01-02 15:04"),
					status,
					formatDuration(entry.Duration),
					"plz " + entry.Command,
				})
			}
			fmt.Print(ui.RenderColumns(rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	cmd.Flags().BoolVar(&clear, "clear", false, "delete all recorded history")
	return cmd
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return d.Round(time.Second).String()
	case d >= time.Second:
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Millisecond).String()
}
