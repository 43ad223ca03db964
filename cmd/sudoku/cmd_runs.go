package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renato145/sudoku-solver/search/store"
	"github.com/renato145/sudoku-solver/sudoku"
)

var (
	runsArchive string
	runsLimit   int
)

var commandRuns = &cobra.Command{
	Use:   "runs",
	Short: "List archived runs",
	Long:  "Lists solve runs archived with --archive, most recent first.",
	RunE:  runRuns,
}

func init() {
	commandRuns.Flags().StringVar(&runsArchive, "archive", "", "SQLite archive path (required)")
	commandRuns.Flags().IntVar(&runsLimit, "limit", 20, "maximum number of runs to list (0 = all)")
	_ = commandRuns.MarkFlagRequired("archive")
	mainCommand.AddCommand(commandRuns)
}

func runRuns(cmd *cobra.Command, args []string) error {
	archive, err := store.NewSQLiteStore[sudoku.Board](runsArchive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	runs, err := archive.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	for _, rec := range runs {
		fmt.Printf("%s  %-10s  %-9s  %8d iterations  %6dms  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Mode, rec.Outcome, rec.Iterations,
			rec.Elapsed.Milliseconds(), rec.RunID)
	}
	return nil
}
