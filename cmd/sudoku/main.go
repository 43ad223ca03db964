package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var mainCommand = &cobra.Command{
	Use:           "sudoku",
	Short:         "Backtracking sudoku solver",
	Long:          "Solves 9x9 sudoku boards with a generic depth-first search engine, sequentially or across all CPUs.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := mainCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(1)
	}
}
