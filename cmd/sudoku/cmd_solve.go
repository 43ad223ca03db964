package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/renato145/sudoku-solver/search"
	"github.com/renato145/sudoku-solver/search/emit"
	"github.com/renato145/sudoku-solver/search/store"
	"github.com/renato145/sudoku-solver/sudoku"
)

var (
	solveParallel bool
	solveWorkers  int
	solveFile     string
	solveArchive  string
	solveJSONLog  bool
	solveVerbose  bool
)

var commandSolve = &cobra.Command{
	Use:   "solve [puzzle]",
	Short: "Solve a board",
	Long: `Solve a 9x9 board given as a positional argument, a file (--file) or stdin.

Board format: one line per row, spaces (or '.' or '0') for empty cells,
digits 1-9 for givens. Short rows and missing rows count as empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	commandSolve.Flags().BoolVarP(&solveParallel, "parallel", "p", false, "solve with one worker per CPU")
	commandSolve.Flags().IntVarP(&solveWorkers, "workers", "w", 0, "worker count for --parallel (0 = all CPUs)")
	commandSolve.Flags().StringVarP(&solveFile, "file", "f", "", "read the board from a file")
	commandSolve.Flags().StringVar(&solveArchive, "archive", "", "archive the run in a SQLite database at this path")
	commandSolve.Flags().BoolVar(&solveJSONLog, "json-log", false, "emit search events as JSONL instead of text")
	commandSolve.Flags().BoolVarP(&solveVerbose, "verbose", "v", false, "emit search lifecycle events to stderr")
	mainCommand.AddCommand(commandSolve)
}

func runSolve(cmd *cobra.Command, args []string) error {
	text, err := readPuzzle(args)
	if err != nil {
		return err
	}

	board, err := sudoku.Parse(text)
	if err != nil {
		return err
	}

	opts := []search.Option[sudoku.Board]{}

	workers := 1
	mode := "sequential"
	if solveParallel {
		workers = solveWorkers
		mode = "parallel"
	}
	opts = append(opts, search.WithWorkers[sudoku.Board](workers))

	if solveVerbose {
		opts = append(opts, search.WithEmitter[sudoku.Board](emit.NewLogEmitter(os.Stderr, solveJSONLog)))
	}

	if solveArchive != "" {
		archive, err := store.NewSQLiteStore[sudoku.Board](solveArchive)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer archive.Close()
		opts = append(opts, search.WithStore[sudoku.Board](archive))
	}

	engine, err := search.New[sudoku.Board](sudoku.Solver{}, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("Input:\n%s", board.String())
	fmt.Printf("Solving in %s mode...\n", mode)

	runID := fmt.Sprintf("cli-%d", os.Getpid())
	solution, iterations, err := engine.Run(cmd.Context(), runID, board)
	if err != nil {
		if errors.Is(err, search.ErrExhausted) {
			fmt.Println(aurora.Red(fmt.Sprintf("No solution found (%d iterations)", iterations)))
			return nil
		}
		return err
	}

	fmt.Printf("Found a solution in %d iterations.\n%s", iterations, solution.String())
	return nil
}

func readPuzzle(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if solveFile != "" {
		data, err := os.ReadFile(solveFile)
		if err != nil {
			return "", fmt.Errorf("read board: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read board from stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("no board given: pass it as an argument, --file or stdin")
	}
	return string(data), nil
}
