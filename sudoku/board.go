// Package sudoku is the domain plug-in for the search engine: a 9x9 board
// model with parsing, validation, candidate propagation and rendering, plus
// a search.Graph implementation over boards.
package sudoku

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Size is the board edge length; Box is the sub-square edge length.
const (
	Size = 9
	Box  = 3
)

// fullMask has one bit per candidate value: bit v-1 represents value v.
const fullMask uint16 = 0x1FF

// Cell is one board position.
//
// Exactly one interpretation applies:
//   - Value > 0: the cell holds that digit (given or deduced).
//   - Conflict: no legal value remains; the board is a dead end.
//   - Otherwise: the cell is open, with Candidates as the last computed
//     bitmask of legal values (zero until ComputeCandidates runs).
type Cell struct {
	Value      uint8
	Candidates uint16
	Conflict   bool
}

// BoardState classifies a board after candidate propagation.
type BoardState uint8

const (
	// StateUnknown means ComputeCandidates has not run since the last edit.
	StateUnknown BoardState = iota

	// StateBranch means the board is consistent but unresolved; BranchRow
	// and BranchCol point at the cell to branch on.
	StateBranch

	// StateInvalid means some cell has no legal value.
	StateInvalid

	// StateSolved means every cell holds a value and the board is valid.
	StateSolved
)

// String returns the state name.
func (s BoardState) String() string {
	switch s {
	case StateBranch:
		return "branch"
	case StateInvalid:
		return "invalid"
	case StateSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Board is one candidate solution state: a value type, comparable and
// cheaply copied, which is exactly what the search engine requires of a
// node. Copies are independent; setting a cell on one never affects another.
//
// BranchRow/BranchCol are meaningful only when State == StateBranch.
type Board struct {
	Cells [Size][Size]Cell
	State BoardState

	BranchRow int8
	BranchCol int8
}

// Parse builds a Board from text: up to 9 lines of up to 9 runes each.
// Space, '.' and '0' mean an empty cell; '1'..'9' are given values; anything
// else is an error. Short lines and missing lines are padded with empties.
//
// The board is validated before it is returned: a board with a duplicated
// value in any row, column or box is rejected here and never reaches the
// engine.
func Parse(text string) (Board, error) {
	var b Board

	lines := strings.Split(text, "\n")
	if len(lines) > Size {
		// Tolerate a single trailing newline.
		if len(lines) == Size+1 && lines[Size] == "" {
			lines = lines[:Size]
		} else {
			return b, fmt.Errorf("board has %d rows, want at most %d", len(lines), Size)
		}
	}

	for r, line := range lines {
		runes := []rune(line)
		if len(runes) > Size {
			return b, fmt.Errorf("row %d has %d cells, want at most %d", r+1, len(runes), Size)
		}
		for c, ch := range runes {
			switch {
			case ch == ' ' || ch == '.' || ch == '0':
				// empty
			case ch >= '1' && ch <= '9':
				b.Cells[r][c] = Cell{Value: uint8(ch - '0')}
			default:
				return b, fmt.Errorf("row %d col %d: invalid character %q", r+1, c+1, ch)
			}
		}
	}

	if !b.Valid() {
		return Board{}, fmt.Errorf("invalid board: duplicate value in a row, column or box")
	}

	return b, nil
}

// Get returns the value at (r, c), zero for open cells.
func (b *Board) Get(r, c int) uint8 {
	return b.Cells[r][c].Value
}

// Set fills (r, c) with value, discarding any candidate state the cell had.
func (b *Board) Set(r, c int, value uint8) {
	b.Cells[r][c] = Cell{Value: value}
}

// IsSolved reports whether the last candidate propagation resolved the board.
func (b *Board) IsSolved() bool {
	return b.State == StateSolved
}

func (b *Board) rowMask(r int) uint16 {
	var mask uint16
	for c := 0; c < Size; c++ {
		if v := b.Cells[r][c].Value; v != 0 {
			mask |= 1 << (v - 1)
		}
	}
	return mask
}

func (b *Board) colMask(c int) uint16 {
	var mask uint16
	for r := 0; r < Size; r++ {
		if v := b.Cells[r][c].Value; v != 0 {
			mask |= 1 << (v - 1)
		}
	}
	return mask
}

func (b *Board) boxMask(r, c int) uint16 {
	r0, c0 := (r/Box)*Box, (c/Box)*Box
	var mask uint16
	for i := r0; i < r0+Box; i++ {
		for j := c0; j < c0+Box; j++ {
			if v := b.Cells[i][j].Value; v != 0 {
				mask |= 1 << (v - 1)
			}
		}
	}
	return mask
}

func (b *Board) candidateMask(r, c int) uint16 {
	return fullMask &^ (b.rowMask(r) | b.colMask(c) | b.boxMask(r, c))
}

// Candidates returns the legal values for the open cell at (r, c), computed
// fresh from the current row, column and box contents.
func (b *Board) Candidates(r, c int) []uint8 {
	return maskValues(b.candidateMask(r, c))
}

func maskValues(mask uint16) []uint8 {
	out := make([]uint8, 0, bits.OnesCount16(mask))
	for v := uint8(1); v <= 9; v++ {
		if mask&(1<<(v-1)) != 0 {
			out = append(out, v)
		}
	}
	return out
}

// ComputeCandidates performs one pass of forceable deductions and
// classifies the board.
//
// Open cells are scanned in row-major order: a cell with a single legal
// value is filled immediately (so later cells in the same pass see it), a
// cell with none is marked Conflict, and the first cell left with multiple
// candidates becomes the branch point. The pass is deliberately single:
// cascades of forced values resolve across successive goal checks, which is
// what the engine's iteration count measures.
//
// Resulting state: Invalid if any cell conflicted, Branch if any cell still
// has multiple candidates, Solved otherwise. Values are only ever filled in,
// never retracted, so re-running on an already-classified board is safe.
func (b *Board) ComputeCandidates() {
	invalid := false
	haveBranch := false

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c].Value != 0 {
				continue
			}
			mask := b.candidateMask(r, c)
			switch bits.OnesCount16(mask) {
			case 0:
				b.Cells[r][c] = Cell{Conflict: true}
				invalid = true
			case 1:
				b.Cells[r][c] = Cell{Value: maskValues(mask)[0]}
			default:
				b.Cells[r][c] = Cell{Candidates: mask}
				if !haveBranch {
					haveBranch = true
					b.BranchRow, b.BranchCol = int8(r), int8(c)
				}
			}
		}
	}

	switch {
	case invalid:
		b.State = StateInvalid
	case haveBranch:
		b.State = StateBranch
	default:
		b.State = StateSolved
	}
}

// Valid reports whether no value is duplicated within any row, column or
// box. Open cells are ignored.
func (b *Board) Valid() bool {
	for r := 0; r < Size; r++ {
		var seen uint16
		for c := 0; c < Size; c++ {
			if v := b.Cells[r][c].Value; v != 0 {
				bit := uint16(1) << (v - 1)
				if seen&bit != 0 {
					return false
				}
				seen |= bit
			}
		}
	}
	for c := 0; c < Size; c++ {
		var seen uint16
		for r := 0; r < Size; r++ {
			if v := b.Cells[r][c].Value; v != 0 {
				bit := uint16(1) << (v - 1)
				if seen&bit != 0 {
					return false
				}
				seen |= bit
			}
		}
	}
	for r0 := 0; r0 < Size; r0 += Box {
		for c0 := 0; c0 < Size; c0 += Box {
			var seen uint16
			for r := r0; r < r0+Box; r++ {
				for c := c0; c < c0+Box; c++ {
					if v := b.Cells[r][c].Value; v != 0 {
						bit := uint16(1) << (v - 1)
						if seen&bit != 0 {
							return false
						}
						seen |= bit
					}
				}
			}
		}
	}
	return true
}

// Text renders the board as 9 plain lines of digits and spaces, the same
// format Parse accepts. Candidate and conflict markers are not represented.
func (b *Board) Text() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if v := b.Cells[r][c].Value; v != 0 {
				sb.WriteByte('0' + v)
			} else {
				sb.WriteByte(' ')
			}
		}
		if r < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// String renders the board as a box-drawn grid for terminals. Open cells
// show a blue background, conflicted cells red, and cells holding a
// computed candidate set a green G.
func (b *Board) String() string {
	const horizontal = " ----------------- "

	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r%Box == 0 {
			sb.WriteString(horizontal)
			sb.WriteByte('\n')
		}
		for c := 0; c < Size; c++ {
			if c%Box == 0 {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			cell := b.Cells[r][c]
			switch {
			case cell.Value != 0:
				sb.WriteByte('0' + cell.Value)
			case cell.Conflict:
				sb.WriteString(aurora.BgRed(" ").String())
			case cell.Candidates != 0:
				sb.WriteString(aurora.Green("G").String())
			default:
				sb.WriteString(aurora.BgBlue(" ").String())
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(horizontal)
	sb.WriteByte('\n')
	return sb.String()
}

// boardJSON is the archive representation: the plain grid plus the state
// label. Candidate masks and the branch point are derivable and not stored.
type boardJSON struct {
	Grid  []string `json:"grid"`
	State string   `json:"state"`
}

// MarshalJSON encodes the board as its plain grid lines and state label.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Grid:  strings.Split(b.Text(), "\n"),
		State: b.State.String(),
	})
}

// UnmarshalJSON decodes a board stored by MarshalJSON. The grid is
// re-validated; candidate state is not restored (run ComputeCandidates to
// rebuild it).
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := Parse(strings.Join(raw.Grid, "\n"))
	if err != nil {
		return err
	}

	switch raw.State {
	case "branch":
		parsed.State = StateBranch
	case "invalid":
		parsed.State = StateInvalid
	case "solved":
		parsed.State = StateSolved
	default:
		parsed.State = StateUnknown
	}

	*b = parsed
	return nil
}
