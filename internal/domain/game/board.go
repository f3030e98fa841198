package game

import (
	"bytes"
	"encoding/json"
)

const (
	Rows     = 10
	Cols     = 10
	ConnectN = 4
)

// Empty marks a cell nobody has claimed yet.
const Empty = ""

// Board is a fixed 10x10 grid of player ids. It is a plain array so that
// passing it around copies it: every hypothetical position the search
// explores is its own value and sibling branches never alias each other.
// Row 0 is the top of the grid; gravity fills columns from row Rows-1 up.
type Board [Rows][Cols]string

var winDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{-1, 1}, // diagonal up-right
}

// FindDropRow returns the lowest empty row in the column, scanning from the
// bottom. ok is false when the column is full or col is out of range.
func (b Board) FindDropRow(col int) (int, bool) {
	if col < 0 || col >= Cols {
		return 0, false
	}
	for row := Rows - 1; row >= 0; row-- {
		if b[row][col] == Empty {
			return row, true
		}
	}
	return 0, false
}

// WithDisc returns a copy of the board with player's disc at (row, col).
// The receiver is left untouched.
func (b Board) WithDisc(row, col int, player string) Board {
	b[row][col] = player
	return b
}

// IsFull reports whether no column can take another disc. Checking the top
// row is enough because gravity fills columns bottom-up.
func (b Board) IsFull() bool {
	for col := 0; col < Cols; col++ {
		if b[0][col] == Empty {
			return false
		}
	}
	return true
}

// ValidColumns lists every column that still has room, in ascending order.
func (b Board) ValidColumns() []int {
	cols := make([]int, 0, Cols)
	for col := 0; col < Cols; col++ {
		if _, ok := b.FindDropRow(col); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// CheckWin reports whether the disc at (row, col) sits on a run of at least
// connectN same-owner cells along one of the four axes. The run is counted
// outward in both directions from the cell and stops at the first mismatch
// or board edge. An empty cell never wins.
func (b Board) CheckWin(row, col, connectN int) bool {
	player := b[row][col]
	if player == Empty {
		return false
	}

	for _, dir := range winDirections {
		dr, dc := dir[0], dir[1]
		count := 1

		for r, c := row+dr, col+dc; inBounds(r, c) && b[r][c] == player; r, c = r+dr, c+dc {
			count++
		}
		for r, c := row-dr, col-dc; inBounds(r, c) && b[r][c] == player; r, c = r-dr, c-dc {
			count++
		}

		if count >= connectN {
			return true
		}
	}
	return false
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// MarshalJSON renders empty cells as null so clients see the same wire shape
// as the board they send back.
func (b Board) MarshalJSON() ([]byte, error) {
	grid := make([][]*string, Rows)
	for r := 0; r < Rows; r++ {
		grid[r] = make([]*string, Cols)
		for c := 0; c < Cols; c++ {
			if b[r][c] != Empty {
				cell := b[r][c]
				grid[r][c] = &cell
			}
		}
	}
	return json.Marshal(grid)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var grid [Rows][Cols]*string
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&grid); err != nil {
		return err
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if grid[r][c] != nil {
				b[r][c] = *grid[r][c]
			} else {
				b[r][c] = Empty
			}
		}
	}
	return nil
}
