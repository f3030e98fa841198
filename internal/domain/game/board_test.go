package game

import (
	"encoding/json"
	"testing"
)

func TestFindDropRowScansFromBottom(t *testing.T) {
	var b Board

	row, ok := b.FindDropRow(3)
	if !ok || row != Rows-1 {
		t.Fatalf("expected bottom row %d on empty column, got %d ok=%v", Rows-1, row, ok)
	}

	b = b.WithDisc(Rows-1, 3, "P1")
	b = b.WithDisc(Rows-2, 3, "P2")

	row, ok = b.FindDropRow(3)
	if !ok || row != Rows-3 {
		t.Fatalf("expected row %d above two discs, got %d ok=%v", Rows-3, row, ok)
	}
}

func TestFindDropRowFullColumn(t *testing.T) {
	var b Board
	for row := 0; row < Rows; row++ {
		b = b.WithDisc(row, 0, "P1")
	}

	if _, ok := b.FindDropRow(0); ok {
		t.Fatal("expected no drop row for a full column")
	}
}

func TestFindDropRowRejectsOutOfRange(t *testing.T) {
	var b Board
	if _, ok := b.FindDropRow(-1); ok {
		t.Fatal("expected no drop row for negative column")
	}
	if _, ok := b.FindDropRow(Cols); ok {
		t.Fatal("expected no drop row for column past the edge")
	}
}

func TestWithDiscDoesNotMutateReceiver(t *testing.T) {
	var b Board
	child := b.WithDisc(Rows-1, 4, "BOT")

	if b[Rows-1][4] != Empty {
		t.Fatal("placing a disc mutated the original board")
	}
	if child[Rows-1][4] != "BOT" {
		t.Fatal("placed disc missing from the copy")
	}
}

func TestIsFull(t *testing.T) {
	var b Board
	if b.IsFull() {
		t.Fatal("empty board reported full")
	}

	for col := 0; col < Cols; col++ {
		for row := 0; row < Rows; row++ {
			b = b.WithDisc(row, col, "P1")
		}
	}
	if !b.IsFull() {
		t.Fatal("completely filled board not reported full")
	}
}

func TestCheckWinAxes(t *testing.T) {
	tests := []struct {
		name  string
		cells [][2]int
		probe [2]int
	}{
		{
			name:  "horizontal",
			cells: [][2]int{{9, 2}, {9, 3}, {9, 4}, {9, 5}},
			probe: [2]int{9, 4},
		},
		{
			name:  "vertical",
			cells: [][2]int{{9, 0}, {8, 0}, {7, 0}, {6, 0}},
			probe: [2]int{6, 0},
		},
		{
			name:  "diagonal down-right",
			cells: [][2]int{{4, 4}, {5, 5}, {6, 6}, {7, 7}},
			probe: [2]int{5, 5},
		},
		{
			name:  "diagonal up-right",
			cells: [][2]int{{9, 1}, {8, 2}, {7, 3}, {6, 4}},
			probe: [2]int{7, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Board
			for _, cell := range tt.cells {
				b = b.WithDisc(cell[0], cell[1], "P1")
			}
			if !b.CheckWin(tt.probe[0], tt.probe[1], ConnectN) {
				t.Fatalf("expected win through (%d,%d)", tt.probe[0], tt.probe[1])
			}
		})
	}
}

func TestCheckWinNeedsFourInARow(t *testing.T) {
	var b Board
	b = b.WithDisc(9, 0, "P1")
	b = b.WithDisc(9, 1, "P1")
	b = b.WithDisc(9, 2, "P1")

	if b.CheckWin(9, 1, ConnectN) {
		t.Fatal("three in a row must not win")
	}
}

func TestCheckWinStopsAtOtherOwner(t *testing.T) {
	var b Board
	b = b.WithDisc(9, 0, "P1")
	b = b.WithDisc(9, 1, "P1")
	b = b.WithDisc(9, 2, "P2")
	b = b.WithDisc(9, 3, "P1")
	b = b.WithDisc(9, 4, "P1")

	if b.CheckWin(9, 1, ConnectN) {
		t.Fatal("run interrupted by another owner must not win")
	}
}

func TestCheckWinEmptyCell(t *testing.T) {
	var b Board
	if b.CheckWin(5, 5, ConnectN) {
		t.Fatal("empty cell must never win")
	}
}

func TestBoardJSONRoundTripNullCells(t *testing.T) {
	var b Board
	b = b.WithDisc(9, 0, "P1")
	b = b.WithDisc(9, 5, "BOT")

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Board
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != b {
		t.Fatal("board changed across a JSON round trip")
	}
	if decoded[0][0] != Empty {
		t.Fatal("null cell did not decode to empty")
	}
}
