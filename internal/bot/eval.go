// Package bot is the in-process engine for the automated player: a static
// board evaluator and a fixed-depth alpha-beta search that models every human
// seat as a possible mover at the minimizing level.
package bot

import (
	"dropfour/internal/domain/game"
)

const (
	// WinScore dominates every heuristic contribution; terminal positions are
	// scored around it with a depth bias in the search.
	WinScore = 10000

	centerWeight = 2.5
)

// Window weights. The defensive magnitudes are deliberately heavier than the
// offensive ones (60 vs 50, 8 vs 10) so the bot blocks an imminent threat
// before extending its own. Kept as-is for behavioral parity with the tuned
// values; there is no documented derivation behind them.
const (
	botThreeWeight = 50
	botTwoWeight   = 10
	botOneWeight   = 2
	oppThreeWeight = 60
	oppTwoWeight   = 8
)

var evalDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{-1, 1}, // diagonal up-right
}

// EvaluateBoard scores a position from the bot's perspective; positive favors
// the bot. It sums a center-column bonus with a score for every length-4
// window on the grid.
func EvaluateBoard(b game.Board, botID string, opponents []string) float64 {
	score := 0.0

	centerCol := game.Cols / 2
	for row := 0; row < game.Rows; row++ {
		if b[row][centerCol] == botID {
			score += centerWeight
		}
	}

	last := game.ConnectN - 1
	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			for _, dir := range evalDirections {
				dr, dc := dir[0], dir[1]
				endRow, endCol := row+last*dr, col+last*dc
				if endRow < 0 || endRow >= game.Rows || endCol >= game.Cols {
					continue
				}
				score += scoreWindow(b, row, col, dr, dc, botID, opponents)
			}
		}
	}

	return score
}

func scoreWindow(b game.Board, row, col, dr, dc int, botID string, opponents []string) float64 {
	botCount, oppCount, emptyCount := 0, 0, 0
	for k := 0; k < game.ConnectN; k++ {
		switch cell := b[row+k*dr][col+k*dc]; {
		case cell == game.Empty:
			emptyCount++
		case cell == botID:
			botCount++
		case contains(opponents, cell):
			oppCount++
		}
	}

	if botCount > 0 && oppCount > 0 {
		return 0 // contested window, neither side can complete it
	}
	if botCount == game.ConnectN {
		return WinScore
	}
	if oppCount == game.ConnectN {
		return -WinScore
	}

	score := 0.0
	switch {
	case botCount == 3 && emptyCount == 1:
		score += botThreeWeight
	case botCount == 2 && emptyCount == 2:
		score += botTwoWeight
	case botCount == 1 && emptyCount == 3:
		score += botOneWeight
	}
	switch {
	case oppCount == 3 && emptyCount == 1:
		score -= oppThreeWeight
	case oppCount == 2 && emptyCount == 2:
		score -= oppTwoWeight
	}
	return score
}

// InferOpponents lists every distinct id on the board that is not the bot, in
// row-major first-seen order so repeated searches stay deterministic. An
// empty board defaults to the canonical two human seats.
func InferOpponents(b game.Board, botID string) []string {
	var ids []string
	for row := 0; row < game.Rows; row++ {
		for col := 0; col < game.Cols; col++ {
			cell := b[row][col]
			if cell == game.Empty || cell == botID || contains(ids, cell) {
				continue
			}
			ids = append(ids, cell)
		}
	}
	if len(ids) == 0 {
		return []string{"P1", "P2"}
	}
	return ids
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
