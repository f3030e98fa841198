package bot

import (
	"math"
	"time"

	"dropfour/internal/domain/game"
	errs "dropfour/internal/errors"
)

// MaxDepth is the default search depth when the caller does not override it.
const MaxDepth = 4

// searcher carries the per-search node counter and the fixed identities so
// the recursion signature stays small. prune is always on outside of tests;
// turning it off must not change any chosen score, only the node count.
type searcher struct {
	botID     string
	opponents []string
	nodes     int
	prune     bool
}

// ChooseBestMove runs a fixed-depth alpha-beta search and picks the bot's
// column. opponents may be nil, in which case they are inferred from the
// board. It fails with ErrNoMoves when no column is playable.
func ChooseBestMove(b game.Board, botID string, opponents []string, depth int) (game.SearchResult, error) {
	start := time.Now()

	if len(opponents) == 0 {
		opponents = InferOpponents(b, botID)
	}
	validCols := b.ValidColumns()
	if len(validCols) == 0 {
		return game.SearchResult{}, errs.ErrNoMoves
	}

	s := &searcher{botID: botID, opponents: opponents, prune: true}

	bestScore := math.Inf(-1)
	bestCol, bestRow := -1, -1

	for _, col := range validCols {
		row, _ := b.FindDropRow(col)
		child := b.WithDisc(row, col, botID)

		// Fresh window per top-level branch; ties keep the first-seen
		// maximum, so the lowest-indexed column wins them.
		score := s.minimax(child, depth-1, false, math.Inf(-1), math.Inf(1), row, col)
		if score > bestScore {
			bestScore = score
			bestCol, bestRow = col, row
		}
	}

	if bestCol < 0 {
		// Unreachable once at least one column was iterated; a hit here is a
		// search defect, not a game state.
		return game.SearchResult{}, errs.ErrSearchInternal
	}

	return game.SearchResult{
		Column:     bestCol,
		Row:        bestRow,
		Score:      bestScore,
		Depth:      depth,
		Nodes:      s.nodes,
		DecisionMs: float64(time.Since(start)) / float64(time.Millisecond),
	}, nil
}

// minimax scores a position from the bot's perspective. The minimizing level
// does not model a fixed opponent: for each candidate column it tries every
// known opponent id as the mover and keeps the worst outcome for the bot,
// since actual turn order is decided by dice the bot cannot predict.
// lastRow is -1 when no move preceded this node.
func (s *searcher) minimax(b game.Board, depth int, maximizing bool, alpha, beta float64, lastRow, lastCol int) float64 {
	s.nodes++

	if lastRow >= 0 && b.CheckWin(lastRow, lastCol, game.ConnectN) {
		if b[lastRow][lastCol] == s.botID {
			return WinScore + float64(depth) // prefer faster wins
		}
		return -WinScore - float64(depth) // prefer slower losses
	}

	if depth == 0 || b.IsFull() {
		return EvaluateBoard(b, s.botID, s.opponents)
	}

	validCols := b.ValidColumns()
	if len(validCols) == 0 {
		return EvaluateBoard(b, s.botID, s.opponents)
	}

	if maximizing {
		value := math.Inf(-1)
		for _, col := range validCols {
			row, _ := b.FindDropRow(col)
			child := b.WithDisc(row, col, s.botID)
			score := s.minimax(child, depth-1, false, alpha, beta, row, col)
			value = math.Max(value, score)
			alpha = math.Max(alpha, value)
			if s.prune && alpha >= beta {
				break
			}
		}
		return value
	}

	value := math.Inf(1)
	for _, col := range validCols {
		row, _ := b.FindDropRow(col)
		cutoff := false
		for _, opp := range s.opponents {
			child := b.WithDisc(row, col, opp)
			score := s.minimax(child, depth-1, true, alpha, beta, row, col)
			value = math.Min(value, score)
			beta = math.Min(beta, value)
			if s.prune && beta <= alpha {
				cutoff = true
				break
			}
		}
		// A cutoff inside the opponent loop disqualifies the whole layer:
		// the bound already rules this subtree out for the parent.
		if cutoff {
			break
		}
	}
	return value
}
