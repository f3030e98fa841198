package bot

import (
	"testing"

	"dropfour/internal/domain/game"
)

func TestScoreWindowClassification(t *testing.T) {
	opponents := []string{"P1", "P2"}

	tests := []struct {
		name  string
		cells [4]string
		want  float64
	}{
		{"contested", [4]string{"BOT", "P1", "", ""}, 0},
		{"four bot", [4]string{"BOT", "BOT", "BOT", "BOT"}, WinScore},
		{"four opponent", [4]string{"P1", "P1", "P1", "P1"}, -WinScore},
		{"mixed opponents still count", [4]string{"P1", "P2", "P1", "P2"}, -WinScore},
		{"three bot one empty", [4]string{"BOT", "BOT", "BOT", ""}, 50},
		{"two bot two empty", [4]string{"BOT", "BOT", "", ""}, 10},
		{"one bot three empty", [4]string{"BOT", "", "", ""}, 2},
		{"three opponent one empty", [4]string{"P1", "P1", "P1", ""}, -60},
		{"two opponent two empty", [4]string{"P2", "P2", "", ""}, -8},
		{"one opponent three empty", [4]string{"P1", "", "", ""}, 0},
		{"all empty", [4]string{"", "", "", ""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b game.Board
			for k, cell := range tt.cells {
				if cell != "" {
					b[9][k] = cell
				}
			}
			got := scoreWindow(b, 9, 0, 0, 1, "BOT", opponents)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestScoreWindowNegatesForSwappedWinners(t *testing.T) {
	var b game.Board
	for k := 0; k < 4; k++ {
		b[9][k] = "A"
	}

	asA := scoreWindow(b, 9, 0, 0, 1, "A", []string{"B"})
	asB := scoreWindow(b, 9, 0, 0, 1, "B", []string{"A"})
	if asA != WinScore || asB != -WinScore {
		t.Fatalf("completed window must negate under perspective swap, got %v and %v", asA, asB)
	}
}

func TestEvaluateEmptyBoardIsNeutral(t *testing.T) {
	var b game.Board
	if score := EvaluateBoard(b, "BOT", []string{"P1", "P2"}); score != 0 {
		t.Fatalf("empty board must score 0, got %v", score)
	}
}

func TestEvaluateCenterColumnPreferred(t *testing.T) {
	var center, edge game.Board
	center = center.WithDisc(game.Rows-1, game.Cols/2, "BOT")
	edge = edge.WithDisc(game.Rows-1, 0, "BOT")

	opponents := []string{"P1", "P2"}
	if EvaluateBoard(center, "BOT", opponents) <= EvaluateBoard(edge, "BOT", opponents) {
		t.Fatal("a center disc must outscore an edge disc")
	}
}

func TestEvaluateBlocksOverBuilds(t *testing.T) {
	// An opponent three-in-a-row is a strongly negative position, and its
	// completable window weighs heavier (-60) than the same window owned by
	// the bot (+50).
	var threat, own game.Board
	for col := 0; col < 3; col++ {
		threat = threat.WithDisc(game.Rows-1, col, "P1")
		own = own.WithDisc(game.Rows-1, col, "BOT")
	}

	opponents := []string{"P1", "P2"}
	threatScore := EvaluateBoard(threat, "BOT", opponents)
	ownScore := EvaluateBoard(own, "BOT", opponents)

	if threatScore > -50 {
		t.Fatalf("opponent three-in-a-row must score strongly negative, got %v", threatScore)
	}
	if ownScore <= 0 {
		t.Fatalf("own three-in-a-row must score positive, got %v", ownScore)
	}

	threatWindow := scoreWindow(threat, 9, 0, 0, 1, "BOT", opponents)
	ownWindow := scoreWindow(own, 9, 0, 0, 1, "BOT", opponents)
	if -threatWindow <= ownWindow {
		t.Fatalf("blocking priority lost: threat window %v vs own window %v", threatWindow, ownWindow)
	}
}

func TestInferOpponentsFromBoard(t *testing.T) {
	var b game.Board
	b = b.WithDisc(9, 0, "P1")
	b = b.WithDisc(9, 1, "BOT")
	b = b.WithDisc(9, 2, "P9")
	b = b.WithDisc(8, 2, "P1")

	got := InferOpponents(b, "BOT")
	if len(got) != 2 || got[0] != "P1" || got[1] != "P9" {
		t.Fatalf("expected [P1 P9], got %v", got)
	}
}

func TestInferOpponentsEmptyBoardDefaults(t *testing.T) {
	var b game.Board
	got := InferOpponents(b, "BOT")
	if len(got) != 2 || got[0] != "P1" || got[1] != "P2" {
		t.Fatalf("expected the two placeholder humans, got %v", got)
	}
}
