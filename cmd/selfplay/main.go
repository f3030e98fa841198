// Selfplay drives the engine through full games against random-moving humans
// and reports win rates and search stats. Useful for eyeballing depth/time
// tradeoffs without standing up the server.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"dropfour/internal/bot"
	"dropfour/internal/dice"
	"dropfour/internal/domain/game"
)

func main() {
	gamesFlag := flag.Int("games", 20, "number of games to play")
	depthFlag := flag.Int("depth", bot.MaxDepth, "search depth for the bot")
	seedFlag := flag.Int64("seed", time.Now().UnixNano(), "seed for the random humans")
	flag.Parse()

	games, depth, seed := *gamesFlag, *depthFlag, *seedFlag
	if games <= 0 {
		fmt.Fprintln(os.Stderr, "games must be positive")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	log := logger.Sugar()

	rnd := rand.New(rand.NewSource(seed))
	roller := dice.NewSeededRoller(seed)
	players := []string{"P1", "P2", "BOT"}

	botWins, humanWins, draws := 0, 0, 0
	totalNodes, totalMs := 0, 0.0

	for i := 0; i < games; i++ {
		winner, nodes, ms := playGame(log, roller, rnd, players, depth)
		totalNodes += nodes
		totalMs += ms
		switch winner {
		case "BOT":
			botWins++
		case "":
			draws++
		default:
			humanWins++
		}
	}

	log.Infow("selfplay finished",
		"games", games,
		"depth", depth,
		"bot_wins", botWins,
		"human_wins", humanWins,
		"draws", draws,
		"avg_nodes", totalNodes/games,
		"avg_decision_ms", totalMs/float64(games),
	)
}

func playGame(log *zap.SugaredLogger, roller *dice.Roller, rnd *rand.Rand, players []string, depth int) (winner string, nodes int, ms float64) {
	var board game.Board
	var turn dice.TurnState

	for !board.IsFull() {
		roll, err := roller.Roll(players, &turn)
		if err != nil {
			log.Fatal(err)
		}

		var row, col int
		if roll.Player == "BOT" {
			result, err := bot.ChooseBestMove(board, "BOT", nil, depth)
			if err != nil {
				log.Fatal(err)
			}
			row, col = result.Row, result.Column
			nodes += result.Nodes
			ms += result.DecisionMs
		} else {
			valid := board.ValidColumns()
			col = valid[rnd.Intn(len(valid))]
			row, _ = board.FindDropRow(col)
		}

		board = board.WithDisc(row, col, roll.Player)
		if board.CheckWin(row, col, game.ConnectN) {
			return roll.Player, nodes, ms
		}
	}
	return "", nodes, ms
}
