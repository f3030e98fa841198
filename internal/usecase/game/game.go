package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dropfour/internal/bot"
	"dropfour/internal/dice"
	"dropfour/internal/domain/game"
	errs "dropfour/internal/errors"
)

// DefaultGameKey names the session that exists without anyone creating it,
// so single-table clients can skip /game/new entirely.
const DefaultGameKey = "default"

const historyTail = 50

// GameStore persists sessions between requests and finished games for good.
type GameStore interface {
	SaveSession(ctx context.Context, session *game.Session) error
	LoadSession(ctx context.Context, gameKey string) (*game.Session, error)
	DeleteSession(ctx context.Context, gameKey string) error
	ArchiveGame(ctx context.Context, record game.ArchivedGame) error
	GetArchivedGames(ctx context.Context, limit int64) ([]game.ArchivedGame, error)
	GetArchivedGameByKey(ctx context.Context, gameKey string) (*game.ArchivedGame, error)
}

type sessionEntry struct {
	mu      sync.Mutex
	session *game.Session
}

// GameUseCase owns every live session. Sessions are single-writer: all reads
// and mutations of one session happen under its entry lock, which is the only
// synchronization the core needs.
type GameUseCase struct {
	store   GameStore
	log     *zap.SugaredLogger
	roller  *dice.Roller
	players []string
	botID   string
	depth   int

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger, players []string, botID string, depth int) *GameUseCase {
	if depth <= 0 {
		depth = bot.MaxDepth
	}
	return &GameUseCase{
		store:    store,
		log:      log,
		roller:   dice.NewRoller(),
		players:  players,
		botID:    botID,
		depth:    depth,
		sessions: make(map[string]*sessionEntry),
	}
}

// CreateGame starts a fresh session and returns its key.
func (g *GameUseCase) CreateGame(ctx context.Context) (string, error) {
	gameKey := uuid.New().String()

	entry := &sessionEntry{session: game.NewSession(gameKey)}
	g.mu.Lock()
	g.sessions[gameKey] = entry
	g.mu.Unlock()

	if err := g.store.SaveSession(ctx, entry.session); err != nil {
		g.log.Error(err)
	}
	return gameKey, nil
}

// State returns a snapshot of the session for the caller.
func (g *GameUseCase) State(ctx context.Context, gameKey string) (game.StateResponse, error) {
	entry, err := g.getSession(ctx, gameKey)
	if err != nil {
		return game.StateResponse{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := entry.session
	return game.StateResponse{
		GameKey:  s.GameKey,
		Board:    s.Board,
		Winner:   s.Winner,
		LastMove: s.LastMove,
		History:  tail(s.History, historyTail),
	}, nil
}

// RollDice advances the session's turn fatigue machine. A nil player list
// falls back to the configured seats; an explicitly empty one is an error.
func (g *GameUseCase) RollDice(ctx context.Context, gameKey string, players []string) (dice.RollResult, error) {
	if players == nil {
		players = g.players
	}

	entry, err := g.getSession(ctx, gameKey)
	if err != nil {
		return dice.RollResult{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := g.roller.Roll(players, &entry.session.Turn)
	if err != nil {
		return dice.RollResult{}, err
	}
	g.saveSnapshot(ctx, entry.session)
	return result, nil
}

// ApplyHumanMove drops a human disc with gravity and advances the game.
func (g *GameUseCase) ApplyHumanMove(ctx context.Context, gameKey, playerID string, column int) (game.MoveResponse, error) {
	if playerID == g.botID || !containsPlayer(g.players, playerID) {
		return game.MoveResponse{}, errs.ErrInvalidPlayer
	}
	if column < 0 || column >= game.Cols {
		return game.MoveResponse{}, errs.ErrColumnRange
	}

	entry, err := g.getSession(ctx, gameKey)
	if err != nil {
		return game.MoveResponse{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	return g.applyMove(ctx, entry.session, playerID, column, nil)
}

// BotMove asks the engine for a column and applies it.
func (g *GameUseCase) BotMove(ctx context.Context, gameKey string, depth int) (game.MoveResponse, error) {
	if depth <= 0 {
		depth = g.depth
	}

	entry, err := g.getSession(ctx, gameKey)
	if err != nil {
		return game.MoveResponse{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := entry.session
	if s.Winner != "" {
		return game.MoveResponse{}, errs.ErrGameOver
	}

	// Opponents are inferred from the board so the engine adapts to however
	// many humans have actually played.
	result, err := bot.ChooseBestMove(s.Board, g.botID, nil, depth)
	if err != nil {
		return game.MoveResponse{}, err
	}

	g.log.Infow("bot move chosen",
		"game_key", s.GameKey,
		"column", result.Column,
		"score", result.Score,
		"nodes", result.Nodes,
		"decision_ms", result.DecisionMs,
	)

	return g.applyMove(ctx, s, g.botID, result.Column, &result)
}

// Reset archives a finished game and clears the session back to empty.
func (g *GameUseCase) Reset(ctx context.Context, gameKey string) error {
	entry, err := g.getSession(ctx, gameKey)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	s := entry.session
	if s.Winner != "" {
		g.archive(ctx, s)
	}

	fresh := game.NewSession(s.GameKey)
	*s = *fresh
	g.saveSnapshot(ctx, s)
	return nil
}

// applyMove performs the shared gravity-drop bookkeeping. Callers hold the
// session lock.
func (g *GameUseCase) applyMove(ctx context.Context, s *game.Session, playerID string, column int, stats *game.SearchResult) (game.MoveResponse, error) {
	if s.Winner != "" {
		return game.MoveResponse{}, errs.ErrGameOver
	}

	row, ok := s.Board.FindDropRow(column)
	if !ok {
		return game.MoveResponse{}, errs.ErrColumnFull
	}

	s.Board = s.Board.WithDisc(row, column, playerID)
	move := game.Move{Player: playerID, Row: row, Col: column}
	s.LastMove = &move
	s.History = append(s.History, move)

	if s.Board.CheckWin(row, column, game.ConnectN) {
		s.Winner = playerID
		s.Status = game.StatusFinished
		g.log.Infow("game finished", "game_key", s.GameKey, "winner", playerID)
	}

	g.saveSnapshot(ctx, s)

	return game.MoveResponse{
		Row:      row,
		Column:   column,
		Board:    s.Board,
		Winner:   s.Winner,
		History:  tail(s.History, historyTail),
		BotStats: stats,
	}, nil
}

// getSession resolves a key to a live session, restoring from the store when
// the process has not seen it yet. The default session springs into being on
// first use.
func (g *GameUseCase) getSession(ctx context.Context, gameKey string) (*sessionEntry, error) {
	if gameKey == "" {
		gameKey = DefaultGameKey
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if entry, ok := g.sessions[gameKey]; ok {
		return entry, nil
	}

	session, err := g.store.LoadSession(ctx, gameKey)
	if err == nil {
		entry := &sessionEntry{session: session}
		g.sessions[gameKey] = entry
		return entry, nil
	}
	if gameKey != DefaultGameKey {
		return nil, err
	}

	entry := &sessionEntry{session: game.NewSession(DefaultGameKey)}
	g.sessions[DefaultGameKey] = entry
	return entry, nil
}

// Snapshots are durability best-effort: a storage hiccup must not reject a
// move that already happened in memory.
func (g *GameUseCase) saveSnapshot(ctx context.Context, s *game.Session) {
	if err := g.store.SaveSession(ctx, s); err != nil {
		g.log.Error(err)
	}
}

func (g *GameUseCase) archive(ctx context.Context, s *game.Session) {
	record := game.ArchivedGame{
		GameKey:    s.GameKey,
		Winner:     s.Winner,
		Moves:      s.History,
		MoveCount:  len(s.History),
		CreatedAt:  s.CreatedAt,
		FinishedAt: time.Now(),
	}
	if err := g.store.ArchiveGame(ctx, record); err != nil {
		g.log.Error(err)
		return
	}

	// The mongo record supersedes the live snapshot.
	if err := g.store.DeleteSession(ctx, s.GameKey); err != nil {
		g.log.Error(err)
	}
}

// ArchivedGames lists finished games, most recent first.
func (g *GameUseCase) ArchivedGames(ctx context.Context, limit int64) ([]game.ArchivedGame, error) {
	if limit <= 0 {
		limit = 20
	}
	return g.store.GetArchivedGames(ctx, limit)
}

// ArchivedGameByKey looks a finished game up by its key.
func (g *GameUseCase) ArchivedGameByKey(ctx context.Context, gameKey string) (*game.ArchivedGame, error) {
	return g.store.GetArchivedGameByKey(ctx, gameKey)
}

// ParsePlayers splits a comma-separated seat list from config.
func ParsePlayers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	players := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			players = append(players, trimmed)
		}
	}
	return players
}

func containsPlayer(players []string, id string) bool {
	for _, p := range players {
		if p == id {
			return true
		}
	}
	return false
}

func tail(moves []game.Move, n int) []game.Move {
	if len(moves) <= n {
		return moves
	}
	return moves[len(moves)-n:]
}
