package game

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"dropfour/internal/adapters"
	"dropfour/internal/bootstrap"
	"dropfour/internal/domain/game"
	errs "dropfour/internal/errors"
	"dropfour/internal/httpresponse"
	repo "dropfour/internal/repository"
	gameuc "dropfour/internal/usecase/game"
	"dropfour/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase

	watchersMu sync.Mutex
	watchers   map[string][]*watcher
}

// watcher serializes writes to one websocket connection; gorilla permits at
// most one concurrent writer, and moves on the same game key can broadcast
// from concurrent requests.
type watcher struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *watcher) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(v)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, mongoAdapter *adapters.AdapterMongo, redisAdapter *adapters.AdapterRedis) *GameHandler {
	store := repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	players := gameuc.ParsePlayers(cfg.Players)
	if len(players) == 0 {
		players = []string{"P1", "P2", "BOT"}
	}
	return &GameHandler{
		cfg:      cfg,
		log:      log,
		gameUC:   gameuc.NewGameUseCase(store, log, players, "BOT", cfg.BotDepth),
		watchers: make(map[string][]*watcher),
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	gameKey, err := g.gameUC.CreateGame(r.Context())
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	g.log.Infof("new game created with key: %s", gameKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.NewGameResponse{GameKey: gameKey})
}

func (g *GameHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.State(r.Context(), r.URL.Query().Get("game_key"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleDiceRoll(w http.ResponseWriter, r *http.Request) {
	var req game.DiceRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("dice roll: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	result, err := g.gameUC.RollDice(r.Context(), req.GameKey, req.Players)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

func (g *GameHandler) HandleHumanMove(w http.ResponseWriter, r *http.Request) {
	var req game.HumanMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("human move: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	resp, err := g.gameUC.ApplyHumanMove(r.Context(), req.GameKey, req.PlayerID, req.Column)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.broadcastState(r.Context(), req.GameKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleBotMove(w http.ResponseWriter, r *http.Request) {
	var req game.BotMoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("bot move: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	resp, err := g.gameUC.BotMove(r.Context(), req.GameKey, req.Depth)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.broadcastState(r.Context(), req.GameKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req game.ResetRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("reset: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if err := g.gameUC.Reset(r.Context(), req.GameKey); err != nil {
		g.writeError(w, err)
		return
	}

	g.broadcastState(r.Context(), req.GameKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, map[string]bool{"ok": true})
}

func (g *GameHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	games, err := g.gameUC.ArchivedGames(r.Context(), limit)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, games)
}

func (g *GameHandler) HandleArchivedGame(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	record, err := g.gameUC.ArchivedGameByKey(r.Context(), gameKey)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, record)
}

// HandleWatch upgrades to a websocket and streams the session state to the
// client after every applied move until the client goes away.
func (g *GameHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		gameKey = gameuc.DefaultGameKey
	}

	state, err := g.gameUC.State(r.Context(), gameKey)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	wc := &watcher{conn: conn}
	g.watchersMu.Lock()
	g.watchers[gameKey] = append(g.watchers[gameKey], wc)
	g.watchersMu.Unlock()

	if err := wc.writeJSON(state); err != nil {
		g.dropWatcher(gameKey, wc)
		return
	}

	// Drain client frames so we notice the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			g.dropWatcher(gameKey, wc)
			return
		}
	}
}

// broadcastState pushes the fresh session state to every watcher of the game,
// dropping connections that fail to take the write.
func (g *GameHandler) broadcastState(ctx context.Context, gameKey string) {
	if gameKey == "" {
		gameKey = gameuc.DefaultGameKey
	}

	g.watchersMu.Lock()
	watchers := g.watchers[gameKey]
	g.watchersMu.Unlock()
	if len(watchers) == 0 {
		return
	}

	state, err := g.gameUC.State(ctx, gameKey)
	if err != nil {
		g.log.Error(err)
		return
	}

	for _, wc := range watchers {
		if err := wc.writeJSON(state); err != nil {
			g.log.Error("write to watcher error: ", err)
			g.dropWatcher(gameKey, wc)
		}
	}
}

func (g *GameHandler) dropWatcher(gameKey string, wc *watcher) {
	wc.conn.Close()
	g.watchersMu.Lock()
	defer g.watchersMu.Unlock()

	watchers := g.watchers[gameKey]
	for i, w := range watchers {
		if w == wc {
			g.watchers[gameKey] = append(watchers[:i], watchers[i+1:]...)
			break
		}
	}
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrSearchInternal), errors.Is(err, errs.ErrInternal):
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		g.log.Error(err)
	}
	httpresponse.WriteResponseWithStatus(w, status,
		httpresponse.ErrorResponse{ErrorDescription: err.Error()})
}
