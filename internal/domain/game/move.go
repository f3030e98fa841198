package game

// Move records where a disc landed and who dropped it.
type Move struct {
	Player string `json:"player" bson:"player"`
	Row    int    `json:"row" bson:"row"`
	Col    int    `json:"col" bson:"col"`
}

// SearchResult is what the engine reports back for a chosen move. Everything
// past Row is diagnostics for the caller; none of it feeds back into search.
type SearchResult struct {
	Column     int     `json:"column"`
	Row        int     `json:"row"`
	Score      float64 `json:"score"`
	Depth      int     `json:"depth"`
	Nodes      int     `json:"nodes"`
	DecisionMs float64 `json:"decision_ms"`
}

type StateResponse struct {
	GameKey  string `json:"game_key"`
	Board    Board  `json:"board"`
	Winner   string `json:"winner,omitempty"`
	LastMove *Move  `json:"last_move,omitempty"`
	History  []Move `json:"history"`
}

type NewGameResponse struct {
	GameKey string `json:"game_key"`
}

type DiceRequest struct {
	GameKey string   `json:"game_key,omitempty"`
	Players []string `json:"players,omitempty"`
}

type HumanMoveRequest struct {
	GameKey  string `json:"game_key,omitempty"`
	PlayerID string `json:"player_id"`
	Column   int    `json:"column"`
}

type BotMoveRequest struct {
	GameKey string `json:"game_key,omitempty"`
	Depth   int    `json:"depth,omitempty"`
}

type ResetRequest struct {
	GameKey string `json:"game_key,omitempty"`
}

type MoveResponse struct {
	Row      int           `json:"row"`
	Column   int           `json:"column"`
	Board    Board         `json:"board"`
	Winner   string        `json:"winner,omitempty"`
	History  []Move        `json:"history"`
	BotStats *SearchResult `json:"bot_stats,omitempty"`
}
