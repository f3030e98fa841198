package game

import (
	"time"

	"dropfour/internal/dice"
)

const (
	StatusRunning  = "running"
	StatusFinished = "finished"
)

// Session is the authoritative state of one running game. It is single-writer:
// the usecase layer serializes every mutation behind the session lock, and the
// engine only ever sees value copies of Board.
type Session struct {
	GameKey   string         `json:"game_key" bson:"game_key"`
	Board     Board          `json:"board" bson:"board"`
	Winner    string         `json:"winner,omitempty" bson:"winner,omitempty"`
	LastMove  *Move          `json:"last_move,omitempty" bson:"last_move,omitempty"`
	History   []Move         `json:"history" bson:"history"`
	Turn      dice.TurnState `json:"turn" bson:"turn"`
	Status    string         `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// NewSession returns an empty session for the given key.
func NewSession(gameKey string) *Session {
	return &Session{
		GameKey:   gameKey,
		Status:    StatusRunning,
		CreatedAt: time.Now(),
	}
}

// ArchivedGame is the record written to long-term storage once a game ends.
type ArchivedGame struct {
	GameKey    string    `json:"game_key" bson:"game_key"`
	Winner     string    `json:"winner" bson:"winner"`
	Moves      []Move    `json:"moves" bson:"moves"`
	MoveCount  int       `json:"move_count" bson:"move_count"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	FinishedAt time.Time `json:"finished_at" bson:"finished_at"`
}
