// Package dice rolls the next player to act, with a fatigue rule: whoever
// acts twice in a row sits out the following roll and rejoins after it.
package dice

import (
	"math/rand"
	"time"

	errs "dropfour/internal/errors"
)

// TurnState tracks fatigue between rolls. At most one player is ever
// excluded at a time.
type TurnState struct {
	LastPlayer       string `json:"last_player,omitempty" bson:"last_player,omitempty"`
	ConsecutiveCount int    `json:"consecutive_count" bson:"consecutive_count"`
	SkipNext         string `json:"skip_next,omitempty" bson:"skip_next,omitempty"`
}

// RollResult reports one roll. NextRollPool is informational: it is the pool
// the next roll would start from, not a commitment.
type RollResult struct {
	Player       string   `json:"player"`
	SkipNext     string   `json:"skip_next,omitempty"`
	ForcedSkip   bool     `json:"forced_skip"`
	NextRollPool []string `json:"next_roll_pool"`
}

type Roller struct {
	rnd *rand.Rand
}

func NewRoller() *Roller {
	return &Roller{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRoller is for tests that need a reproducible sequence.
func NewSeededRoller(seed int64) *Roller {
	return &Roller{rnd: rand.New(rand.NewSource(seed))}
}

// Roll picks the next player uniformly from players minus the skipped one and
// advances state in place. It fails only on an empty player list.
func (r *Roller) Roll(players []string, state *TurnState) (RollResult, error) {
	if len(players) == 0 {
		return RollResult{}, errs.ErrNoPlayers
	}

	pool := excluding(players, state.SkipNext)
	if len(pool) == 0 {
		// Everyone was excluded, e.g. a single-player list whose player is
		// skipped. Fatigue must never deadlock the game, so allow all.
		pool = players
	}

	chosen := pool[r.rnd.Intn(len(pool))]

	// The skip has been honored for this roll.
	state.SkipNext = ""

	if chosen == state.LastPlayer {
		state.ConsecutiveCount++
	} else {
		state.ConsecutiveCount = 1
	}
	state.LastPlayer = chosen

	forcedSkip := false
	if state.ConsecutiveCount >= 2 {
		state.SkipNext = chosen
		state.ConsecutiveCount = 0
		forcedSkip = true
	}

	return RollResult{
		Player:       chosen,
		SkipNext:     state.SkipNext,
		ForcedSkip:   forcedSkip,
		NextRollPool: excluding(players, state.SkipNext),
	}, nil
}

func excluding(players []string, skip string) []string {
	if skip == "" {
		out := make([]string, len(players))
		copy(out, players)
		return out
	}
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p != skip {
			out = append(out, p)
		}
	}
	return out
}
