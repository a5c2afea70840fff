package game

import (
	"math"
	"time"

	"github.com/MJE43/idle-mine-go/internal/catalog"
)

// Snapshot is an immutable copy of the observable game state, published
// by the loop after each tick for read-only consumers (the stats HTTP
// server). BoostSecondsLeft is -1 while no timed boost is running, since
// the unbounded window has no finite remainder to report.
type Snapshot struct {
	Presses          int64           `json:"presses"`
	Coins            int64           `json:"coins"`
	Streak           int64           `json:"streak"`
	Upgrade          catalog.Upgrade `json:"upgrade"`
	BoostMultiplier  float64         `json:"boost_multiplier"`
	BoostSecondsLeft float64         `json:"boost_seconds_left"`
	RuntimeSeconds   float64         `json:"runtime_seconds"`
	TakenAt          time.Time       `json:"taken_at"`
}

// Snapshot captures the current state as of now.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	left := -1.0
	if !math.IsInf(e.boost.Duration, 1) {
		left = e.boost.Duration - now.Sub(e.boost.Start).Seconds()
		if left < 0 {
			left = 0
		}
	}
	return Snapshot{
		Presses:          e.presses,
		Coins:            e.coins,
		Streak:           e.streak,
		Upgrade:          *e.upgrade,
		BoostMultiplier:  e.boost.Multiplier,
		BoostSecondsLeft: left,
		RuntimeSeconds:   e.Runtime(now),
		TakenAt:          now,
	}
}
