package game

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrScoreUndefined is returned when the score formula has no defined
// value: no action was ever taken or no time elapsed.
var ErrScoreUndefined = errors.New("score undefined for zero presses or runtime")

// Score computes the final score: the log-magnitude of the best thing
// the player achieved, discounted by how long and how many presses it
// took.
func Score(coins, passive, active int64, multiplier, runtimeSeconds float64, presses int64) (float64, error) {
	if presses == 0 || runtimeSeconds <= 0 {
		return 0, ErrScoreUndefined
	}
	best := math.Max(float64(coins), float64(passive))
	best = math.Max(best, float64(active))
	best = math.Max(best, multiplier)
	return math.Log10(best) - math.Log10(runtimeSeconds) - math.Log10(float64(presses)), nil
}

// FinalScore evaluates Score against the engine's state at now.
func (e *Engine) FinalScore(now time.Time) (float64, error) {
	return Score(e.coins, e.upgrade.Passive, e.upgrade.Active,
		e.boost.Multiplier, e.Runtime(now), e.presses)
}

// FormatScore renders a score with exactly two decimal places.
func FormatScore(score float64) string {
	return decimal.NewFromFloat(score).StringFixed(2)
}
