// Package game owns the live, single-owner game state: the accrual
// engine with its boost window, the action streak, the abuse guard and
// final scoring. All mutation happens on the game loop's current tick;
// there is no internal locking.
package game

import (
	"math"
	"time"

	"github.com/MJE43/idle-mine-go/internal/catalog"
	"github.com/MJE43/idle-mine-go/internal/savecode"
)

// CoinCeiling is the explicit coin cap. Crossing it is the win condition:
// the loop terminates into scoring instead of ever overflowing int64.
const CoinCeiling = int64(1) << 62

// BoostWindow is the single temporary income multiplier. Duration is in
// seconds; +Inf means "active until replaced". PreviousMultiplier is
// transient: it holds the just-expired multiplier for exactly one
// reconciliation step after expiry.
type BoostWindow struct {
	Multiplier         float64
	Start              time.Time
	Duration           float64
	PreviousMultiplier float64
	LastCollection     time.Time
}

// Engine holds the mutable game state and the time-derived bookkeeping.
type Engine struct {
	presses int64
	coins   int64
	streak  int64
	upgrade *catalog.Upgrade
	boost   BoostWindow
	started time.Time
}

// NewEngine starts a fresh game with the given equipped upgrade. The
// upgrade is cloned, so the caller's copy (typically a catalog prototype)
// is never mutated.
func NewEngine(up *catalog.Upgrade, now time.Time) *Engine {
	return &Engine{
		upgrade: up.Clone(),
		boost:   noBoost(now),
		started: now,
	}
}

func noBoost(now time.Time) BoostWindow {
	return BoostWindow{
		Multiplier:         1,
		Start:              now,
		Duration:           math.Inf(1),
		PreviousMultiplier: 1,
		LastCollection:     now,
	}
}

// Advance reconciles passive income up to now. It is called once per
// loop tick. Income is granted in whole elapsed seconds; a sub-second
// remainder below the 1s threshold stays pending because LastCollection
// is not advanced for it.
//
// When a boost expires mid-interval the pending seconds are split at the
// expiry instant: the boosted portion is paid at the old multiplier, the
// rest at the new one. The boosted portion is captured before any
// mutation this tick as the time from LastCollection to the window's
// expiry instant.
func (e *Engine) Advance(now time.Time) {
	remainderAtEntry := math.Inf(1)
	if !math.IsInf(e.boost.Duration, 1) {
		expiry := e.boost.Start.Add(secondsDuration(e.boost.Duration))
		remainderAtEntry = expiry.Sub(e.boost.LastCollection).Seconds()
	}

	if now.Sub(e.boost.Start).Seconds() > e.boost.Duration {
		e.boost.PreviousMultiplier = e.boost.Multiplier
		e.boost.Multiplier = 1
		e.boost.Start = now
		e.boost.Duration = math.Inf(1)
	}

	delta := now.Sub(e.boost.LastCollection).Seconds()
	if delta < 1 {
		return
	}

	passive := float64(e.upgrade.Passive)
	if e.boost.PreviousMultiplier != 1 && e.boost.Multiplier == 1 && !math.IsInf(remainderAtEntry, 1) {
		// Expiry fired this tick: pay the boosted tail, then the rest.
		e.addCoins(math.Floor(passive*math.Floor(remainderAtEntry)) * e.boost.PreviousMultiplier)
		e.addCoins(math.Floor(passive*math.Floor(delta-remainderAtEntry)) * e.boost.Multiplier)
		e.boost.PreviousMultiplier = 1
	} else {
		e.addCoins(math.Floor(passive * math.Floor(delta) * e.boost.Multiplier))
	}
	e.boost.LastCollection = now
}

// addCoins applies a (possibly negative) income amount, flooring to whole
// coins and clamping the balance to [0, CoinCeiling].
func (e *Engine) addCoins(amount float64) {
	e.coins += int64(math.Floor(amount))
	if e.coins < 0 {
		e.coins = 0
	}
	if e.coins > CoinCeiling {
		e.coins = CoinCeiling
	}
}

// ApplyAction records one base action: active income at the current
// multiplier, press and streak counters, and streak-linked passive growth.
func (e *Engine) ApplyAction() {
	e.addCoins(math.Floor(float64(e.upgrade.Active) * e.boost.Multiplier))
	e.presses++
	e.streak++
	if e.upgrade.StreakLinked() {
		e.upgrade.Passive++
	}
}

// BreakStreak resets the streak. The streak-linked upgrade's live passive
// rate falls back to its bonus floor.
func (e *Engine) BreakStreak() {
	e.streak = 0
	if e.upgrade.StreakLinked() {
		e.upgrade.Passive = e.upgrade.BonusPassive
	}
}

// PurchaseBoost unconditionally replaces the boost window. Callers settle
// pending income with Advance(now) first; any fraction of a second left
// unclaimed on the old window is dropped.
func (e *Engine) PurchaseBoost(multiplier, durationSeconds float64, now time.Time) {
	e.boost.Multiplier = multiplier
	e.boost.Duration = durationSeconds
	e.boost.Start = now
}

// Equip replaces the equipped upgrade with a clone of up. Streak state is
// unaffected; the shop decides when a purchase also breaks the streak.
func (e *Engine) Equip(up *catalog.Upgrade) {
	e.upgrade = up.Clone()
}

// Spend deducts cost coins if the balance covers it.
func (e *Engine) Spend(cost int64) bool {
	if cost < 0 || e.coins < cost {
		return false
	}
	e.coins -= cost
	return true
}

// Restore replaces the whole game state from a decoded save. The boost
// window resets to no-boost and the start time is rebased so runtime
// accounting continues from the restored value.
func (e *Engine) Restore(s *savecode.SaveState, now time.Time) {
	e.presses = s.Presses
	e.coins = s.Coins
	if e.coins > CoinCeiling {
		e.coins = CoinCeiling
	}
	e.streak = 0
	e.upgrade = s.Upgrade.Clone()
	e.boost = noBoost(now)
	e.started = now.Add(-secondsDuration(float64(s.Runtime)))
}

// Won reports whether the coin ceiling has been reached.
func (e *Engine) Won() bool {
	return e.coins >= CoinCeiling
}

// Coins returns the current balance.
func (e *Engine) Coins() int64 { return e.coins }

// Presses returns the total action count.
func (e *Engine) Presses() int64 { return e.presses }

// Streak returns the current consecutive-action count.
func (e *Engine) Streak() int64 { return e.streak }

// Upgrade returns the live equipped upgrade.
func (e *Engine) Upgrade() *catalog.Upgrade { return e.upgrade }

// Boost returns a copy of the current boost window.
func (e *Engine) Boost() BoostWindow { return e.boost }

// Runtime returns elapsed seconds since the (possibly rebased) start.
func (e *Engine) Runtime(now time.Time) float64 {
	return now.Sub(e.started).Seconds()
}

func secondsDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
