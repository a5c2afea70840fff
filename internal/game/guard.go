package game

import "time"

// Guard rate-limits the base action to catch key-holding and macros. It
// is consulted every CheckEvery-th action: if the previous checkpoint is
// less than a third of a second old, the burst was too fast for a human
// and the guard signals a penalty. The caller breaks the streak and runs
// the acknowledgement prompt plus a PenaltySeconds countdown; the guard
// itself only issues the verdict.
const (
	GuardCheckEvery     = 10
	GuardPenaltySeconds = 5

	guardMinInterval = time.Second / 3
)

type Guard struct {
	lastCheck time.Time
}

// NewGuard creates a guard with its checkpoint at now.
func NewGuard(now time.Time) *Guard {
	return &Guard{lastCheck: now}
}

// Due reports whether the guard should be consulted after this many
// total presses.
func (g *Guard) Due(presses int64) bool {
	return presses > 0 && presses%GuardCheckEvery == 0
}

// Check compares now against the previous checkpoint and records now as
// the new checkpoint regardless of outcome. It returns false when the
// burst was suspiciously fast and the caller must penalize.
func (g *Guard) Check(now time.Time) bool {
	since := now.Sub(g.lastCheck)
	g.lastCheck = now
	return since >= guardMinInterval
}
