// Package catalog holds the fixed, ordered set of upgrade prototypes.
// The position of a prototype in the list is its wire id in save codes,
// so the order must never change.
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog lookups.
var (
	ErrOutOfRange = errors.New("upgrade index out of range")
	ErrNotFound   = errors.New("upgrade not found")
)

// Upgrade is a purchasable tool. Active is the coin grant per action,
// Passive the grant per elapsed second (may be negative). BonusPassive is
// only meaningful for the streak-linked upgrade: it is the floor Passive
// resets to when the streak breaks.
type Upgrade struct {
	Name         string `json:"name"`
	Cost         int64  `json:"cost"`
	Active       int64  `json:"active"`
	Passive      int64  `json:"passive"`
	BonusPassive int64  `json:"bonus_passive,omitempty"`
}

// recruiterName identifies the one upgrade whose passive rate grows with
// the action streak.
const recruiterName = "Recruiter"

// StreakLinked reports whether this upgrade's passive rate is tied to the
// action streak. All streak special-casing goes through this predicate.
func (u *Upgrade) StreakLinked() bool {
	return u.Name == recruiterName
}

// Clone returns an independent copy safe to mutate.
func (u *Upgrade) Clone() *Upgrade {
	c := *u
	return &c
}

// prototypes is the catalog, in wire order. Never reorder: position is the
// save-code encoding of upgrade identity.
var prototypes = []Upgrade{
	{Name: "Pickaxe", Cost: 10, Active: 1, Passive: 0},
	{Name: "Autopick", Cost: 50, Active: 1, Passive: 1},
	{Name: "Harvester", Cost: 100, Active: 5, Passive: 0},
	{Name: "Drill", Cost: 500, Active: 3, Passive: 10},
	{Name: "Factory", Cost: 1000, Active: 1, Passive: 60},
	{Name: "Blood Miner", Cost: 1000, Active: 50, Passive: -10},
	{Name: "Recruiter", Cost: 2000, Active: 1, Passive: 0, BonusPassive: 0},
}

// Len returns the number of prototypes.
func Len() int {
	return len(prototypes)
}

// ByIndex returns a clone of the prototype at position i.
func ByIndex(i int) (*Upgrade, error) {
	if i < 0 || i >= len(prototypes) {
		return nil, fmt.Errorf("catalog: index %d: %w", i, ErrOutOfRange)
	}
	return prototypes[i].Clone(), nil
}

// IndexOf returns the position of the first prototype named name.
func IndexOf(name string) (int, error) {
	for i := range prototypes {
		if prototypes[i].Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("catalog: %q: %w", name, ErrNotFound)
}

// List returns clones of every prototype in wire order, for shop display.
func List() []Upgrade {
	out := make([]Upgrade, len(prototypes))
	copy(out, prototypes)
	return out
}
