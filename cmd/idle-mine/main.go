package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MJE43/idle-mine-go/internal/api"
	"github.com/MJE43/idle-mine-go/internal/catalog"
	"github.com/MJE43/idle-mine-go/internal/game"
	"github.com/MJE43/idle-mine-go/internal/noise"
	"github.com/MJE43/idle-mine-go/internal/savecode"
	"github.com/MJE43/idle-mine-go/internal/store"
)

// The decoy stream is seeded with these fixed constants at process start
// and never re-seeded: save codes from different processes differ only by
// stream position, not by wall-clock entropy.
const (
	noiseKey   = "idle-mine-go"
	noiseLabel = "savecode-decoys"
)

// Boost presets sold in the shop.
type boostOffer struct {
	Label      string
	Cost       int64
	Multiplier float64
	Duration   float64 // seconds
}

var boostOffers = []boostOffer{
	{Label: "x2 for 60s", Cost: 100, Multiplier: 2, Duration: 60},
	{Label: "x3 for 120s", Cost: 500, Multiplier: 3, Duration: 120},
	{Label: "x5 for 300s", Cost: 2500, Multiplier: 5, Duration: 300},
}

type app struct {
	engine  *game.Engine
	guard   *game.Guard
	codec   *savecode.Codec
	slots   *store.Store // may be nil
	buf     *api.StateBuffer
	in      *bufio.Scanner
	logger  *log.Logger
	verbose bool
}

func main() {
	dbPath := flag.String("db", "idle_mine.db", "save-slot database path (empty to disable)")
	statsPort := flag.Int("stats-port", 0, "local stats HTTP port (0 to disable)")
	flag.Parse()

	logger := log.New(os.Stderr, "[idle-mine] ", log.LstdFlags)

	now := time.Now()
	pickaxe, err := catalog.ByIndex(0)
	if err != nil {
		logger.Fatalf("catalog bootstrap: %v", err)
	}

	a := &app{
		engine: game.NewEngine(pickaxe, now),
		guard:  game.NewGuard(now),
		codec:  savecode.NewCodec(noise.NewStream(noiseKey, noiseLabel, 0)),
		buf:    &api.StateBuffer{},
		in:     bufio.NewScanner(os.Stdin),
		logger: logger,
	}

	if *dbPath != "" {
		slots, err := store.Open(*dbPath)
		if err != nil {
			logger.Printf("save database unavailable: %v", err)
		} else {
			a.slots = slots
			defer slots.Close()
		}
	}

	if *statsPort > 0 {
		srv := api.NewServer(a.buf, a.slots)
		if err := srv.Start(*statsPort); err != nil {
			logger.Printf("stats server disabled: %v", err)
		} else {
			defer srv.Shutdown(context.Background())
		}
	}

	a.run()
}

func (a *app) run() {
	fmt.Println("idle-mine — press enter to mine, type 'help' for commands")

	for {
		now := time.Now()
		a.engine.Advance(now)
		a.buf.Publish(a.engine.Snapshot(now))

		if a.engine.Won() {
			fmt.Println("\nThe coin counter can count no further. You win.")
			break
		}

		a.render(now)
		fmt.Print("> ")
		if !a.in.Scan() {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(a.in.Text()))

		if cmd == "" {
			a.mine(time.Now())
			continue
		}

		// Any command breaks the streak.
		a.engine.BreakStreak()

		switch {
		case cmd == "shop":
			a.shop(time.Now())
		case cmd == "togglestats":
			a.verbose = !a.verbose
		case cmd == "help":
			a.help()
		case cmd == "save" || strings.HasPrefix(cmd, "save "):
			a.save(strings.TrimSpace(strings.TrimPrefix(cmd, "save")))
		case cmd == "load" || strings.HasPrefix(cmd, "load "):
			a.load(strings.TrimSpace(strings.TrimPrefix(cmd, "load")))
		case cmd == "quit" || cmd == "exit":
			a.finish(time.Now())
			return
		default:
			fmt.Println("unknown command; type 'help'")
		}
	}
	a.finish(time.Now())
}

func (a *app) mine(now time.Time) {
	a.engine.ApplyAction()
	if a.guard.Due(a.engine.Presses()) && !a.guard.Check(now) {
		a.engine.BreakStreak()
		a.penalty()
	}
}

// penalty runs the fixed acknowledgement: two prompts, then a countdown.
func (a *app) penalty() {
	fmt.Println("\nThat was too fast to be fingers.")
	fmt.Print("press enter to acknowledge... ")
	a.in.Scan()
	fmt.Print("and once more... ")
	a.in.Scan()
	for i := game.GuardPenaltySeconds; i > 0; i-- {
		fmt.Printf("resuming in %d...\n", i)
		time.Sleep(time.Second)
	}
}

func (a *app) render(now time.Time) {
	up := a.engine.Upgrade()
	fmt.Printf("\ncoins: %d | %s (active %d, passive %d/s)",
		a.engine.Coins(), up.Name, up.Active, up.Passive)
	if b := a.engine.Boost(); b.Multiplier > 1 {
		fmt.Printf(" | boost x%g", b.Multiplier)
	}
	fmt.Println()
	if a.verbose {
		fmt.Printf("presses: %d | streak: %d | runtime: %.0fs\n",
			a.engine.Presses(), a.engine.Streak(), a.engine.Runtime(now))
	}
}

func (a *app) shop(now time.Time) {
	fmt.Println("\n-- shop --")
	ups := catalog.List()
	for i, u := range ups {
		fmt.Printf("%2d) %-12s cost %5d  active %3d  passive %3d/s\n",
			i+1, u.Name, u.Cost, u.Active, u.Passive)
	}
	for i, b := range boostOffers {
		fmt.Printf("%2d) boost %-12s cost %5d\n", len(ups)+i+1, b.Label, b.Cost)
	}
	fmt.Print("buy # (or enter to leave): ")
	if !a.in.Scan() {
		return
	}
	raw := strings.TrimSpace(a.in.Text())
	if raw == "" {
		return
	}
	choice, err := strconv.Atoi(raw)
	if err != nil || choice < 1 || choice > len(ups)+len(boostOffers) {
		fmt.Println("not a valid shop entry")
		return
	}

	if choice <= len(ups) {
		up, err := catalog.ByIndex(choice - 1)
		if err != nil {
			fmt.Println("not a valid shop entry")
			return
		}
		if !a.engine.Spend(up.Cost) {
			fmt.Println("not enough coins")
			return
		}
		a.engine.Equip(up)
		fmt.Printf("equipped %s\n", up.Name)
		return
	}

	offer := boostOffers[choice-len(ups)-1]
	if !a.engine.Spend(offer.Cost) {
		fmt.Println("not enough coins")
		return
	}
	// Settle pending income before the window is replaced.
	a.engine.Advance(now)
	a.engine.PurchaseBoost(offer.Multiplier, offer.Duration, now)
	fmt.Printf("boost active: %s\n", offer.Label)
}

func (a *app) save(label string) {
	now := time.Now()
	code, err := a.codec.Encode(a.engine.Presses(), a.engine.Coins(),
		a.engine.Runtime(now), a.engine.Upgrade())
	if err != nil {
		if errors.Is(err, savecode.ErrNegativeValue) {
			fmt.Println("this upgrade cannot be saved: its passive rate is negative")
			return
		}
		a.logger.Printf("save failed: %v", err)
		return
	}

	if label == "" || a.slots == nil {
		fmt.Printf("your save code (copy everything between the brackets):\n[%s]\n", code)
		return
	}

	decoded, err := savecode.Decode(code)
	if err != nil {
		a.logger.Printf("save verification failed: %v", err)
		return
	}
	_, err = a.slots.Put(context.Background(), store.Slot{
		Label:   label,
		Code:    code,
		Presses: decoded.Presses,
		Coins:   decoded.Coins,
		Runtime: decoded.Runtime,
		Upgrade: decoded.Upgrade.Name,
	})
	if err != nil {
		a.logger.Printf("save failed: %v", err)
		return
	}
	fmt.Printf("saved slot %q\n", label)
}

func (a *app) load(label string) {
	var code string
	if label != "" && a.slots != nil {
		slot, err := a.slots.Get(context.Background(), label)
		if err != nil {
			if errors.Is(err, store.ErrSlotNotFound) {
				fmt.Printf("no slot named %q\n", label)
			} else {
				a.logger.Printf("load failed: %v", err)
			}
			return
		}
		code = slot.Code
	} else {
		fmt.Print("paste your save code: ")
		if !a.in.Scan() {
			return
		}
		code = a.in.Text()
	}

	state, err := savecode.Decode(code)
	if err != nil {
		fmt.Println("invalid code")
		return
	}
	a.engine.Restore(state, time.Now())
	fmt.Printf("loaded: %d coins, %s equipped\n", state.Coins, state.Upgrade.Name)
}

func (a *app) help() {
	fmt.Println(`
enter        mine one coin's worth
shop         buy upgrades and boosts
togglestats  show/hide detailed stats
save [name]  print a save code, or store it under a slot name
load [name]  restore from a pasted code or a slot name
quit         end the run and show your score`)
}

func (a *app) finish(now time.Time) {
	score, err := a.engine.FinalScore(now)
	if err != nil {
		fmt.Println("no score this run")
		return
	}
	fmt.Printf("final score: %s\n", game.FormatScore(score))
}
