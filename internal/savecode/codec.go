// Package savecode implements the steganographic save-code format. A code
// is a stream of random decoy digits with sentinel glyphs interspersed;
// only the sentinels carry payload. Six numeric fields are emitted in
// fixed order, each field terminated by a run of six decoys with no
// sentinel, which is how the decoder finds field boundaries without a
// length prefix.
package savecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MJE43/idle-mine-go/internal/catalog"
	"github.com/MJE43/idle-mine-go/internal/noise"
)

// SaveState is the decoded payload of a save code. Boost state is
// deliberately not part of the format: loading always starts boost-free.
type SaveState struct {
	Presses int64
	Coins   int64
	Runtime int64 // whole seconds, ceil of the live value at save time
	Upgrade *catalog.Upgrade
}

// Codec encodes save codes. It owns the decoy noise stream, which is
// constructed once at process start and never re-seeded: two codes for
// the same state differ only because of where in the shared sequence the
// Encode call lands. Decoding needs no stream and lives in Decode.
type Codec struct {
	stream *noise.Stream
}

// NewCodec creates a codec drawing decoys from stream.
func NewCodec(stream *noise.Stream) *Codec {
	return &Codec{stream: stream}
}

// Encode serializes the given state into a save code. runtime is elapsed
// seconds and is rounded up to whole seconds. All six payload values must
// be non-negative; for the streak-linked upgrade the sixth field is the
// bonus-passive floor rather than the live passive rate.
func (c *Codec) Encode(presses, coins int64, runtime float64, up *catalog.Upgrade) (string, error) {
	if up == nil {
		return "", fmt.Errorf("savecode: encode: nil upgrade")
	}
	idx, err := catalog.IndexOf(up.Name)
	if err != nil {
		return "", fmt.Errorf("savecode: encode: %w", err)
	}

	rate := up.Passive
	if up.StreakLinked() {
		rate = up.BonusPassive
	}

	values := [fieldCount]int64{
		presses,
		coins,
		int64(math.Ceil(runtime)),
		int64(idx),
		up.Active,
		rate,
	}
	for i, v := range values {
		if v < 0 {
			return "", fmt.Errorf("savecode: encode: field %d is %d: %w", i, v, ErrNegativeValue)
		}
	}

	var b strings.Builder
	for _, v := range values {
		digits := strconv.FormatInt(v, 10)
		for _, d := range digits {
			run := minDecoyRun + c.stream.IntN(maxDecoyRun-minDecoyRun+1)
			for i := 0; i < run; i++ {
				b.WriteByte(c.stream.Digit())
			}
			b.WriteRune(sentinels[d-'0'])
		}
		for i := 0; i < separatorDecoys; i++ {
			b.WriteByte(c.stream.Digit())
		}
	}
	return b.String(), nil
}

// Decode recovers the state a code was encoded from. It is a pure
// function: identical codes decode identically, and decoy content is
// ignored entirely. Any rune that is not a sentinel counts as decoy; a
// run of six or more decoys between sentinels closes the current field.
func Decode(code string) (*SaveState, error) {
	var fields [fieldCount]strings.Builder
	currentField := 0
	plainRun := 0
	advancedThisRun := false

	for _, r := range code {
		if plainRun >= separatorDecoys && !advancedThisRun {
			currentField++
			if currentField >= fieldCount {
				return nil, malformed(-1, "too many fields")
			}
			advancedThisRun = true
		}
		if d, ok := sentinelIndex[r]; ok {
			// The reserved index 10 lands here as the two literal
			// digits "10", corrupting the field. Accepted as-is.
			fields[currentField].WriteString(strconv.Itoa(d))
			plainRun = 0
			advancedThisRun = false
		} else {
			plainRun++
		}
	}

	var values [fieldCount]int64
	for i := range fields {
		s := fields[i].String()
		if s == "" {
			return nil, malformed(i, "empty field")
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, malformedCause(i, "not a decimal value", err)
		}
		values[i] = v
	}

	up, err := catalog.ByIndex(int(values[3]))
	if err != nil {
		return nil, malformedCause(3, "unknown upgrade id", err)
	}
	up.Active = values[4]
	if up.StreakLinked() {
		up.BonusPassive = values[5]
		up.Passive = values[5]
	} else {
		up.Passive = values[5]
	}

	return &SaveState{
		Presses: values[0],
		Coins:   values[1],
		Runtime: values[2],
		Upgrade: up,
	}, nil
}
