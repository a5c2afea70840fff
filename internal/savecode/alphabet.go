package savecode

// The sentinel alphabet carries the real payload of a save code: the
// alphabet position of each sentinel rune is one decoded digit. Every
// glyph renders as blank or near-blank, so sentinels disappear between
// the decoy digits surrounding them.
//
// Index 0 is an ordinary ASCII space. Index 10 is reserved: the encoder
// never emits it, but the decoder still recognizes it and appends the
// literal digits "10" to the current field. A forged code using it will
// usually corrupt the field's value. That friction is intentional; do
// not "fix" it.
var sentinels = [11]rune{
	' ',      // 0: space
	'\u00a0', // 1: no-break space
	'\u2000', // 2: en quad
	'\u2001', // 3: em quad
	'\u2002', // 4: en space
	'\u2003', // 5: em space
	'\u2004', // 6: three-per-em space
	'\u2005', // 7: four-per-em space
	'\u2006', // 8: six-per-em space
	'\u2007', // 9: figure space
	'\u2008', // 10: punctuation space (reserved)
}

// sentinelIndex maps a rune to its alphabet position.
var sentinelIndex = func() map[rune]int {
	m := make(map[rune]int, len(sentinels))
	for i, r := range sentinels {
		m[r] = i
	}
	return m
}()

// Wire-format constants. Changing any of these breaks compatibility with
// every previously issued save code.
const (
	fieldCount       = 6
	separatorDecoys  = 6
	minDecoyRun      = 1
	maxDecoyRun      = 5
	reservedSentinel = 10
)
