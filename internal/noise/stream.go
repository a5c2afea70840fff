package noise

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
)

// Stream generates a deterministic byte sequence using HMAC-SHA256 in
// 32-byte rounds. The same (key, label, cursor) always yields the same
// sequence, so decoy noise in save codes is reproducible and auditable
// while still looking random.
type Stream struct {
	key          string
	label        string
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewStream creates a stream positioned at the given cursor.
func NewStream(key, label string, cursor uint64) *Stream {
	s := &Stream{
		key:          key,
		label:        label,
		currentRound: cursor / 32,
		currentPos:   int(cursor % 32),
	}

	// Always generate the initial round
	s.generateRound()

	return s
}

// Next returns the next byte from the stream.
func (s *Stream) Next() byte {
	// Check if we need to advance to the next round
	if s.currentPos >= 32 {
		s.currentRound++
		s.currentPos = 0
		s.generateRound()
	}

	b := s.buffer[s.currentPos]
	s.currentPos++
	return b
}

// NextFloat generates the next float in [0,1) using exactly 4 bytes.
func (s *Stream) NextFloat() float64 {
	b0 := s.Next()
	b1 := s.Next()
	b2 := s.Next()
	b3 := s.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

// IntN returns a value in [0,n) drawn from the stream.
func (s *Stream) IntN(n int) int {
	return int(s.NextFloat() * float64(n))
}

// Digit returns a decimal digit character drawn from the stream.
func (s *Stream) Digit() byte {
	return byte('0' + s.IntN(10))
}

func (s *Stream) generateRound() {
	h := hmac.New(sha256.New, []byte(s.key))
	message := fmt.Sprintf("%s:%d", s.label, s.currentRound)
	h.Write([]byte(message))
	copy(s.buffer[:], h.Sum(nil))
}

// bytesToFloat converts exactly 4 bytes to float64, treating them as a
// base-256 fraction.
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}
