package noise

import (
	"testing"
)

func TestStreamDeterminism(t *testing.T) {
	a := NewStream("key", "label", 0)
	b := NewStream("key", "label", 0)

	for i := 0; i < 100; i++ {
		if got, want := a.Next(), b.Next(); got != want {
			t.Fatalf("byte %d differs: %d vs %d", i, got, want)
		}
	}
}

func TestStreamCursor(t *testing.T) {
	a := NewStream("key", "label", 0)
	// Skip 40 bytes, crossing a 32-byte round boundary.
	for i := 0; i < 40; i++ {
		a.Next()
	}

	b := NewStream("key", "label", 40)
	for i := 0; i < 64; i++ {
		if got, want := b.Next(), a.Next(); got != want {
			t.Errorf("byte %d after cursor jump differs: %d vs %d", i, got, want)
		}
	}
}

func TestStreamKeyAndLabelMatter(t *testing.T) {
	base := NewStream("key", "label", 0)
	otherKey := NewStream("key2", "label", 0)
	otherLabel := NewStream("key", "label2", 0)

	same := true
	for i := 0; i < 32; i++ {
		b := base.Next()
		if otherKey.Next() != b || otherLabel.Next() != b {
			same = false
		}
	}
	if same {
		t.Error("different key/label produced an identical stream")
	}
}

func TestNextFloatRange(t *testing.T) {
	s := NewStream("key", "label", 0)
	for i := 0; i < 1000; i++ {
		f := s.NextFloat()
		if f < 0 || f >= 1 {
			t.Fatalf("float %d out of range [0,1): %f", i, f)
		}
	}
}

func TestIntNRange(t *testing.T) {
	s := NewStream("key", "label", 0)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := s.IntN(5)
		if v < 0 || v >= 5 {
			t.Fatalf("IntN(5) out of range: %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("IntN(5) over 1000 draws hit %d distinct values, want 5", len(seen))
	}
}

func TestDigit(t *testing.T) {
	s := NewStream("key", "label", 0)
	for i := 0; i < 200; i++ {
		d := s.Digit()
		if d < '0' || d > '9' {
			t.Fatalf("Digit() returned non-digit byte %q", d)
		}
	}
}
