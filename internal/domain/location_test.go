package domain

import "testing"

func TestNewLocationHashStable(t *testing.T) {
	a := NewLocation(12.345678, -98.765432)
	b := NewLocation(12.345678, -98.765432)
	if a.Hash != b.Hash {
		t.Fatalf("identical coordinates produced different hashes: %q vs %q", a.Hash, b.Hash)
	}
}

func TestNewLocationHashQuantizesSubCentimeterNoise(t *testing.T) {
	a := NewLocation(1.0000001, 2.0000001)
	b := NewLocation(1.0000002, 2.0000002)
	if a.Hash != b.Hash {
		t.Fatalf("locations within quantization tolerance hashed differently: %q vs %q", a.Hash, b.Hash)
	}
}

func TestNewLocationHashDistinguishesDistinctPoints(t *testing.T) {
	a := NewLocation(0, 0)
	b := NewLocation(1, 1)
	if a.Hash == b.Hash {
		t.Fatalf("distinct locations hashed identically: %q", a.Hash)
	}
}
