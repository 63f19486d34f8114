package exact

import "testing"

func TestEachNonEmptySubsetCount(t *testing.T) {
	for k := 0; k <= 6; k++ {
		mask := uint64(1)<<uint(k) - 1

		seen := make(map[uint64]bool)
		EachNonEmptySubset(mask, func(sub uint64) {
			if sub == 0 {
				t.Fatalf("EachNonEmptySubset(%b) visited the empty set", mask)
			}
			if sub&^mask != 0 {
				t.Fatalf("EachNonEmptySubset(%b) visited %b, which is not a subset", mask, sub)
			}
			if seen[sub] {
				t.Fatalf("EachNonEmptySubset(%b) visited %b twice", mask, sub)
			}
			seen[sub] = true
		})

		want := int(uint64(1)<<uint(k)) - 1
		if len(seen) != want {
			t.Fatalf("k=%d: visited %d subsets, want 2^%d-1=%d", k, len(seen), k, want)
		}
	}
}

func TestEachNonEmptySubsetSeedScenarioSix(t *testing.T) {
	mask := uint64(0b1111)
	assignedMask := uint64(0b0101)
	remaining := mask &^ assignedMask

	want := map[uint64]bool{0b1010: true, 0b1000: true, 0b0010: true}
	got := make(map[uint64]bool)

	EachNonEmptySubset(remaining, func(sub uint64) {
		if sub&assignedMask != 0 {
			t.Fatalf("subset %b intersects assignedMask %b", sub, assignedMask)
		}
		got[sub] = true
	})

	if len(got) != len(want) {
		t.Fatalf("got %d subsets, want %d: %v", len(got), len(want), got)
	}
	for sub := range want {
		if !got[sub] {
			t.Errorf("missing expected subset %b", sub)
		}
	}
}
