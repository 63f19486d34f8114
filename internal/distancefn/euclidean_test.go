package distancefn

import (
	"testing"

	"vrppd-solver-core/internal/domain"
)

func TestEuclideanThreeFourFiveTriangle(t *testing.T) {
	a := domain.NewLocation(0, 0)
	b := domain.NewLocation(3, 4)

	got := Euclidean(a, b)
	if got != 5 {
		t.Fatalf("Euclidean((0,0),(3,4)) = %g, want 5", got)
	}
}

func TestEuclideanSamePointIsZero(t *testing.T) {
	a := domain.NewLocation(1, 1)
	if got := Euclidean(a, a); got != 0 {
		t.Fatalf("Euclidean(a, a) = %g, want 0", got)
	}
}

func TestEuclideanSymmetric(t *testing.T) {
	a := domain.NewLocation(0, 0)
	b := domain.NewLocation(10, -5)

	if Euclidean(a, b) != Euclidean(b, a) {
		t.Fatalf("Euclidean is not symmetric: %g vs %g", Euclidean(a, b), Euclidean(b, a))
	}
}
