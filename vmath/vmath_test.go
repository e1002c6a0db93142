package vmath

import "testing"

func TestIdentityMulPoint(t *testing.T) {
	p := Vec3{1, 2, 3}
	got := Identity().MulPoint(p)
	if got != p {
		t.Errorf("Identity().MulPoint(%v) = %v, want %v", p, got, p)
	}
}

func TestTranslationMulPoint(t *testing.T) {
	m := Translation(Vec3{1, 2, 3})
	got := m.MulPoint(Vec3{0, 0, 0})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("Translation.MulPoint = %v, want %v", got, want)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translation(Vec3{2, -3, 5}).Mul(Scaling(2, 4, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported non-invertible for a well-conditioned matrix")
	}
	p := Vec3{7, -1, 3}
	roundTrip := inv.MulPoint(m.MulPoint(p))
	const eps = 1e-9
	for i := 0; i < 3; i++ {
		if diff := roundTrip[i] - p[i]; diff > eps || diff < -eps {
			t.Errorf("round trip component %d = %v, want %v", i, roundTrip[i], p[i])
		}
	}
}

func TestInvertDegenerate(t *testing.T) {
	m := Scaling(0, 1, 1)
	if _, ok := m.Invert(); ok {
		t.Error("Invert() on a degenerate (zero-scale) matrix should report false")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want float64 }{
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.5, 0, 1, 0.5},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}
