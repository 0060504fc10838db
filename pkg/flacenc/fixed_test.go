package flacenc

import "testing"

func TestFixedResidualOrder0(t *testing.T) {
	samples := []int64{5, -3, 100, 0}
	for i, s := range samples {
		if got := fixedResidual(samples, i, 0); got != s {
			t.Errorf("order 0 residual at %d = %d, want %d", i, got, s)
		}
	}
}

func TestFixedResidualWarmupIdentity(t *testing.T) {
	samples := []int64{10, 20, 30, 40, 50, 60}
	for order := 0; order <= maxFixedOrder; order++ {
		out := make([]int64, len(samples))
		computeFixedResiduals(samples, order, out)
		for i := 0; i < order; i++ {
			if out[i] != samples[i] {
				t.Errorf("order %d: warm-up[%d] = %d, want raw sample %d", order, i, out[i], samples[i])
			}
		}
	}
}

func TestFixedResidualRamp(t *testing.T) {
	// s[i] = i, order 1 residual should be constant 1 after warm-up.
	n := 64
	samples := make([]int64, n)
	for i := range samples {
		samples[i] = int64(i)
	}
	out := make([]int64, n)
	computeFixedResiduals(samples, 1, out)
	if out[0] != 0 {
		t.Fatalf("warm-up = %d, want 0", out[0])
	}
	for i := 1; i < n; i++ {
		if out[i] != 1 {
			t.Fatalf("residual[%d] = %d, want 1", i, out[i])
		}
	}
}

func TestBestFixedOrderMinimality(t *testing.T) {
	n := 64
	samples := make([]int64, n)
	for i := range samples {
		samples[i] = int64(i)
	}
	// Order 2 predicts a ramp exactly (residual sum 0); order 1 sums to 63.
	order := bestFixedOrder(samples, false)
	if order != 2 {
		t.Fatalf("bestFixedOrder(ramp) = %d, want 2", order)
	}
}

func TestBestFixedOrderAllZeroTieBreak(t *testing.T) {
	samples := make([]int64, 10) // all zero -> every order sums to 0
	order := bestFixedOrder(samples, false)
	if order != 0 {
		t.Fatalf("bestFixedOrder(all-zero) = %d, want 0 (lowest order on tie)", order)
	}
}

func TestInRange32(t *testing.T) {
	cases := []struct {
		v    int64
		want bool
	}{
		{0, true},
		{1 << 31, false},
		{(1 << 31) - 1, true},
		{-(1 << 31), true},
		{-(1 << 31) - 1, false},
		{1 << 40, false},
	}
	for _, c := range cases {
		if got := inRange32(c.v); got != c.want {
			t.Errorf("inRange32(%d) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestBestFixedOrderPoisonsOutOfRange(t *testing.T) {
	// A residual that overflows i32 at every order should poison every
	// order's sum; bestFixedOrder must report fixedOrderNone rather than
	// silently pick a poisoned order.
	huge := int64(1) << 40
	samples := []int64{0, huge, 0, huge, 0, huge}
	order := bestFixedOrder(samples, true)
	if order != fixedOrderNone {
		t.Fatalf("bestFixedOrder(poisoned) = %d, want fixedOrderNone", order)
	}
}
