package flacenc

import "math/bits"

// fixedOrderNone is returned by bestFixedOrder when every order's residual
// sum is poisoned (out of i32 range at the checked bit depth).
const fixedOrderNone = -1

// poisonSum is the sentinel used for an order whose residuals overflow
// i32 range when checkRange is set. It is deliberately larger than any
// realistic real sum so a poisoned order never wins the minimum search.
const poisonSum = uint64(1)<<49 - 1

const maxFixedOrder = 4

// fixedResidual computes the order-p fixed-predictor residual at index i
// of samples, given i >= p. Orders follow (1-z^-1)^p expanded as integer
// coefficients.
func fixedResidual(s []int64, i, order int) int64 {
	switch order {
	case 0:
		return s[i]
	case 1:
		return s[i] - s[i-1]
	case 2:
		return s[i] - 2*s[i-1] + s[i-2]
	case 3:
		return s[i] - 3*s[i-1] + 3*s[i-2] - s[i-3]
	case 4:
		return s[i] - 4*s[i-1] + 6*s[i-2] - 4*s[i-3] + s[i-4]
	default:
		panic("flacenc: fixed predictor order out of range")
	}
}

// inRange32 reports whether num fits in a signed 32-bit value. This is the
// corrected predicate; an earlier revision's "num <= max or num > min"
// formulation was always true and never actually rejected anything.
func inRange32(num int64) bool {
	return num >= -(1<<31) && num <= (1<<31)-1
}

// computeFixedResiduals fills out with the order-p residual sequence for
// samples: out[:order] are the raw warm-up samples, out[order:] are
// prediction residuals.
func computeFixedResiduals(samples []int64, order int, out []int64) {
	copy(out[:order], samples[:order])
	for i := order; i < len(samples); i++ {
		out[i] = fixedResidual(samples, i, order)
	}
}

// bestFixedOrder computes, for each order 0..4, the sum of absolute
// residuals over samples, and returns the order attaining the minimum.
// When checkRange is set, any residual outside i32 range poisons that
// order's sum; if every order is poisoned it returns fixedOrderNone so
// the caller can fall back to Verbatim.
func bestFixedOrder(samples []int64, checkRange bool) int {
	n := len(samples)
	maxOrder := maxFixedOrder
	if n < maxOrder {
		maxOrder = n
	}

	bestOrder := fixedOrderNone
	var bestSum uint64

	for order := 0; order <= maxOrder; order++ {
		sum := uint64(0)
		poisoned := false
		for i := order; i < n; i++ {
			r := fixedResidual(samples, i, order)
			if checkRange && !inRange32(r) {
				poisoned = true
				break
			}
			sum += absInt64(r)
		}
		if poisoned {
			sum = poisonSum
		}
		if bestOrder == fixedOrderNone || sum < bestSum {
			bestOrder = order
			bestSum = sum
		}
	}

	if bestSum == poisonSum {
		return fixedOrderNone
	}
	return bestOrder
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// log2Floor returns floor(log2(n)) for n > 0.
func log2Floor(n uint64) int {
	if n == 0 {
		return 0
	}
	return bits.Len64(n) - 1
}
