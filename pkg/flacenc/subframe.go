package flacenc

// maxPartitionOrder is the ceiling passed to the Rice optimiser for every
// subframe choice.
const maxPartitionOrder = 8

// chooseSubframe selects the cheapest representation for one channel's
// samples at the given effective sample size (bit_depth, or bit_depth+1
// for side channels).
func chooseSubframe(samples []int64, sampleSize uint8) Subframe {
	n := len(samples)

	if allEqual(samples) {
		return Subframe{
			Kind:          SubframeConstant,
			SampleSize:    sampleSize,
			ConstantValue: samples[0],
		}
	}

	if n <= 4 {
		return verbatimSubframe(samples, sampleSize)
	}

	verbatimBits := uint64(n) * uint64(sampleSize)

	checkRange := sampleSize >= 28
	order := bestFixedOrder(samples, checkRange)
	if order == fixedOrderNone {
		return verbatimSubframe(samples, sampleSize)
	}

	residuals := make([]int64, n)
	computeFixedResiduals(samples, order, residuals)

	maxParam := 30
	if sampleSize <= 16 {
		maxParam = 14
	}
	rice, fixedBits := riceOptimise(residuals, order, maxPartitionOrder, maxParam)

	// Warm-up samples are not part of riceOptimise's estimate; account
	// for them here so the comparison against verbatim covers every
	// sample of the block.
	fixedBits += uint64(order) * uint64(sampleSize)

	if fixedBits < verbatimBits {
		return Subframe{
			Kind:       SubframeFixed,
			SampleSize: sampleSize,
			Order:      uint8(order),
			Residuals:  residuals,
			Rice:       rice,
		}
	}
	return verbatimSubframe(samples, sampleSize)
}

func verbatimSubframe(samples []int64, sampleSize uint8) Subframe {
	cp := make([]int64, len(samples))
	copy(cp, samples)
	return Subframe{
		Kind:       SubframeVerbatim,
		SampleSize: sampleSize,
		Samples:    cp,
	}
}

func allEqual(samples []int64) bool {
	for _, s := range samples[1:] {
		if s != samples[0] {
			return false
		}
	}
	return true
}
