package flacenc

// chooseStereoMode estimates the bit cost of all four stereo encodings
// for a 2-channel frame using a cheap second-order fixed-predictor
// estimate (no residual arrays are built), and returns the cheapest.
// Ties go to the later mode in LeftRight, LeftSide, SideRight, MidSide
// order, so identical channels pick MidSide.
func chooseStereoMode(left, right []int64, frameSize int) StereoMode {
	var lrSum, lsSum, srSum, msSum uint64

	leftPrev1, leftPrev2 := left[0], left[0]
	rightPrev1, rightPrev2 := right[0], right[0]
	if len(left) > 1 {
		leftPrev1 = left[1]
	}
	if len(right) > 1 {
		rightPrev1 = right[1]
	}

	for i := 2; i < len(left); i++ {
		lr := left[i] - 2*leftPrev1 + leftPrev2
		rr := right[i] - 2*rightPrev1 + rightPrev2

		lrSum += absInt64(lr)
		rrSumAdd := absInt64(rr)
		srSum += rrSumAdd
		msSum += absInt64((lr + rr) >> 1)
		lsSum += absInt64(lr - rr)

		leftPrev2, leftPrev1 = leftPrev1, left[i]
		rightPrev2, rightPrev1 = rightPrev1, right[i]
	}

	// lrSum currently holds sum(|l_r|); srSum currently holds
	// sum(|r_r|). The four candidate scores per the stereo estimate are
	// {L+R, L+S, S+R, M+S}.
	lEst, _ := findOptimalParamEstimate(2*lrSum, frameSize)
	rEst, _ := findOptimalParamEstimate(2*srSum, frameSize)
	sEst, _ := findOptimalParamEstimate(2*lsSum, frameSize)
	mEst, _ := findOptimalParamEstimate(2*msSum, frameSize)

	scores := [4]uint64{
		lEst + rEst, // LeftRight
		lEst + sEst, // LeftSide
		sEst + rEst, // SideRight
		mEst + sEst, // MidSide
	}

	best := StereoLeftRight
	bestScore := scores[0]
	for i := 1; i < 4; i++ {
		if scores[i] <= bestScore {
			bestScore = scores[i]
			best = StereoMode(i)
		}
	}
	return best
}

// findOptimalParamEstimate returns an estimated (bits, k) pair for a
// partition-0 estimate over frameSize residuals whose zigzag-sum is sum.
func findOptimalParamEstimate(sum uint64, frameSize int) (bits uint64, k uint8) {
	if sum == 0 {
		return 5, 31
	}
	kk := log2Floor(sum) - log2Floor(uint64(frameSize))
	if kk < 0 {
		kk = 0
	}
	return riceCost(sum, frameSize, uint8(kk)), uint8(kk)
}

// midSideBuffers computes the mid and side channels from left/right.
// Side needs one extra bit of dynamic range; when bitDepth is 32 the
// side buffer must be computed with i64 arithmetic wide enough to avoid
// overflow (both inputs are already stored as int64, so this is
// automatic here — the widening only matters for the subframe's
// sampleSize bookkeeping).
func midSideBuffers(left, right []int64) (mid, side []int64) {
	n := len(left)
	mid = make([]int64, n)
	side = make([]int64, n)
	for i := 0; i < n; i++ {
		mid[i] = (left[i] + right[i]) >> 1
		side[i] = left[i] - right[i]
	}
	return mid, side
}
