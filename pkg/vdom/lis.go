package vdom

// LongestIncreasingSubsequence returns the positions of one longest strictly
// increasing subsequence of seq, in ascending order. Negative entries never
// take part.
func LongestIncreasingSubsequence(seq []int) []int {
	// tails[k] is the position of the smallest value ending an increasing
	// run of length k+1; pred links each position to the one before it.
	pred := make([]int, len(seq))
	tails := make([]int, 0, len(seq))

	for i, v := range seq {
		if v < 0 {
			continue
		}
		n := len(tails)
		if n == 0 || seq[tails[n-1]] < v {
			if n > 0 {
				pred[i] = tails[n-1]
			} else {
				pred[i] = -1
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, n-1
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < seq[tails[lo]] {
			if lo > 0 {
				pred[i] = tails[lo-1]
			} else {
				pred[i] = -1
			}
			tails[lo] = i
		}
	}

	out := make([]int, len(tails))
	if len(tails) == 0 {
		return out
	}
	p := tails[len(tails)-1]
	for k := len(out) - 1; k >= 0; k-- {
		out[k] = p
		p = pred[p]
	}
	return out
}
