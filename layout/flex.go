package layout

import "github.com/rezi-tui/rezi/vnode"

// distributeWeighted splits remaining main-axis space among the
// children that are not fixed, proportionally to weights, using
// integer arithmetic with any leftover remainder handed out
// left-to-right so the distributed amounts sum exactly to remaining.
// Children with fixed[i] == true keep fixedValue[i] untouched and
// don't participate in the proportional split.
//
// After the proportional pass, any child whose result falls outside
// its [min, max] bound (either may be nil for unbounded) is clamped
// and treated as fixed for a single redistribution pass over the
// remaining free children, per the single-redistribution-pass rule:
// no further passes are attempted even if the redistribution itself
// produces another out-of-bound value.
func distributeWeighted(remaining int32, weights []float64, fixed []bool, fixedValue []int32, min, max []*int32) []int32 {
	n := len(weights)
	out := make([]int32, n)
	free := make([]bool, n)
	pool := remaining
	for i := 0; i < n; i++ {
		if fixed[i] {
			out[i] = fixedValue[i]
			continue
		}
		free[i] = true
	}

	assignProportional(out, free, weights, pool)

	clampedAny := false
	for i := 0; i < n; i++ {
		if !free[i] {
			continue
		}
		v := out[i]
		if i < len(min) && min[i] != nil && v < *min[i] {
			v = *min[i]
		}
		if i < len(max) && max[i] != nil && v > *max[i] {
			v = *max[i]
		}
		if v != out[i] {
			out[i] = v
			free[i] = false
			clampedAny = true
		}
	}
	if !clampedAny {
		return out
	}

	used := int32(0)
	for i := 0; i < n; i++ {
		if !free[i] && !fixed[i] {
			used += out[i]
		}
	}
	pool = remaining - used
	assignProportional(out, free, weights, pool)
	return out
}

// assignProportional distributes pool among the indices marked free in
// proportion to weights, writing results into out. Indices with zero
// total weight receive zero.
func assignProportional(out []int32, free []bool, weights []float64, pool int32) {
	var weightSum float64
	for i, isFree := range free {
		if isFree {
			weightSum += weights[i]
		}
	}
	if weightSum <= 0 || pool <= 0 {
		for i, isFree := range free {
			if isFree {
				out[i] = 0
			}
		}
		return
	}
	var assigned int32
	type rem struct {
		idx  int
		frac float64
	}
	var fracs []rem
	for i, isFree := range free {
		if !isFree {
			continue
		}
		raw := float64(pool) * weights[i] / weightSum
		whole := int32(raw)
		out[i] = whole
		assigned += whole
		fracs = append(fracs, rem{idx: i, frac: raw - float64(whole)})
	}
	leftover := pool - assigned
	// Remainder distributed left-to-right (in original index order) so
	// the result is deterministic across equal-weight ties.
	for _, f := range fracs {
		if leftover <= 0 {
			break
		}
		out[f.idx]++
		leftover--
	}
}

func justifyLeadingAndGap(justify vnode.Justify, available, used int32, n int) (leading, between int32) {
	free := available - used
	if free <= 0 || n == 0 {
		return 0, 0
	}
	switch justify {
	case vnode.JustifyCenter:
		return free / 2, 0
	case vnode.JustifyEnd:
		return free, 0
	case vnode.JustifyBetween:
		if n == 1 {
			return 0, 0
		}
		return 0, free / int32(n-1)
	case vnode.JustifyAround:
		unit := free / int32(n)
		return unit / 2, unit
	default: // JustifyStart
		return 0, 0
	}
}

func alignOffset(align vnode.Align, containerCross, childCross int32) int32 {
	free := containerCross - childCross
	if free <= 0 {
		return 0
	}
	switch align {
	case vnode.AlignCenter:
		return free / 2
	case vnode.AlignEnd:
		return free
	default: // AlignStart, AlignStretch
		return 0
	}
}
