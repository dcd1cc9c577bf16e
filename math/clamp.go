// SPDX-License-Identifier: GPL-2.0-or-later

package math

import "cmp"

// Clamp limits val to [lo, hi]. The argument order follows the written
// interval: Clamp(lo, val, hi).
func Clamp[K cmp.Ordered](lo, val, hi K) K {
	return max(lo, min(val, hi))
}

// Saturate clamps to [0, 1], the range of weights and color channels.
func Saturate(v float32) float32 {
	return Clamp(0, v, 1)
}

// Lerp blends a towards b by f in [0,1].
func Lerp(a, b, f float32) float32 {
	return a + (b-a)*Saturate(f)
}
