// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	for _, tc := range []struct {
		lo, val, hi, want float32
	}{
		{1, 0, 10, 1},
		{1, 100, 10, 10},
		{1, 5, 10, 5},
		{-89, -90, 89, -89},
	} {
		if got := Clamp(tc.lo, tc.val, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tc.lo, tc.val, tc.hi, got, tc.want)
		}
	}
	if got := Clamp(0.0005, 3.0, 0.1); got != 0.1 {
		t.Errorf("Clamp(float64) = %v", got)
	}
}

func TestSaturate(t *testing.T) {
	if v := Saturate(-0.5); v != 0 {
		t.Errorf("Saturate(-0.5) = %v", v)
	}
	if v := Saturate(1.5); v != 1 {
		t.Errorf("Saturate(1.5) = %v", v)
	}
}

func TestLerp(t *testing.T) {
	if v := Lerp(0, 10, 0.5); v != 5 {
		t.Errorf("Lerp(0,10,0.5) = %v", v)
	}
	if v := Lerp(0, 10, 2); v != 10 {
		t.Errorf("Lerp(0,10,2) = %v", v)
	}
}
